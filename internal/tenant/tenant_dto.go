package tenant

import "github.com/shopspring/decimal"

type UpdateSettingsRequest struct {
	WorkHoursPerDay           *decimal.Decimal `json:"work_hours_per_day"`
	WorkDaysPerWeek           *int             `json:"work_days_per_week" binding:"omitempty,min=1,max=7"`
	OvertimeMultiplier        *decimal.Decimal `json:"overtime_multiplier"`
	DefaultAnnualLeaveDays    *int             `json:"default_annual_leave_days" binding:"omitempty,min=0"`
	DefaultSickLeaveDays      *int             `json:"default_sick_leave_days" binding:"omitempty,min=0"`
	LeaveApprovalRequired     *bool            `json:"leave_approval_required"`
	TimesheetPeriod           *string          `json:"timesheet_period"`
	TimesheetApprovalRequired *bool            `json:"timesheet_approval_required"`
	Timezone                  *string          `json:"timezone"`
	DateFormat                *string          `json:"date_format"`
	Currency                  *string          `json:"currency" binding:"omitempty,len=3"`
}

type SetDefaultMembershipRequest struct {
	MembershipID string `json:"membership_id" binding:"required,uuid"`
}

type TenantResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Domain       *string           `json:"domain,omitempty"`
	IsActive     bool              `json:"is_active"`
	Plan         string            `json:"plan"`
	MaxEmployees int               `json:"max_employees"`
	Settings     *SettingsResponse `json:"settings,omitempty"`
}

type SettingsResponse struct {
	WorkHoursPerDay           string `json:"work_hours_per_day"`
	WorkDaysPerWeek           int    `json:"work_days_per_week"`
	OvertimeMultiplier        string `json:"overtime_multiplier"`
	DefaultAnnualLeaveDays    int    `json:"default_annual_leave_days"`
	DefaultSickLeaveDays      int    `json:"default_sick_leave_days"`
	LeaveApprovalRequired     bool   `json:"leave_approval_required"`
	TimesheetPeriod           string `json:"timesheet_period"`
	TimesheetApprovalRequired bool   `json:"timesheet_approval_required"`
	Timezone                  string `json:"timezone"`
	DateFormat                string `json:"date_format"`
	Currency                  string `json:"currency"`
}

type MembershipResponse struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name,omitempty"`
	TenantSlug string `json:"tenant_slug,omitempty"`
	Role       string `json:"role"`
	IsDefault  bool   `json:"is_default"`
}

func mapTenantToResponse(t Tenant) TenantResponse {
	resp := TenantResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Slug:         t.Slug,
		Domain:       t.Domain,
		IsActive:     t.IsActive,
		Plan:         t.Plan,
		MaxEmployees: t.MaxEmployees,
	}
	if t.Settings != nil {
		s := mapSettingsToResponse(*t.Settings)
		resp.Settings = &s
	}
	return resp
}

func mapSettingsToResponse(s TenantSettings) SettingsResponse {
	return SettingsResponse{
		WorkHoursPerDay:           s.WorkHoursPerDay.String(),
		WorkDaysPerWeek:           s.WorkDaysPerWeek,
		OvertimeMultiplier:        s.OvertimeMultiplier.String(),
		DefaultAnnualLeaveDays:    s.DefaultAnnualLeaveDays,
		DefaultSickLeaveDays:      s.DefaultSickLeaveDays,
		LeaveApprovalRequired:     s.LeaveApprovalRequired,
		TimesheetPeriod:           s.TimesheetPeriod,
		TimesheetApprovalRequired: s.TimesheetApprovalRequired,
		Timezone:                  s.Timezone,
		DateFormat:                s.DateFormat,
		Currency:                  s.Currency,
	}
}

func mapMembershipToResponse(m TenantMembership) MembershipResponse {
	resp := MembershipResponse{
		ID:        m.ID.String(),
		TenantID:  m.TenantID.String(),
		Role:      m.Role,
		IsDefault: m.IsDefault,
	}
	if m.Tenant != nil {
		resp.TenantName = m.Tenant.Name
		resp.TenantSlug = m.Tenant.Slug
	}
	return resp
}
