package leave

type CreateLeaveTypeRequest struct {
	Code               string `json:"code" binding:"required,max=50"`
	Name               string `json:"name" binding:"required,max=150"`
	IsPaid             *bool  `json:"is_paid"`
	RequiresApproval   *bool  `json:"requires_approval"`
	MaxConsecutiveDays int    `json:"max_consecutive_days" binding:"omitempty,min=0"`
	Color              string `json:"color" binding:"omitempty,max=7"`
}

type UpdateLeaveTypeRequest struct {
	Name               string `json:"name" binding:"required,max=150"`
	IsPaid             *bool  `json:"is_paid"`
	RequiresApproval   *bool  `json:"requires_approval"`
	MaxConsecutiveDays int    `json:"max_consecutive_days" binding:"omitempty,min=0"`
	Color              string `json:"color" binding:"omitempty,max=7"`
	IsActive           *bool  `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	Name               string `json:"name"`
	IsPaid             bool   `json:"is_paid"`
	RequiresApproval   bool   `json:"requires_approval"`
	MaxConsecutiveDays int    `json:"max_consecutive_days"`
	Color              string `json:"color,omitempty"`
	IsActive           bool   `json:"is_active"`
}

type CreateLeaveRequestRequest struct {
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	IsHalfDay     bool   `json:"is_half_day"`
	HalfDayPeriod string `json:"half_day_period" binding:"omitempty,oneof=morning afternoon"`
	Reason        string `json:"reason"`
}

type ReviewLeaveRequestRequest struct {
	Notes string `json:"notes"`
}

type LeaveRequestResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	LeaveTypeID       string   `json:"leave_type_id"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	IsHalfDay         bool     `json:"is_half_day"`
	HalfDayPeriod     string   `json:"half_day_period,omitempty"`
	TotalCalendarDays string   `json:"total_calendar_days"`
	DaysRequested     string   `json:"days_requested"`
	HolidaysExcluded  []string `json:"holidays_excluded,omitempty"`
	Status            string   `json:"status"`
	Reason            string   `json:"reason,omitempty"`
	ReviewerID        string   `json:"reviewer_id,omitempty"`
	ReviewedAt        string   `json:"reviewed_at,omitempty"`
	ReviewNotes       string   `json:"review_notes,omitempty"`
	CreatedAt         string   `json:"created_at"`
}

type BalanceSummaryItem struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeCode string `json:"leave_type_code"`
	LeaveTypeName string `json:"leave_type_name"`
	Year          int    `json:"year"`
	Entitled      string `json:"entitled"`
	Used          string `json:"used"`
	CarriedOver   string `json:"carried_over"`
	Remaining     string `json:"remaining"`
	Pending       string `json:"pending"`
}

type SetEntitlementRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
	Entitled    string `json:"entitled" binding:"required"`
	CarriedOver string `json:"carried_over"`
}

type CreateHolidayRequest struct {
	Date      string `json:"date" binding:"required"`
	Name      string `json:"name" binding:"required,max=255"`
	Country   string `json:"country" binding:"omitempty,len=2"`
	LocalName string `json:"local_name" binding:"omitempty,max=255"`
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	LocalName string `json:"local_name,omitempty"`
	Country   string `json:"country,omitempty"`
	Source    string `json:"source"`
}

type SyncHolidaysRequest struct {
	Country string `json:"country" binding:"required,len=2"`
	Year    int    `json:"year" binding:"required,min=2000,max=2100"`
}

type SyncHolidaysResponse struct {
	Country string `json:"country"`
	Year    int    `json:"year"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}
