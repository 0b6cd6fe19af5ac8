package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	HalfDayMorning   = "morning"
	HalfDayAfternoon = "afternoon"
)

const (
	HolidaySourceManual    = "manual"
	HolidaySourceNagerDate = "nager_date"
)

type LeaveType struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_types_tenant_code"`

	Code string `gorm:"size:50;not null;uniqueIndex:uq_leave_types_tenant_code"`
	Name string `gorm:"size:150;not null"`

	IsPaid             bool   `gorm:"not null;default:true"`
	RequiresApproval   bool   `gorm:"not null;default:true"`
	MaxConsecutiveDays int    `gorm:"not null;default:0"`
	Color              string `gorm:"size:7"`
	IsActive           bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// LeaveBalance is the per employee/type/year ledger row. At most one row
// per (tenant, employee, leave_type, year); mutated only through the
// Ledger, never written directly by handlers.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	Year        int       `gorm:"not null;uniqueIndex:uq_leave_balances_key"`

	EntitledDays decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	UsedDays     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarriedOver  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Remaining may legitimately be negative (overdraft policy).
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.EntitledDays.Add(b.CarriedOver).Sub(b.UsedDays)
}

type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_tenant"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	IsHalfDay     bool      `gorm:"not null;default:false"`
	HalfDayPeriod string    `gorm:"size:10"`

	TotalCalendarDays decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	DaysRequested     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	Status string `gorm:"size:20;not null;default:'pending';index:idx_leave_requests_status"`
	Reason string `gorm:"type:text"`

	ReviewerID  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	ReviewNotes string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// CanTransitionTo reports whether the workflow allows moving to next
// from the current status. Rejected and cancelled are terminal.
func (r LeaveRequest) CanTransitionTo(next string) bool {
	switch next {
	case StatusApproved, StatusRejected:
		return r.Status == StatusPending
	case StatusCancelled:
		return r.Status == StatusPending || r.Status == StatusApproved
	}
	return false
}

// Holiday with empty Country applies company-wide.
type Holiday struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_holidays_key"`

	Country string    `gorm:"size:2;uniqueIndex:uq_holidays_key"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_key"`
	Name    string    `gorm:"size:255;not null;uniqueIndex:uq_holidays_key"`

	LocalName  string `gorm:"size:255"`
	Source     string `gorm:"size:20;not null;default:'manual'"`
	ExternalID string `gorm:"size:100"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
