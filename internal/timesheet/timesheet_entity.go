package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

type Timesheet struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_timesheets_period"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_timesheets_period"`

	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:uq_timesheets_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	TotalHours    decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"`

	Status      string `gorm:"size:20;not null;default:'draft'"`
	SubmittedAt *time.Time
	ReviewerID  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	ReviewNotes string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// CanTransitionTo: draft→submitted, submitted→approved|rejected,
// rejected→submitted (resubmit after fixes). Approved is terminal.
func (t Timesheet) CanTransitionTo(next string) bool {
	switch next {
	case StatusSubmitted:
		return t.Status == StatusDraft || t.Status == StatusRejected
	case StatusApproved, StatusRejected:
		return t.Status == StatusSubmitted
	}
	return false
}
