package timetracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type TimeEntryType struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_time_entry_types_tenant_code"`

	Code          string          `gorm:"size:50;not null;uniqueIndex:uq_time_entry_types_tenant_code"`
	Name          string          `gorm:"size:150;not null"`
	PayMultiplier decimal.Decimal `gorm:"type:numeric(4,2);not null;default:1"`
	IsActive      bool            `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TimeEntry stores clock times as HH:MM strings; DurationHours is
// derived at write time from start/end minus break.
type TimeEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index:idx_time_entries_tenant"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index:idx_time_entries_employee"`
	TimeEntryTypeID uuid.UUID `gorm:"type:uuid;not null"`

	Date         time.Time       `gorm:"type:date;not null"`
	StartTime    string          `gorm:"size:5;not null"`
	EndTime      string          `gorm:"size:5;not null"`
	BreakMinutes int             `gorm:"not null;default:0"`
	DurationHours decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	Description string `gorm:"type:text"`
	Status      string `gorm:"size:20;not null;default:'pending'"`

	ApproverID *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
