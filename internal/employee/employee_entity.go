package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
	StatusSuspended  = "suspended"
)

// Employee belongs to exactly one tenant; the optional UserID links it
// to a system login identity and is nulled when that user is removed.
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employees_tenant_code"`

	UserID *uuid.UUID `gorm:"type:uuid;index:idx_employees_user"`

	EmployeeCode string `gorm:"size:50;not null;uniqueIndex:uq_employees_tenant_code"`
	FirstName    string `gorm:"size:150;not null"`
	LastName     string `gorm:"size:150;not null"`
	Email        string `gorm:"size:255;not null"`
	Phone        string `gorm:"size:50"`

	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	PositionID   *uuid.UUID `gorm:"type:uuid"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`

	HireDate        time.Time  `gorm:"type:date;not null"`
	TerminationDate *time.Time `gorm:"type:date"`
	Status          string     `gorm:"size:20;not null;default:'active'"`

	DateOfBirth           *time.Time `gorm:"type:date"`
	Address               string     `gorm:"type:text"`
	EmergencyContactName  string     `gorm:"size:255"`
	EmergencyContactPhone string     `gorm:"size:50"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
