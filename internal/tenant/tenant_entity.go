package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleViewer   = "viewer"
)

// Tenant is the unit of data partitioning. Tenants are never hard
// deleted, only deactivated via IsActive.
type Tenant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Slug         string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_tenants_slug"`
	Domain       *string   `gorm:"type:varchar(255);uniqueIndex:uq_tenants_domain"`
	IsActive     bool      `gorm:"not null;default:true"`
	Plan         string    `gorm:"type:varchar(50);not null;default:'free'"`
	MaxEmployees int       `gorm:"not null;default:10"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Settings *TenantSettings `gorm:"foreignKey:TenantID"`
}

type TenantSettings struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_tenant_settings_tenant"`

	// Time tracking
	WorkHoursPerDay    decimal.Decimal `gorm:"type:numeric(4,2);not null;default:8.0"`
	WorkDaysPerWeek    int             `gorm:"not null;default:5"`
	OvertimeMultiplier decimal.Decimal `gorm:"type:numeric(3,2);not null;default:1.5"`

	// Leave
	DefaultAnnualLeaveDays int  `gorm:"not null;default:20"`
	DefaultSickLeaveDays   int  `gorm:"not null;default:10"`
	LeaveApprovalRequired  bool `gorm:"not null;default:true"`

	// Timesheets
	TimesheetPeriod           string `gorm:"type:varchar(20);not null;default:'biweekly'"`
	TimesheetApprovalRequired bool   `gorm:"not null;default:true"`

	// Localization
	Timezone   string `gorm:"type:varchar(50);not null;default:'UTC'"`
	DateFormat string `gorm:"type:varchar(20);not null;default:'YYYY-MM-DD'"`
	Currency   string `gorm:"type:varchar(3);not null;default:'USD'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantMembership links a user to a tenant with a role. A user can
// belong to multiple tenants; at most one membership is flagged default
// (enforced by the service in one transaction).
type TenantMembership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_memberships_user_tenant;index:idx_memberships_user_default"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_memberships_user_tenant"`
	Role      string    `gorm:"type:varchar(20);not null;default:'employee'"`
	IsDefault bool      `gorm:"not null;default:false;index:idx_memberships_user_default"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Tenant *Tenant `gorm:"foreignKey:TenantID"`
}

// ValidRole reports whether s is one of the closed role set.
func ValidRole(s string) bool {
	switch s {
	case RoleOwner, RoleAdmin, RoleManager, RoleEmployee, RoleViewer:
		return true
	}
	return false
}

// CanApprove reports whether the role carries approval authority for
// workflow actions (leave, timesheets).
func CanApprove(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager:
		return true
	}
	return false
}
