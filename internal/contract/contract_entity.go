package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusDraft      = "draft"
	StatusActive     = "active"
	StatusExpired    = "expired"
	StatusTerminated = "terminated"
)

const (
	SalaryPeriodMonthly = "monthly"
	SalaryPeriodYearly  = "yearly"
	SalaryPeriodHourly  = "hourly"
)

type ContractType struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_types_tenant_code"`

	Code        string `gorm:"size:50;not null;uniqueIndex:uq_contract_types_tenant_code"`
	Name        string `gorm:"size:150;not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Contract struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index:idx_contracts_tenant"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_contracts_employee"`
	ContractTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
	Status    string     `gorm:"size:20;not null;default:'draft'"`

	Salary       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Currency     string          `gorm:"size:3;not null;default:'EUR'"`
	SalaryPeriod string          `gorm:"size:10;not null;default:'monthly'"`
	HoursPerWeek decimal.Decimal `gorm:"type:numeric(5,2);not null;default:40"`

	ProbationEndDate *time.Time `gorm:"type:date"`
	NoticePeriodDays int        `gorm:"not null;default:0"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
