package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_departments_tenant_code"`

	Name        string `gorm:"size:255;not null"`
	Code        string `gorm:"size:50;not null;uniqueIndex:uq_departments_tenant_code"`
	Description string `gorm:"type:text"`

	ParentID  *uuid.UUID `gorm:"type:uuid"`
	ManagerID *uuid.UUID `gorm:"type:uuid"`

	// ISO 3166-1 alpha-2; drives which national holidays apply to the
	// department's employees. Empty = company-wide holidays only.
	Country string `gorm:"size:2;not null;default:''"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
