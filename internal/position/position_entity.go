package position

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Position struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:idx_positions_tenant"`

	Title       string     `gorm:"size:255;not null"`
	Code        string     `gorm:"size:50"`
	Description string     `gorm:"type:text"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`

	// Seniority level (1=entry, 5=senior, etc.)
	Level    int  `gorm:"not null;default:1"`
	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
