package model

import (
	"time"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

type Skill struct {
	ID         string             `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string             `gorm:"size:64;not null;index" json:"provider_id"`
	Category   constants.Category `gorm:"type:varchar(32);not null" json:"category"`
	Experience int                `gorm:"not null" json:"experience"`
	WorkType   constants.WorkType `gorm:"type:varchar(16);not null" json:"work_type"`
	HourlyRate decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"hourly_rate"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
