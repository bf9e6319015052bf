package model

import (
	"time"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

type Task struct {
	ID                   string               `gorm:"primaryKey;size:36" json:"id"`
	OwnerID              string               `gorm:"size:64;not null;index" json:"owner_id"`
	Name                 string               `gorm:"not null" json:"name"`
	Description          string               `gorm:"not null" json:"description"`
	Category             constants.Category   `gorm:"type:varchar(32);not null;index" json:"category"`
	HourlyRate           decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"hourly_rate"`
	Currency             constants.Currency   `gorm:"type:varchar(3);not null" json:"currency"`
	ExpectedWorkingHours int                  `gorm:"not null" json:"expected_working_hours"`
	ExpectedStartDate    *time.Time           `json:"expected_start_date,omitempty"`
	Status               constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Version              uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}
