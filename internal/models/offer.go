package model

import (
	"time"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

// Offer is a provider's bid on a task. Position is the offer's creation
// ordinal within its task and is what "creation order" means for siblings.
type Offer struct {
	ID         string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string                `gorm:"size:36;not null;index;uniqueIndex:idx_offer_task_position" json:"task_id"`
	ProviderID string                `gorm:"size:64;not null;index" json:"provider_id"`
	HourlyRate decimal.Decimal       `gorm:"type:decimal(12,2);not null" json:"hourly_rate"`
	Message    string                `gorm:"not null" json:"message"`
	Status     constants.OfferStatus `gorm:"type:varchar(20);not null" json:"status"`
	Position   int                   `gorm:"not null;uniqueIndex:idx_offer_task_position" json:"position"`
	Version    uint                  `gorm:"not null;default:1" json:"version"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}
