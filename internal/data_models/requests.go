package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

type TaskRequest struct {
	Name                 string             `json:"name" validate:"required,min=3"`
	Description          string             `json:"description" validate:"required,min=10"`
	Category             constants.Category `json:"category" validate:"required,category"`
	HourlyRate           decimal.Decimal    `json:"hourly_rate" validate:"gt=0"`
	Currency             constants.Currency `json:"currency" validate:"required,currency"`
	ExpectedWorkingHours int                `json:"expected_working_hours" validate:"gt=0"`
	ExpectedStartDate    *time.Time         `json:"expected_start_date,omitempty"`
}

// OfferRequest carries the bid terms unchecked; the offer policy judges them
// once the task is known to accept offers.
type OfferRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Message    string          `json:"message"`
}

type SkillRequest struct {
	Category   constants.Category `json:"category" validate:"required,category"`
	Experience int                `json:"experience" validate:"gte=0"`
	WorkType   constants.WorkType `json:"work_type" validate:"required,worktype"`
	HourlyRate decimal.Decimal    `json:"hourly_rate" validate:"gt=0"`
}
