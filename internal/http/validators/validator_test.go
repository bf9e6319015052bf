package validators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
)

func TestValidate_TaskRequest(t *testing.T) {
	v := New()

	valid := dto.TaskRequest{
		Name:                 "Logo design",
		Description:          "A minimal logo for a coffee shop",
		Category:             constants.CategoryDesign,
		HourlyRate:           decimal.NewFromInt(30),
		Currency:             constants.CurrencySGD,
		ExpectedWorkingHours: 5,
	}
	assert.NoError(t, v.Validate(&valid))

	invalid := valid
	invalid.Category = "Plumbing"
	invalid.HourlyRate = decimal.Zero
	err := v.Validate(&invalid)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayload)
	assert.Contains(t, err.Error(), "category")
	assert.Contains(t, err.Error(), "hourly_rate")
}

func TestValidate_OfferRequestLeavesTermsToPolicy(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.OfferRequest{HourlyRate: decimal.RequireFromString("12.50"), Message: "hi"}))
	assert.NoError(t, v.Validate(&dto.OfferRequest{HourlyRate: decimal.NewFromInt(-1)}))
}

func TestValidate_SkillRequest(t *testing.T) {
	v := New()

	err := v.Validate(&dto.SkillRequest{
		Category:   constants.CategoryTutoring,
		Experience: -2,
		WorkType:   "Hybrid",
		HourlyRate: decimal.NewFromInt(20),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayload)
	assert.Contains(t, err.Error(), "experience")
	assert.Contains(t, err.Error(), "work_type")
}
