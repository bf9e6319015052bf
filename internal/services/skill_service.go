package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

type SkillInput struct {
	Category   constants.Category
	Experience int
	WorkType   constants.WorkType
	HourlyRate decimal.Decimal
}

func (in SkillInput) validate() error {
	var problems []string

	if !in.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", in.Category))
	}
	if in.Experience < 0 {
		problems = append(problems, "experience must not be negative")
	}
	if !in.WorkType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown work type %q", in.WorkType))
	}
	if !in.HourlyRate.IsPositive() {
		problems = append(problems, "hourly rate must be greater than 0")
	}

	if len(problems) > 0 {
		return apperrors.ErrInvalidSkillTerms.WithDetail(strings.Join(problems, "; "))
	}
	return nil
}

type SkillService struct {
	store *repository.Store
	log   logrus.FieldLogger
	now   clock
}

func NewSkillService(store *repository.Store, log logrus.FieldLogger) *SkillService {
	return &SkillService{store: store, log: log, now: utcNow}
}

func (s *SkillService) CreateSkill(ctx context.Context, providerID string, in SkillInput) (*model.Skill, error) {
	if providerID == "" {
		return nil, apperrors.ErrActorRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	skill := &model.Skill{
		ID:         uuid.NewString(),
		ProviderID: providerID,
		Category:   in.Category,
		Experience: in.Experience,
		WorkType:   in.WorkType,
		HourlyRate: in.HourlyRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Skills.Create(ctx, skill); err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}

	s.log.WithFields(logrus.Fields{"skill_id": skill.ID, "provider_id": providerID}).Info("skill created")
	return skill, nil
}

func (s *SkillService) UpdateSkill(ctx context.Context, skillID, actingUserID string, in SkillInput) (*model.Skill, error) {
	skill, err := s.store.Skills.FindByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if actingUserID == "" || skill.ProviderID != actingUserID {
		return nil, apperrors.ErrUnauthorized
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	skill.Category = in.Category
	skill.Experience = in.Experience
	skill.WorkType = in.WorkType
	skill.HourlyRate = in.HourlyRate
	skill.UpdatedAt = s.now()

	if err := s.store.Skills.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) GetSkill(ctx context.Context, id string) (*model.Skill, error) {
	return s.store.Skills.FindByID(ctx, id)
}

func (s *SkillService) ListSkillsForProvider(ctx context.Context, providerID string) ([]model.Skill, error) {
	return s.store.Skills.ListByProvider(ctx, providerID)
}
