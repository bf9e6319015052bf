package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Skill, error) {
	skills := []model.Skill{}
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at asc").Order("id").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) CategoriesForProvider(ctx context.Context, providerID string) ([]constants.Category, error) {
	categories := []constants.Category{}
	err := r.db.WithContext(ctx).Model(&model.Skill{}).
		Where("provider_id = ?", providerID).
		Distinct().
		Pluck("category", &categories).Error
	return categories, err
}

func (r *SkillRepository) Update(ctx context.Context, skill *model.Skill) error {
	res := r.db.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ?", skill.ID).
		Updates(map[string]interface{}{
			"category":    skill.Category,
			"experience":  skill.Experience,
			"work_type":   skill.WorkType,
			"hourly_rate": skill.HourlyRate,
			"updated_at":  skill.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrSkillNotFound
	}
	return nil
}
