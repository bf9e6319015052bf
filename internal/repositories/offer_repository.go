package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create appends the offer to its task's offer order. Callers hold the
// task's lock, which keeps Position allocation race free; the unique index
// on (task_id, position) catches anyone who does not.
func (r *OfferRepository) Create(ctx context.Context, offer *model.Offer) error {
	var last int
	err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ?", offer.TaskID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}

	offer.Position = last + 1
	if offer.Version == 0 {
		offer.Version = 1
	}

	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// ListByTask returns the task's offers in creation order.
func (r *OfferRepository) ListByTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	offers := []model.Offer{}
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("position asc").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Offer, error) {
	offers := []model.Offer{}
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").Order("id").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) HasActiveOffer(ctx context.Context, taskID, providerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ? AND provider_id = ? AND status IN ?", taskID, providerID,
			[]constants.OfferStatus{constants.OfferPending, constants.OfferAccepted}).
		Count(&count).Error
	return count > 0, err
}

func (r *OfferRepository) Update(ctx context.Context, offer *model.Offer) error {
	res := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("id = ? AND version = ?", offer.ID, offer.Version).
		Updates(map[string]interface{}{
			"status":     offer.Status,
			"updated_at": offer.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	offer.Version++
	return nil
}
