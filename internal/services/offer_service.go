package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/locks"
	"task-market.com/task-market/internal/metrics"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

// OfferPolicy holds the admission rules for new offers. Rates must always be
// above zero; MinHourlyRate can only raise that floor.
type OfferPolicy struct {
	MinMessageLength int
	MinHourlyRate    decimal.Decimal
}

func DefaultOfferPolicy() OfferPolicy {
	return OfferPolicy{
		MinMessageLength: 10,
		MinHourlyRate:    decimal.Zero,
	}
}

func (p OfferPolicy) check(hourlyRate decimal.Decimal, message string) error {
	var problems []string

	if !hourlyRate.IsPositive() {
		problems = append(problems, "hourly rate must be greater than 0")
	} else if hourlyRate.LessThan(p.MinHourlyRate) {
		problems = append(problems, fmt.Sprintf("hourly rate must be at least %s", p.MinHourlyRate.String()))
	}
	if utf8.RuneCountInString(strings.TrimSpace(message)) < p.MinMessageLength {
		problems = append(problems, fmt.Sprintf("message must be at least %d characters", p.MinMessageLength))
	}

	if len(problems) > 0 {
		return apperrors.ErrInvalidOfferTerms.WithDetail(strings.Join(problems, "; "))
	}
	return nil
}

type OfferService struct {
	store   *repository.Store
	guard   taskGuard
	policy  OfferPolicy
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     clock
}

func NewOfferService(
	store *repository.Store,
	locker locks.TaskLocker,
	policy OfferPolicy,
	log logrus.FieldLogger,
	m *metrics.Metrics,
) *OfferService {
	return &OfferService{
		store:   store,
		guard:   taskGuard{store: store, locker: locker},
		policy:  policy,
		log:     log,
		metrics: m,
		now:     utcNow,
	}
}

// SubmitOffer admits a provider's bid on an open task. The checks run in a
// fixed order: the task must exist and be open, the provider must not own
// the task or already hold a pending or accepted offer on it, and the terms
// must satisfy the policy.
func (s *OfferService) SubmitOffer(
	ctx context.Context,
	taskID, providerID string,
	hourlyRate decimal.Decimal,
	message string,
) (*model.Offer, error) {
	if providerID == "" {
		return nil, apperrors.ErrActorRequired
	}

	var offer *model.Offer

	err := s.guard.run(ctx, taskID, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status != constants.TaskOpen {
			return apperrors.ErrTaskNotOpen
		}
		if task.OwnerID == providerID {
			return apperrors.ErrUnauthorized.WithDetail("task owners cannot bid on their own task")
		}

		active, err := tx.Offers.HasActiveOffer(ctx, taskID, providerID)
		if err != nil {
			return fmt.Errorf("check existing offers: %w", err)
		}
		if active {
			return apperrors.ErrDuplicateOffer
		}

		if err := s.policy.check(hourlyRate, message); err != nil {
			return err
		}

		now := s.now()
		created := &model.Offer{
			ID:         uuid.NewString(),
			TaskID:     taskID,
			ProviderID: providerID,
			HourlyRate: hourlyRate,
			Message:    strings.TrimSpace(message),
			Status:     constants.OfferPending,
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Offers.Create(ctx, created); err != nil {
			return fmt.Errorf("create offer: %w", err)
		}

		// Bumping the task version makes a concurrent acceptance that
		// slipped past the lock fail instead of missing this offer.
		task.UpdatedAt = now
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}

		offer = created
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"task_id": taskID, "provider_id": providerID}).
			WithError(err).Debug("offer refused")
		return nil, err
	}

	s.metrics.OfferEntered(constants.OfferPending)
	s.log.WithFields(logrus.Fields{
		"task_id":     taskID,
		"offer_id":    offer.ID,
		"provider_id": providerID,
	}).Info("offer submitted")

	return offer, nil
}

func (s *OfferService) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	return s.store.Offers.FindByID(ctx, id)
}

// ListOffersForTask returns the task's offers in creation order.
func (s *OfferService) ListOffersForTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	if _, err := s.store.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.store.Offers.ListByTask(ctx, taskID)
}

func (s *OfferService) ListOffersForProvider(ctx context.Context, providerID string) ([]model.Offer, error) {
	return s.store.Offers.ListByProvider(ctx, providerID)
}
