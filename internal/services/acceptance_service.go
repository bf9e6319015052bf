package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/lifecycle"
	"task-market.com/task-market/internal/locks"
	"task-market.com/task-market/internal/metrics"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

// AcceptanceResult is the outcome of accepting an offer. Offers holds every
// offer whose status changed: the accepted offer first, then the rejected
// siblings in creation order. Callers rely on that order for notifications.
type AcceptanceResult struct {
	Task   *model.Task   `json:"task"`
	Offers []model.Offer `json:"offers"`
}

func (r *AcceptanceResult) Accepted() model.Offer {
	return r.Offers[0]
}

func (r *AcceptanceResult) Rejected() []model.Offer {
	return r.Offers[1:]
}

type AcceptanceService struct {
	guard   taskGuard
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     clock
}

func NewAcceptanceService(
	store *repository.Store,
	locker locks.TaskLocker,
	log logrus.FieldLogger,
	m *metrics.Metrics,
) *AcceptanceService {
	return &AcceptanceService{
		guard:   taskGuard{store: store, locker: locker},
		log:     log,
		metrics: m,
		now:     utcNow,
	}
}

// loadTargetOffer resolves offerID against the task's offers, telling apart
// an unknown offer from one that belongs to a different task.
func loadTargetOffer(ctx context.Context, tx *repository.Store, offers []model.Offer, offerID string) (*model.Offer, error) {
	for i := range offers {
		if offers[i].ID == offerID {
			return &offers[i], nil
		}
	}

	if _, err := tx.Offers.FindByID(ctx, offerID); err != nil {
		return nil, err
	}
	return nil, apperrors.ErrOfferNotPending.WithDetail("offer does not belong to this task")
}

// AcceptOffer accepts one pending offer on behalf of the task owner. In the
// same transaction every other pending offer on the task is rejected and the
// task moves to in-progress. Nothing is written unless all of it succeeds.
func (s *AcceptanceService) AcceptOffer(ctx context.Context, taskID, offerID, actingUserID string) (*AcceptanceResult, error) {
	var result *AcceptanceResult

	err := s.guard.run(ctx, taskID, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := lifecycle.RequireOwner(task, actingUserID); err != nil {
			return err
		}
		if task.Status != constants.TaskOpen {
			return apperrors.ErrTaskNotOpen
		}

		offers, err := tx.Offers.ListByTask(ctx, taskID)
		if err != nil {
			return fmt.Errorf("load offers: %w", err)
		}
		if _, err := loadTargetOffer(ctx, tx, offers, offerID); err != nil {
			return err
		}

		now := s.now()
		changed, err := lifecycle.ResolveAcceptance(offers, offerID, now)
		if err != nil {
			return err
		}

		for i := range changed {
			if err := tx.Offers.Update(ctx, &changed[i]); err != nil {
				return err
			}
		}

		if err := lifecycle.AdvanceTask(task, constants.TaskInProgress, now); err != nil {
			return err
		}
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}

		result = &AcceptanceResult{Task: task, Offers: changed}
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"task_id": taskID, "offer_id": offerID, "actor": actingUserID}).
			WithError(err).Debug("accept offer refused")
		return nil, err
	}

	s.metrics.TaskEntered(constants.TaskInProgress)
	for _, offer := range result.Offers {
		s.metrics.OfferEntered(offer.Status)
	}
	s.log.WithFields(logrus.Fields{
		"task_id":  taskID,
		"offer_id": offerID,
		"actor":    actingUserID,
		"rejected": len(result.Offers) - 1,
	}).Info("offer accepted")

	return result, nil
}

// RejectOffer rejects a single pending offer. The task and the other offers
// are left alone.
func (s *AcceptanceService) RejectOffer(ctx context.Context, taskID, offerID, actingUserID string) (*model.Offer, error) {
	var rejected *model.Offer

	err := s.guard.run(ctx, taskID, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := lifecycle.RequireOwner(task, actingUserID); err != nil {
			return err
		}

		offer, err := tx.Offers.FindByID(ctx, offerID)
		if err != nil {
			return err
		}
		if offer.TaskID != taskID {
			return apperrors.ErrOfferNotPending.WithDetail("offer does not belong to this task")
		}
		if err := lifecycle.SettleOffer(offer, constants.OfferRejected, s.now()); err != nil {
			return err
		}
		if err := tx.Offers.Update(ctx, offer); err != nil {
			return err
		}

		// Version bump only; the task's own fields are unchanged.
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}

		rejected = offer
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"task_id": taskID, "offer_id": offerID, "actor": actingUserID}).
			WithError(err).Debug("reject offer refused")
		return nil, err
	}

	s.metrics.OfferEntered(constants.OfferRejected)
	s.log.WithFields(logrus.Fields{"task_id": taskID, "offer_id": offerID, "actor": actingUserID}).
		Info("offer rejected")

	return rejected, nil
}
