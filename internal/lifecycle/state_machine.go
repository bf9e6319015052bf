package lifecycle

import (
	"time"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

func IsTerminalTask(s constants.TaskStatus) bool {
	return s == constants.TaskCompleted
}

func IsTerminalOffer(s constants.OfferStatus) bool {
	return s == constants.OfferAccepted || s == constants.OfferRejected
}

func CanTransitionTask(from, to constants.TaskStatus) bool {
	switch from {
	case constants.TaskOpen:
		return to == constants.TaskInProgress
	case constants.TaskInProgress:
		return to == constants.TaskCompleted
	default:
		return false
	}
}

func CanTransitionOffer(from, to constants.OfferStatus) bool {
	if from != constants.OfferPending {
		return false
	}
	return to == constants.OfferAccepted || to == constants.OfferRejected
}

// RequireOwner reports ErrUnauthorized unless actingUserID owns the task.
func RequireOwner(task *model.Task, actingUserID string) error {
	if actingUserID == "" || task.OwnerID != actingUserID {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// AdvanceTask moves the task to the given status, stamping UpdatedAt. The
// task is left untouched when the edge is not allowed.
func AdvanceTask(task *model.Task, to constants.TaskStatus, at time.Time) error {
	if !CanTransitionTask(task.Status, to) {
		if to == constants.TaskCompleted {
			return apperrors.ErrTaskNotInProgress
		}
		return apperrors.ErrTaskNotOpen
	}
	task.Status = to
	task.UpdatedAt = at
	return nil
}

// SettleOffer moves a pending offer to accepted or rejected.
func SettleOffer(offer *model.Offer, to constants.OfferStatus, at time.Time) error {
	if !CanTransitionOffer(offer.Status, to) {
		return apperrors.ErrOfferNotPending
	}
	offer.Status = to
	offer.UpdatedAt = at
	return nil
}
