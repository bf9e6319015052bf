package lifecycle

import (
	"sort"
	"time"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

// ResolveAcceptance computes the offer changes caused by accepting offerID
// among offers, which must be every offer of one task. It returns copies of
// the changed offers: the accepted one first, then each pending sibling
// rejected in creation order. Offers that are already rejected are not part
// of the result. The input slice is not modified.
func ResolveAcceptance(offers []model.Offer, offerID string, at time.Time) ([]model.Offer, error) {
	ordered := make([]model.Offer, len(offers))
	copy(ordered, offers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	targetIdx := -1
	for i := range ordered {
		if ordered[i].ID == offerID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, apperrors.ErrOfferNotFound
	}

	for i := range ordered {
		if i != targetIdx && ordered[i].Status == constants.OfferAccepted {
			return nil, apperrors.ErrTaskNotOpen.WithDetail("task already has an accepted offer")
		}
	}

	accepted := ordered[targetIdx]
	if err := SettleOffer(&accepted, constants.OfferAccepted, at); err != nil {
		return nil, err
	}

	changed := make([]model.Offer, 0, len(ordered))
	changed = append(changed, accepted)

	for i := range ordered {
		if i == targetIdx || ordered[i].Status != constants.OfferPending {
			continue
		}
		sibling := ordered[i]
		if err := SettleOffer(&sibling, constants.OfferRejected, at); err != nil {
			return nil, err
		}
		changed = append(changed, sibling)
	}

	return changed, nil
}
