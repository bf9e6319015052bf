package notifications

import (
	"time"

	"task-market.com/task-market/internal/constants"
	model "task-market.com/task-market/internal/models"
)

type Event string

const (
	EventOfferAccepted Event = "offer.accepted"
	EventOfferRejected Event = "offer.rejected"
)

type Notification struct {
	Event      Event     `json:"event"`
	TaskID     string    `json:"task_id"`
	OfferID    string    `json:"offer_id"`
	ProviderID string    `json:"provider_id"`
	At         time.Time `json:"at"`
}

// ForOffers turns settled offers into notifications, keeping their order.
// Offers that are still pending produce nothing.
func ForOffers(offers []model.Offer) []Notification {
	batch := make([]Notification, 0, len(offers))
	for _, offer := range offers {
		var event Event
		switch offer.Status {
		case constants.OfferAccepted:
			event = EventOfferAccepted
		case constants.OfferRejected:
			event = EventOfferRejected
		default:
			continue
		}
		batch = append(batch, Notification{
			Event:      event,
			TaskID:     offer.TaskID,
			OfferID:    offer.ID,
			ProviderID: offer.ProviderID,
			At:         offer.UpdatedAt,
		})
	}
	return batch
}
