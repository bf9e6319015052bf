package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "task-market.com/task-market/internal/data_models"
	model "task-market.com/task-market/internal/models"
	"task-market.com/task-market/internal/notifications"
)

func (h *Handler) SubmitOffer(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.OfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	offer, err := h.offerService.SubmitOffer(c.Request().Context(), c.Param("id"), actor, req.HourlyRate, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, offer)
}

func (h *Handler) GetOffer(c echo.Context) error {
	offer, err := h.offerService.GetOffer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, offer)
}

func (h *Handler) ListTaskOffers(c echo.Context) error {
	offers, err := h.offerService.ListOffersForTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(offers),
		"offers": offers,
	})
}

func (h *Handler) ListProviderOffers(c echo.Context) error {
	offers, err := h.offerService.ListOffersForProvider(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(offers),
		"offers": offers,
	})
}

func (h *Handler) AcceptOffer(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	result, err := h.acceptanceService.AcceptOffer(c.Request().Context(), c.Param("id"), c.Param("offerId"), actor)
	if err != nil {
		return err
	}

	h.notify(result.Task.ID, result.Offers)

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) RejectOffer(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	offer, err := h.acceptanceService.RejectOffer(c.Request().Context(), c.Param("id"), c.Param("offerId"), actor)
	if err != nil {
		return err
	}

	h.notify(offer.TaskID, []model.Offer{*offer})

	return c.JSON(http.StatusOK, offer)
}

func (h *Handler) notify(taskID string, offers []model.Offer) {
	if h.notifier == nil {
		return
	}
	if !h.notifier.Dispatch(notifications.ForOffers(offers)) {
		h.log.WithFields(logrus.Fields{"task_id": taskID, "offers": len(offers)}).
			Warn("offer notifications not queued")
	}
}
