package http

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "task-market.com/task-market/internal/errors"
	middleware "task-market.com/task-market/internal/http/middlewares"
	"task-market.com/task-market/internal/notifications"
	"task-market.com/task-market/internal/services"
)

// Notifier receives the ordered offer notifications produced by an
// acceptance or rejection.
type Notifier interface {
	Dispatch(batch []notifications.Notification) bool
}

type Handler struct {
	taskService       *services.TaskService
	offerService      *services.OfferService
	acceptanceService *services.AcceptanceService
	skillService      *services.SkillService
	notifier          Notifier
	log               logrus.FieldLogger
}

func NewHandler(
	taskService *services.TaskService,
	offerService *services.OfferService,
	acceptanceService *services.AcceptanceService,
	skillService *services.SkillService,
	notifier Notifier,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		taskService:       taskService,
		offerService:      offerService,
		acceptanceService: acceptanceService,
		skillService:      skillService,
		notifier:          notifier,
		log:               log,
	}
}

func requireActor(c echo.Context) (string, error) {
	actor := middleware.ActorFrom(c)
	if actor == "" {
		return "", apperrors.ErrActorRequired
	}
	return actor, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	return c.Validate(req)
}
