package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	middleware "task-market.com/task-market/internal/http/middlewares"
	"task-market.com/task-market/internal/http/validators"
	"task-market.com/task-market/internal/metrics"
)

type RouteOptions struct {
	RateLimitPerMinute  int
	RateLimitBurst      int
	JWTSecret           []byte
	AllowHeaderIdentity bool
	Metrics             *metrics.Metrics
	Gatherer            prometheus.Gatherer
	Logger              logrus.FieldLogger
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	e.Validator = validators.New()
	e.HTTPErrorHandler = ErrorHandler(opts.Logger, opts.Metrics)

	e.Use(middleware.RequestMetrics(opts.Metrics))
	if opts.RateLimitPerMinute > 0 {
		e.Use(middleware.RateLimiter(opts.RateLimitPerMinute, opts.RateLimitBurst, time.Minute))
	}
	e.Use(middleware.ResolveActor(opts.JWTSecret, opts.AllowHeaderIdentity))

	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.POST("/tasks/:id/complete", h.CompleteTask)

	e.POST("/tasks/:id/offers", h.SubmitOffer)
	e.GET("/tasks/:id/offers", h.ListTaskOffers)
	e.POST("/tasks/:id/offers/:offerId/accept", h.AcceptOffer)
	e.POST("/tasks/:id/offers/:offerId/reject", h.RejectOffer)
	e.GET("/offers/:id", h.GetOffer)

	e.POST("/skills", h.CreateSkill)
	e.GET("/skills/:id", h.GetSkill)
	e.PUT("/skills/:id", h.UpdateSkill)

	e.GET("/providers/:id/skills", h.ListProviderSkills)
	e.GET("/providers/:id/offers", h.ListProviderOffers)
	e.GET("/providers/:id/tasks", h.ListProviderTasks)
}
