package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"task-market.com/task-market/internal/constants"
)

// Metrics is safe to use through a nil pointer, which records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	errors      *prometheus.CounterVec
	tasks       *prometheus.CounterVec
	offers      *prometheus.CounterVec
	notifyDrops prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskmarket_http_requests_total",
			Help: "HTTP requests handled, by route, method and status code.",
		}, []string{"route", "method", "code"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskmarket_errors_total",
			Help: "Engine errors returned to callers, by kind.",
		}, []string{"kind"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskmarket_task_transitions_total",
			Help: "Tasks entering a status.",
		}, []string{"status"}),
		offers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskmarket_offer_transitions_total",
			Help: "Offers entering a status.",
		}, []string{"status"}),
		notifyDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskmarket_notifications_dropped_total",
			Help: "Notification batches dropped because the dispatch queue was full.",
		}),
	}

	reg.MustRegister(m.requests, m.errors, m.tasks, m.offers, m.notifyDrops)
	return m
}

func (m *Metrics) Request(route, method, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, code).Inc()
}

func (m *Metrics) Error(kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(kind).Inc()
}

func (m *Metrics) TaskEntered(status constants.TaskStatus) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) OfferEntered(status constants.OfferStatus) {
	if m == nil {
		return
	}
	m.offers.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.notifyDrops.Inc()
}
