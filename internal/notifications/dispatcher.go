package notifications

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"task-market.com/task-market/internal/metrics"
)

// Dispatcher delivers notification batches on a fixed pool of workers. A
// batch is handled by one worker from start to end, so the order inside a
// batch is the order of delivery.
type Dispatcher struct {
	mu        sync.RWMutex
	closed    bool
	queue     chan []Notification
	wg        sync.WaitGroup
	publisher Publisher
	log       logrus.FieldLogger
	metrics   *metrics.Metrics
}

func NewDispatcher(
	publisher Publisher,
	workers int,
	queueSize int,
	log logrus.FieldLogger,
	m *metrics.Metrics,
) *Dispatcher {
	d := &Dispatcher{
		queue:     make(chan []Notification, queueSize),
		publisher: publisher,
		log:       log,
		metrics:   m,
	}

	for i := 1; i <= workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

// Dispatch queues a batch without blocking. It reports false when the queue
// is full or the dispatcher is shut down and the batch was dropped.
func (d *Dispatcher) Dispatch(batch []Notification) bool {
	if len(batch) == 0 {
		return true
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.metrics.NotificationDropped()
		d.log.WithField("task_id", batch[0].TaskID).Warn("notification dispatcher shut down, batch dropped")
		return false
	}

	select {
	case d.queue <- batch:
		return true
	default:
		d.metrics.NotificationDropped()
		d.log.WithField("task_id", batch[0].TaskID).Warn("notification queue full, batch dropped")
		return false
	}
}

func (d *Dispatcher) worker(workerID int) {
	defer d.wg.Done()

	d.log.Debugf("notification worker %d started", workerID)

	for batch := range d.queue {
		d.deliver(workerID, batch)
	}

	d.log.Debugf("notification worker %d stopped", workerID)
}

func (d *Dispatcher) deliver(workerID int, batch []Notification) {
	ctx := context.Background()

	for _, n := range batch {
		if err := d.publisher.Publish(ctx, n); err != nil {
			d.log.WithFields(logrus.Fields{
				"worker":   workerID,
				"event":    n.Event,
				"offer_id": n.OfferID,
			}).WithError(err).Error("failed to publish notification")
		}
	}
}

// Shutdown stops accepting batches and waits for queued ones to be
// delivered, or for ctx to end. Calling it twice is safe.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("notification workers shut down cleanly")
	case <-ctx.Done():
		d.log.Warn("notification workers shutdown timed out")
	}
}
