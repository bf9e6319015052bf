package services

import (
	"context"
	"time"

	"task-market.com/task-market/internal/locks"
	repository "task-market.com/task-market/internal/repositories"
)

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// taskGuard runs a unit of work on one task's sub-graph while holding the
// task's lock, inside a single transaction.
type taskGuard struct {
	store  *repository.Store
	locker locks.TaskLocker
}

func (g taskGuard) run(ctx context.Context, taskID string, fn func(tx *repository.Store) error) error {
	unlock, err := g.locker.Lock(ctx, taskID)
	if err != nil {
		return err
	}
	defer unlock()

	return g.store.Transaction(ctx, fn)
}
