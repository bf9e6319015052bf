package locks

import (
	"context"
	"sync"
)

// TaskLocker serializes writers on one task's sub-graph. Lock blocks until
// the lock is held, the context ends, or the backend gives up; the returned
// func releases it.
type TaskLocker interface {
	Lock(ctx context.Context, taskID string) (unlock func(), err error)
}

type LocalTaskLocker struct {
	mu    sync.Mutex
	locks map[string]*localLock
}

type localLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalTaskLocker() *LocalTaskLocker {
	return &LocalTaskLocker{locks: make(map[string]*localLock)}
}

func (l *LocalTaskLocker) Lock(ctx context.Context, taskID string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[taskID]
	if !ok {
		entry = &localLock{ch: make(chan struct{}, 1)}
		l.locks[taskID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(taskID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			l.release(taskID, entry)
		})
	}, nil
}

func (l *LocalTaskLocker) release(taskID string, entry *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, taskID)
	}
}

// held reports how many tasks currently have a lock entry.
func (l *LocalTaskLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
