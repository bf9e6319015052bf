package locks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-market.com/task-market/internal/errors"
)

const testPrefix = "test:lock:task:"

func newRedisLocker(t *testing.T, ttl, wait time.Duration) (*RedisTaskLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:       []string{mr.Addr()},
		DisableCache:      true,
		ForceSingleClient: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return NewRedisTaskLocker(client, testPrefix, ttl, wait), mr
}

func TestRedisTaskLocker_AcquireSetsKeyWithTTL(t *testing.T) {
	locker, mr := newRedisLocker(t, 5*time.Second, 50*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), "task-1")
	require.NoError(t, err)

	assert.True(t, mr.Exists(testPrefix+"task-1"))
	assert.Equal(t, 5*time.Second, mr.TTL(testPrefix+"task-1"))

	unlock()
	assert.False(t, mr.Exists(testPrefix+"task-1"))

	unlock, err = locker.Lock(context.Background(), "task-1")
	require.NoError(t, err)
	unlock()
}

func TestRedisTaskLocker_ContentionReturnsBusy(t *testing.T) {
	locker, _ := newRedisLocker(t, 5*time.Second, 60*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), "task-1")
	require.NoError(t, err)
	defer unlock()

	start := time.Now()
	_, err = locker.Lock(context.Background(), "task-1")
	assert.True(t, errors.Is(err, apperrors.ErrTaskBusy), "got %v", err)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)

	other, err := locker.Lock(context.Background(), "task-2")
	require.NoError(t, err)
	other()
}

func TestRedisTaskLocker_ContextCancelled(t *testing.T) {
	locker, _ := newRedisLocker(t, 5*time.Second, 5*time.Second)

	unlock, err := locker.Lock(context.Background(), "task-1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "task-1")
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestRedisTaskLocker_ExpiredHolderCannotReleaseNewLock(t *testing.T) {
	locker, mr := newRedisLocker(t, time.Second, 50*time.Millisecond)
	key := testPrefix + "task-1"

	staleUnlock, err := locker.Lock(context.Background(), "task-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))

	freshUnlock, err := locker.Lock(context.Background(), "task-1")
	require.NoError(t, err)
	token, err := mr.Get(key)
	require.NoError(t, err)

	staleUnlock()

	current, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, token, current)

	freshUnlock()
	assert.False(t, mr.Exists(key))
}
