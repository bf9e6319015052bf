package locks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	apperrors "task-market.com/task-market/internal/errors"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisTaskLocker holds task locks as SET NX PX keys so several API
// instances sharing one database still serialize per task.
type RedisTaskLocker struct {
	client  rueidis.Client
	prefix  string
	ttl     time.Duration
	wait    time.Duration
	retry   time.Duration
	release *rueidis.Lua
}

func NewRedisTaskLocker(client rueidis.Client, prefix string, ttl, wait time.Duration) *RedisTaskLocker {
	return &RedisTaskLocker{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		wait:    wait,
		retry:   25 * time.Millisecond,
		release: rueidis.NewLuaScript(releaseScript),
	}
}

func (r *RedisTaskLocker) key(taskID string) string {
	return r.prefix + taskID
}

func (r *RedisTaskLocker) Lock(ctx context.Context, taskID string) (func(), error) {
	key := r.key(taskID)
	token := uuid.NewString()
	deadline := time.Now().Add(r.wait)

	for {
		cmd := r.client.B().Set().Key(key).Value(token).Nx().Px(r.ttl).Build()
		err := r.client.Do(ctx, cmd).Error()
		if err == nil {
			return func() {
				_ = r.release.Exec(context.Background(), r.client, []string{key}, []string{token}).Error()
			}, nil
		}
		if !rueidis.IsRedisNil(err) {
			return nil, err
		}

		if time.Now().After(deadline) {
			return nil, apperrors.ErrTaskBusy
		}

		select {
		case <-time.After(r.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
