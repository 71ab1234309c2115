package lock

import (
	"context"
	"log/slog"
	"time"

	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "shootbook:lock:"
	pollInterval = 50 * time.Millisecond
)

// Deletes the key only while it still holds this owner's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds a per-key lease shared by every API instance. The TTL
// bounds how long a crashed holder can block the key.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client redis.UniversalClient, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait}
}

var _ shared.Locker = (*RedisLocker)(nil)

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, errs.Wrapf(err, "acquire lock %s", key)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, errs.Wrapf(errs.ErrOperationInProgress, "lock %s busy", key)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	return func() {
		// The caller's context may already be cancelled.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("failed to release lock", "key", key, "error", err.Error())
		}
	}, nil
}
