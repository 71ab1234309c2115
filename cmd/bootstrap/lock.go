package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shootbook/internal/infra/lock"
	"shootbook/internal/pkg/config"
	"shootbook/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewLocker,
	),
)

// NewLocker picks the lock backend. Redis is required once more than one API
// instance serves the same database.
func NewLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Locker, error) {
	if cfg.Lock.Backend != "redis" {
		logger.Info("using in-process reservation locks")
		return lock.NewMemoryLocker(cfg.Lock.Wait), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("using redis reservation locks", "addr", cfg.Redis.Addr)
	return lock.NewRedisLocker(client, cfg.Lock.TTL, cfg.Lock.Wait), nil
}
