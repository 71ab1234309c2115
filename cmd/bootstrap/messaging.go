package bootstrap

import (
	"context"
	"log/slog"

	"shootbook/internal/infra/broker"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/outbox"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublisher,
		fx.Annotate(
			NewOutboxStore,
			fx.As(new(outbox.Store)),
		),
		NewOutboxRelay,
	),
	fx.Invoke(startOutboxRelay),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) broker.Publisher {
	var pub broker.Publisher
	if cfg.AMQP.Enabled {
		pub = broker.NewRabbitPublisher(cfg.AMQP)
		logger.Info("publishing payment events to rabbitmq", "exchange", cfg.AMQP.Exchange)
	} else {
		pub = broker.NewLogPublisher(logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}

func NewOutboxStore(pool *pgxpool.Pool, q *query.Queries) *outbox.PgStore {
	return outbox.NewPgStore(pool, q)
}

func NewOutboxRelay(store outbox.Store, pub broker.Publisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	return outbox.NewRelay(store, pub, clk, cfg.Outbox, logger)
}

func startOutboxRelay(lc fx.Lifecycle, relay *outbox.Relay, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			logger.Info("outbox relay started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
}
