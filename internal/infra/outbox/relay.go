package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shootbook/internal/infra/broker"
	"shootbook/internal/infra/metrics"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/config"
)

const (
	baseBackoff = time.Second
	maxBackoff  = 5 * time.Minute
)

// Relay moves pending payment_events rows to the broker. Delivery is at least
// once; consumers dedupe on the message id.
type Relay struct {
	store     Store
	publisher broker.Publisher
	clock     clock.Clock
	cfg       config.OutboxConfig
	logger    *slog.Logger

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewRelay(store Store, publisher broker.Publisher, clk clock.Clock, cfg config.OutboxConfig, logger *slog.Logger) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (r *Relay) Start() {
	go r.loop()
}

// Stop waits for the in-flight batch to finish or ctx to expire.
func (r *Relay) Stop(ctx context.Context) error {
	r.once.Do(func() { close(r.stop) })
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) loop() {
	defer close(r.done)
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := r.RunOnce(ctx); err != nil {
				r.logger.Error("outbox relay batch failed", "error", err.Error())
			}
			cancel()
		}
	}
}

// RunOnce publishes one batch and reports how many events were sent.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	now := r.clock.Now()
	batch, err := r.store.Claim(ctx, now, r.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, ev := range batch.Events() {
		msg := broker.Message{
			ID:         ev.ID,
			RoutingKey: ev.Type,
			Body:       ev.Payload,
			OccurredAt: ev.OccurredAt,
		}
		pubErr := r.publisher.Publish(ctx, msg)
		metrics.ObserveOutbox(pubErr)

		if pubErr == nil {
			err = batch.MarkSent(ctx, ev.ID, now)
			sent++
		} else {
			status, next := r.nextAttempt(ev.Attempts+1, now)
			r.logger.Warn("failed to publish payment event",
				"event_id", ev.ID.String(),
				"event_type", ev.Type,
				"attempt", ev.Attempts+1,
				"status", status,
				"error", pubErr.Error())
			err = batch.MarkFailed(ctx, ev.ID, status, pubErr.Error(), next)
		}
		if err != nil {
			_ = batch.Rollback(ctx)
			return 0, err
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return 0, err
	}
	return sent, nil
}

func (r *Relay) nextAttempt(attempts int, now time.Time) (string, time.Time) {
	if r.cfg.MaxAttempts > 0 && attempts >= r.cfg.MaxAttempts {
		return StatusFailed, now
	}
	backoff := baseBackoff << min(attempts-1, 16)
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return StatusPending, now.Add(backoff)
}
