package broker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID         uuid.UUID
	RoutingKey string
	Body       []byte
	OccurredAt time.Time
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// LogPublisher stands in for the broker when AMQP is disabled.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, msg Message) error {
	p.logger.InfoContext(ctx, "payment event",
		"event_id", msg.ID.String(),
		"routing_key", msg.RoutingKey,
		"body", string(msg.Body))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
