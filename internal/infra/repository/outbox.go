package repository

import (
	"context"

	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/usecase/shared"
)

type OutboxWriteQueries interface {
	EnqueuePaymentEvent(ctx context.Context, db query.DBTX, arg query.EnqueuePaymentEventParams) error
}

// OutboxRepository writes payment_events rows inside the caller's transaction.
type OutboxRepository struct {
	queries OutboxWriteQueries
	db      query.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db query.DBTX) *OutboxRepository {
	return &OutboxRepository{queries: queries, db: db}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, ev shared.OutboxEvent) error {
	err := r.queries.EnqueuePaymentEvent(ctx, r.db, query.EnqueuePaymentEventParams{
		ID:          ev.ID,
		AggregateID: ev.AggregateID,
		EventType:   ev.Type,
		Payload:     ev.Payload,
		OccurredAt:  ev.OccurredAt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue payment event", err)
	}
	return nil
}
