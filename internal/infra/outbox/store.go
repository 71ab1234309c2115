package outbox

import (
	"context"
	"errors"
	"time"

	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

type Event struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        string
	Payload     []byte
	Attempts    int
	OccurredAt  time.Time
}

// Batch is a set of claimed events. Claims last until Commit or Rollback.
type Batch interface {
	Events() []Event
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, status, lastError string, nextAttemptAt time.Time) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Store interface {
	Claim(ctx context.Context, now time.Time, limit int) (Batch, error)
}

// PgStore claims rows with FOR UPDATE SKIP LOCKED so several relays can share the table.
type PgStore struct {
	pool *pgxpool.Pool
	q    *query.Queries
}

func NewPgStore(pool *pgxpool.Pool, q *query.Queries) *PgStore {
	return &PgStore{pool: pool, q: q}
}

func (s *PgStore) Claim(ctx context.Context, now time.Time, limit int) (Batch, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to begin outbox transaction", err)
	}
	rows, err := s.q.ClaimPendingPaymentEvents(ctx, tx, now, int32(limit)) // #nosec G115 -- batch size is small
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, infra.WrapRepoErr("failed to claim payment events", err)
	}
	events := make([]Event, len(rows))
	for i, r := range rows {
		events[i] = Event{
			ID:          r.ID,
			AggregateID: r.AggregateID,
			Type:        r.EventType,
			Payload:     r.Payload,
			Attempts:    int(r.Attempts),
			OccurredAt:  r.OccurredAt.UTC(),
		}
	}
	return &pgBatch{tx: tx, q: s.q, events: events}, nil
}

type pgBatch struct {
	tx     pgx.Tx
	q      *query.Queries
	events []Event
}

func (b *pgBatch) Events() []Event { return b.events }

func (b *pgBatch) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := b.q.MarkPaymentEventSent(ctx, b.tx, id, at); err != nil {
		return infra.WrapRepoErr("failed to mark payment event sent", err)
	}
	return nil
}

func (b *pgBatch) MarkFailed(ctx context.Context, id uuid.UUID, status, lastError string, nextAttemptAt time.Time) error {
	err := b.q.MarkPaymentEventAttemptFailed(ctx, b.tx, query.MarkPaymentEventAttemptFailedParams{
		ID:            id,
		Status:        status,
		LastError:     pgconv.EmptyAsNullText(lastError),
		NextAttemptAt: nextAttemptAt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record payment event attempt", err)
	}
	return nil
}

func (b *pgBatch) Commit(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit outbox batch", err)
	}
	return nil
}

func (b *pgBatch) Rollback(ctx context.Context) error {
	if err := b.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
