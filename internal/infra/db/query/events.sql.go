package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const enqueuePaymentEvent = `-- name: EnqueuePaymentEvent :exec
INSERT INTO payment_events (id, aggregate_id, event_type, payload, status, attempts, next_attempt_at, occurred_at)
VALUES ($1, $2, $3, $4, 'pending', 0, $5, $5)
`

type EnqueuePaymentEventParams struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	OccurredAt  time.Time
}

func (q *Queries) EnqueuePaymentEvent(ctx context.Context, db DBTX, arg EnqueuePaymentEventParams) error {
	_, err := db.Exec(ctx, enqueuePaymentEvent,
		arg.ID,
		arg.AggregateID,
		arg.EventType,
		arg.Payload,
		arg.OccurredAt,
	)
	return err
}

const claimPendingPaymentEvents = `-- name: ClaimPendingPaymentEvents :many
SELECT id, aggregate_id, event_type, payload, status, attempts, last_error, next_attempt_at, occurred_at
FROM payment_events
WHERE status = 'pending' AND next_attempt_at <= $1
ORDER BY occurred_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED
`

func (q *Queries) ClaimPendingPaymentEvents(ctx context.Context, db DBTX, now time.Time, limit int32) ([]PaymentEvents, error) {
	rows, err := db.Query(ctx, claimPendingPaymentEvents, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PaymentEvents
	for rows.Next() {
		var i PaymentEvents
		if err := rows.Scan(
			&i.ID,
			&i.AggregateID,
			&i.EventType,
			&i.Payload,
			&i.Status,
			&i.Attempts,
			&i.LastError,
			&i.NextAttemptAt,
			&i.OccurredAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markPaymentEventSent = `-- name: MarkPaymentEventSent :exec
UPDATE payment_events
SET status = 'sent', sent_at = $2, attempts = attempts + 1, last_error = NULL
WHERE id = $1
`

func (q *Queries) MarkPaymentEventSent(ctx context.Context, db DBTX, id uuid.UUID, sentAt time.Time) error {
	_, err := db.Exec(ctx, markPaymentEventSent, id, sentAt)
	return err
}

const markPaymentEventAttemptFailed = `-- name: MarkPaymentEventAttemptFailed :exec
UPDATE payment_events
SET status = $2, attempts = attempts + 1, last_error = $3, next_attempt_at = $4
WHERE id = $1
`

type MarkPaymentEventAttemptFailedParams struct {
	ID            uuid.UUID
	Status        string
	LastError     pgtype.Text
	NextAttemptAt time.Time
}

func (q *Queries) MarkPaymentEventAttemptFailed(ctx context.Context, db DBTX, arg MarkPaymentEventAttemptFailedParams) error {
	_, err := db.Exec(ctx, markPaymentEventAttemptFailed, arg.ID, arg.Status, arg.LastError, arg.NextAttemptAt)
	return err
}
