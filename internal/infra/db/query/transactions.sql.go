package query

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createPaymentTransaction = `-- name: CreatePaymentTransaction :exec
INSERT INTO payment_transactions (id, reservation_id, type, amount_cents, external_id, status, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreatePaymentTransactionParams struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Type          string
	AmountCents   int64
	ExternalID    string
	Status        string
	Metadata      []byte
	CreatedAt     time.Time
}

func (q *Queries) CreatePaymentTransaction(ctx context.Context, db DBTX, arg CreatePaymentTransactionParams) error {
	_, err := db.Exec(ctx, createPaymentTransaction,
		arg.ID,
		arg.ReservationID,
		arg.Type,
		arg.AmountCents,
		arg.ExternalID,
		arg.Status,
		arg.Metadata,
		arg.CreatedAt,
	)
	return err
}

const listTransactionsByReservation = `-- name: ListTransactionsByReservation :many
SELECT id, reservation_id, type, amount_cents, external_id, status, metadata, created_at
FROM payment_transactions
WHERE reservation_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListTransactionsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]PaymentTransactions, error) {
	rows, err := db.Query(ctx, listTransactionsByReservation, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PaymentTransactions
	for rows.Next() {
		var i PaymentTransactions
		if err := rows.Scan(
			&i.ID,
			&i.ReservationID,
			&i.Type,
			&i.AmountCents,
			&i.ExternalID,
			&i.Status,
			&i.Metadata,
			&i.CreatedAt,
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
