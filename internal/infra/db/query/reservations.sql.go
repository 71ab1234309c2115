package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, client_id, provider_id, quote_id, total_cents, deposit_cents, balance_cents,
       deposit_percentage, service_date, payment_status, service_status, payment_intent_id,
       deposit_transfer_id, balance_transfer_id, refund_id, cancellation_policy_id, cancelled_at,
       cancelled_by, cancellation_reason, refund_cents, refund_percentage, applied_policy_id,
       cancellation_fee_cents, version, created_at, updated_at`

const createReservation = `-- name: CreateReservation :exec
INSERT INTO reservations (
    id, client_id, provider_id, quote_id, total_cents, deposit_cents, balance_cents,
    deposit_percentage, service_date, payment_status, service_status,
    cancellation_policy_id, version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

type CreateReservationParams struct {
	ID                   uuid.UUID
	ClientID             uuid.UUID
	ProviderID           uuid.UUID
	QuoteID              pgtype.UUID
	TotalCents           int64
	DepositCents         int64
	BalanceCents         int64
	DepositPercentage    float64
	ServiceDate          time.Time
	PaymentStatus        string
	ServiceStatus        string
	CancellationPolicyID pgtype.UUID
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.ClientID,
		arg.ProviderID,
		arg.QuoteID,
		arg.TotalCents,
		arg.DepositCents,
		arg.BalanceCents,
		arg.DepositPercentage,
		arg.ServiceDate,
		arg.PaymentStatus,
		arg.ServiceStatus,
		arg.CancellationPolicyID,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateReservationVersioned = `-- name: UpdateReservationVersioned :execrows
UPDATE reservations SET
    total_cents = $3,
    deposit_cents = $4,
    balance_cents = $5,
    deposit_percentage = $6,
    payment_status = $7,
    service_status = $8,
    payment_intent_id = $9,
    deposit_transfer_id = $10,
    balance_transfer_id = $11,
    refund_id = $12,
    cancelled_at = $13,
    cancelled_by = $14,
    cancellation_reason = $15,
    refund_cents = $16,
    refund_percentage = $17,
    applied_policy_id = $18,
    cancellation_fee_cents = $19,
    updated_at = $20,
    version = version + 1
WHERE id = $1 AND version = $2
`

type UpdateReservationVersionedParams struct {
	ID                 uuid.UUID
	Version            int64
	TotalCents         int64
	DepositCents       int64
	BalanceCents       int64
	DepositPercentage  float64
	PaymentStatus      string
	ServiceStatus      string
	PaymentIntentID    pgtype.Text
	DepositTransferID  pgtype.Text
	BalanceTransferID  pgtype.Text
	RefundID           pgtype.Text
	CancelledAt        pgtype.Timestamptz
	CancelledBy        pgtype.Text
	CancellationReason pgtype.Text
	RefundCents        pgtype.Int8
	RefundPercentage     pgtype.Float8
	AppliedPolicyID      pgtype.UUID
	CancellationFeeCents pgtype.Int8
	UpdatedAt            time.Time
}

func (q *Queries) UpdateReservationVersioned(ctx context.Context, db DBTX, arg UpdateReservationVersionedParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservationVersioned,
		arg.ID,
		arg.Version,
		arg.TotalCents,
		arg.DepositCents,
		arg.BalanceCents,
		arg.DepositPercentage,
		arg.PaymentStatus,
		arg.ServiceStatus,
		arg.PaymentIntentID,
		arg.DepositTransferID,
		arg.BalanceTransferID,
		arg.RefundID,
		arg.CancelledAt,
		arg.CancelledBy,
		arg.CancellationReason,
		arg.RefundCents,
		arg.RefundPercentage,
		arg.AppliedPolicyID,
		arg.CancellationFeeCents,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getReservationByID = `-- name: GetReservationByID :one
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1
`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	row := db.QueryRow(ctx, getReservationByID, id)
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.ProviderID,
		&i.QuoteID,
		&i.TotalCents,
		&i.DepositCents,
		&i.BalanceCents,
		&i.DepositPercentage,
		&i.ServiceDate,
		&i.PaymentStatus,
		&i.ServiceStatus,
		&i.PaymentIntentID,
		&i.DepositTransferID,
		&i.BalanceTransferID,
		&i.RefundID,
		&i.CancellationPolicyID,
		&i.CancelledAt,
		&i.CancelledBy,
		&i.CancellationReason,
		&i.RefundCents,
		&i.RefundPercentage,
		&i.AppliedPolicyID,
		&i.CancellationFeeCents,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
