package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKey = `-- name: TryInsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO UPDATE
    SET endpoint = EXCLUDED.endpoint,
        request_hash = EXCLUDED.request_hash,
        status = 'processing',
        response_body_hash = NULL,
        result_reservation_id = NULL,
        expires_at = EXCLUDED.expires_at,
        created_at = now()
    WHERE idempotency_keys.expires_at < now()
`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   time.Time
}

// TryInsertIdempotencyKey claims the key, taking over an expired record. It
// affects no row when a live record already exists.
func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, tryInsertIdempotencyKey,
		arg.Key,
		arg.UserID,
		arg.Endpoint,
		arg.RequestHash,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, user_id, endpoint, request_hash, status, response_body_hash, result_reservation_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) (IdempotencyKeys, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, key, userID)
	var i IdempotencyKeys
	err := row.Scan(
		&i.Key,
		&i.UserID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResponseBodyHash,
		&i.ResultReservationID,
		&i.ExpiresAt,
	)
	return i, err
}

const updateIdempotencyKeyCompleted = `-- name: UpdateIdempotencyKeyCompleted :exec
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_reservation_id = $4
WHERE key = $1 AND user_id = $2
`

type UpdateIdempotencyKeyCompletedParams struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	ResponseBodyHash    pgtype.Text
	ResultReservationID pgtype.UUID
}

func (q *Queries) UpdateIdempotencyKeyCompleted(ctx context.Context, db DBTX, arg UpdateIdempotencyKeyCompletedParams) error {
	_, err := db.Exec(ctx, updateIdempotencyKeyCompleted,
		arg.Key,
		arg.UserID,
		arg.ResponseBodyHash,
		arg.ResultReservationID,
	)
	return err
}

const deleteProcessingIdempotencyKey = `-- name: DeleteProcessingIdempotencyKey :exec
DELETE FROM idempotency_keys
WHERE key = $1 AND user_id = $2 AND status = 'processing'
`

func (q *Queries) DeleteProcessingIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) error {
	_, err := db.Exec(ctx, deleteProcessingIdempotencyKey, key, userID)
	return err
}
