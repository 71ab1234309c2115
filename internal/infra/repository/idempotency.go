package repository

import (
	"context"
	"time"

	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db query.DBTX, arg query.TryInsertIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db query.DBTX, arg query.UpdateIdempotencyKeyCompletedParams) error
	DeleteProcessingIdempotencyKey(ctx context.Context, db query.DBTX, key, userID uuid.UUID) error
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      query.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db query.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := query.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}

	affected, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return affected == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key uuid.UUID, userID uuid.UUID, responseBodyHash string, resultReservationID uuid.UUID) error {
	params := query.UpdateIdempotencyKeyCompletedParams{
		Key:                 key,
		UserID:              userID,
		ResponseBodyHash:    pgconv.EmptyAsNullText(responseBodyHash),
		ResultReservationID: pgconv.UUIDToPgtype(resultReservationID),
	}

	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key, userID uuid.UUID) error {
	if err := r.queries.DeleteProcessingIdempotencyKey(ctx, r.db, key, userID); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
