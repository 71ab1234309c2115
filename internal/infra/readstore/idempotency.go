package readstore

import (
	"context"
	"time"

	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db query.DBTX, key, userID uuid.UUID) (query.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	db      query.DBTX
	now     func() time.Time
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, db query.DBTX, now func() time.Time) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		db:      db,
		now:     now,
	}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, r.db, key, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record := &shared.IdempotencyRecord{
		Key:                 row.Key,
		UserID:              row.UserID,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           row.ExpiresAt.UTC(),
	}

	if r.now().After(record.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return record, nil
}
