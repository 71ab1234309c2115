package repository

import (
	"context"

	"shootbook/internal/domain/payment"
	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/repository/converter"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) error
	UpdateReservationVersioned(ctx context.Context, db query.DBTX, arg query.UpdateReservationVersionedParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      query.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db query.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *payment.Reservation) error {
	if err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToCreateParams(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

// Update is a compare-and-set on version. Losing the race leaves the row untouched.
func (r *ReservationRepository) Update(ctx context.Context, res *payment.Reservation) error {
	affected, err := r.queries.UpdateReservationVersioned(ctx, r.db, converter.ReservationToUpdateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation was modified concurrently", nil, infra.KindConflict)
	}
	return nil
}
