package readstore

import (
	"context"
	"encoding/json"

	"shootbook/internal/domain/payment"
	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/repository/converter"
	"shootbook/internal/pkg/pgconv"
	"shootbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	ListTransactionsByReservation(ctx context.Context, db query.DBTX, reservationID uuid.UUID) ([]query.PaymentTransactions, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      query.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db query.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) findRow(ctx context.Context, id uuid.UUID) (query.Reservations, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return query.Reservations{}, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return query.Reservations{}, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return row, nil
}

// Load returns the aggregate for command-side use.
func (r *ReservationReadStore) Load(ctx context.Context, id uuid.UUID) (*payment.Reservation, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationReadStore) LoadTransactions(ctx context.Context, reservationID uuid.UUID) ([]*payment.Transaction, error) {
	rows, err := r.queries.ListTransactionsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	out := make([]*payment.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := converter.TransactionFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode transaction", err, infra.KindDBFailure)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return rowToReservationView(row), nil
}

func (r *ReservationReadStore) FindTransactions(ctx context.Context, reservationID uuid.UUID) ([]*queries.TransactionView, error) {
	rows, err := r.queries.ListTransactionsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	result := make([]*queries.TransactionView, len(rows))
	for i, row := range rows {
		result[i] = rowToTransactionView(row)
	}
	return result, nil
}

func rowToReservationView(row query.Reservations) *queries.ReservationView {
	v := &queries.ReservationView{
		ID:                   row.ID,
		ClientID:             row.ClientID,
		ProviderID:           row.ProviderID,
		QuoteID:              pgconv.UUIDPtrFromPgtype(row.QuoteID),
		TotalCents:           row.TotalCents,
		DepositCents:         row.DepositCents,
		BalanceCents:         row.BalanceCents,
		DepositPercentage:    row.DepositPercentage,
		ServiceDate:          row.ServiceDate.UTC(),
		PaymentStatus:        row.PaymentStatus,
		ServiceStatus:        row.ServiceStatus,
		PaymentIntentID:      pgconv.StringPtrFromPgtype(row.PaymentIntentID),
		DepositTransferID:    pgconv.StringPtrFromPgtype(row.DepositTransferID),
		BalanceTransferID:    pgconv.StringPtrFromPgtype(row.BalanceTransferID),
		RefundID:             pgconv.StringPtrFromPgtype(row.RefundID),
		CancellationPolicyID: pgconv.UUIDPtrFromPgtype(row.CancellationPolicyID),
		CreatedAt:            row.CreatedAt.UTC(),
		UpdatedAt:            row.UpdatedAt.UTC(),
	}
	if row.CancelledAt.Valid {
		v.Cancellation = &queries.CancellationView{
			CancelledAt:      row.CancelledAt.Time.UTC(),
			CancelledBy:      row.CancelledBy.String,
			Reason:           pgconv.StringPtrFromPgtype(row.CancellationReason),
			PolicyID:         pgconv.UUIDPtrFromPgtype(row.AppliedPolicyID),
			RefundCents:      row.RefundCents.Int64,
			RefundPercentage: row.RefundPercentage.Float64,
			FeeCents:         row.CancellationFeeCents.Int64,
		}
	}
	return v
}

func rowToTransactionView(row query.PaymentTransactions) *queries.TransactionView {
	v := &queries.TransactionView{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		Type:          row.Type,
		AmountCents:   row.AmountCents,
		ExternalID:    row.ExternalID,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt.UTC(),
	}
	if len(row.Metadata) > 0 {
		var meta map[string]any
		if err := json.Unmarshal(row.Metadata, &meta); err == nil {
			v.Metadata = meta
		}
	}
	return v
}
