package converter

import (
	"fmt"

	"shootbook/internal/domain/payment"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToCreateParams(res *payment.Reservation) query.CreateReservationParams {
	split := res.Split()
	return query.CreateReservationParams{
		ID:                   res.ID(),
		ClientID:             res.ClientID(),
		ProviderID:           res.ProviderID(),
		QuoteID:              pgconv.UUIDPtrToPgtype(res.QuoteID()),
		TotalCents:           split.TotalCents(),
		DepositCents:         split.DepositCents(),
		BalanceCents:         split.BalanceCents(),
		DepositPercentage:    split.DepositPercentage(),
		ServiceDate:          res.ServiceDate(),
		PaymentStatus:        res.PaymentStatus().String(),
		ServiceStatus:        res.ServiceStatus().String(),
		CancellationPolicyID: pgconv.UUIDPtrToPgtype(res.CancellationPolicyID()),
		Version:              res.Version(),
		CreatedAt:            res.CreatedAt(),
		UpdatedAt:            res.UpdatedAt(),
	}
}

func ReservationToUpdateParams(res *payment.Reservation) query.UpdateReservationVersionedParams {
	split := res.Split()
	params := query.UpdateReservationVersionedParams{
		ID:                res.ID(),
		Version:           res.Version(),
		TotalCents:        split.TotalCents(),
		DepositCents:      split.DepositCents(),
		BalanceCents:      split.BalanceCents(),
		DepositPercentage: split.DepositPercentage(),
		PaymentStatus:     res.PaymentStatus().String(),
		ServiceStatus:     res.ServiceStatus().String(),
		PaymentIntentID:   pgconv.EmptyAsNullText(res.PaymentIntentID()),
		DepositTransferID: pgconv.EmptyAsNullText(res.DepositTransferID()),
		BalanceTransferID: pgconv.EmptyAsNullText(res.BalanceTransferID()),
		RefundID:          pgconv.EmptyAsNullText(res.RefundID()),
		UpdatedAt:         res.UpdatedAt(),
	}

	if c := res.Cancellation(); c != nil {
		params.CancelledAt = pgconv.TimeToPgtype(c.At)
		params.CancelledBy = pgconv.EmptyAsNullText(string(c.By))
		params.CancellationReason = pgconv.EmptyAsNullText(c.Reason)
		params.RefundCents = pgtype.Int8{Int64: c.RefundCents, Valid: true}
		params.RefundPercentage = pgtype.Float8{Float64: c.RefundPercentage, Valid: true}
		params.AppliedPolicyID = pgconv.UUIDPtrToPgtype(c.PolicyID)
		params.CancellationFeeCents = pgtype.Int8{Int64: c.FeeCents, Valid: true}
	}

	return params
}

func ReservationFromRow(row query.Reservations) (*payment.Reservation, error) {
	split, err := payment.ReconstructSplit(row.TotalCents, row.DepositCents, row.BalanceCents, row.DepositPercentage)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}
	ps, err := payment.ParsePaymentStatus(row.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}
	ss, err := payment.ParseServiceStatus(row.ServiceStatus)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}

	var c *payment.Cancellation
	if row.CancelledAt.Valid {
		by, err := payment.ParseCancelledBy(row.CancelledBy.String)
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
		}
		c = &payment.Cancellation{
			At:               row.CancelledAt.Time.UTC(),
			By:               by,
			Reason:           row.CancellationReason.String,
			PolicyID:         pgconv.UUIDPtrFromPgtype(row.AppliedPolicyID),
			RefundCents:      row.RefundCents.Int64,
			RefundPercentage: row.RefundPercentage.Float64,
			FeeCents:         row.CancellationFeeCents.Int64,
		}
	}

	return payment.ReconstructReservation(payment.ReconstructParams{
		ID:                   row.ID,
		ClientID:             row.ClientID,
		ProviderID:           row.ProviderID,
		QuoteID:              pgconv.UUIDPtrFromPgtype(row.QuoteID),
		Split:                split,
		ServiceDate:          row.ServiceDate.UTC(),
		PaymentStatus:        ps,
		ServiceStatus:        ss,
		PaymentIntentID:      row.PaymentIntentID.String,
		DepositTransferID:    row.DepositTransferID.String,
		BalanceTransferID:    row.BalanceTransferID.String,
		RefundID:             row.RefundID.String,
		CancellationPolicyID: pgconv.UUIDPtrFromPgtype(row.CancellationPolicyID),
		Cancellation:         c,
		Version:              row.Version,
		CreatedAt:            row.CreatedAt.UTC(),
		UpdatedAt:            row.UpdatedAt.UTC(),
	}), nil
}
