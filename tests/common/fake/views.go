//go:build unit || e2e

package fake

import (
	"context"
	"encoding/json"
	"sort"

	"shootbook/internal/domain/payment"
	"shootbook/internal/infra"
	"shootbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// Views serves the read side from the same in-memory state as UoW.
type Views struct {
	U *UoW
}

var (
	_ queries.ReservationViewRepo = Views{}
	_ queries.PolicyViewRepo      = Views{}
)

func (v Views) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res, ok := v.U.Reservation(id)
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return reservationView(res), nil
}

func (v Views) FindTransactions(_ context.Context, reservationID uuid.UUID) ([]*queries.TransactionView, error) {
	txs := v.U.Transactions(reservationID)
	out := make([]*queries.TransactionView, len(txs))
	for i, t := range txs {
		tv := &queries.TransactionView{
			ID:            t.ID(),
			ReservationID: t.ReservationID(),
			Type:          string(t.Type()),
			AmountCents:   t.AmountCents(),
			ExternalID:    t.ExternalID(),
			Status:        string(t.Status()),
			CreatedAt:     t.CreatedAt(),
		}
		if t.Metadata() != nil {
			b, _ := json.Marshal(t.Metadata())
			_ = json.Unmarshal(b, &tv.Metadata)
		}
		out[i] = tv
	}
	return out, nil
}

func (v Views) FindViewByID(_ context.Context, id uuid.UUID) (*queries.PolicyView, error) {
	p, ok := v.U.Policy(id)
	if !ok {
		return nil, infra.WrapRepoErr("policy not found", nil, infra.KindNotFound)
	}
	return queries.NewPolicyView(p), nil
}

func (v Views) FindByProvider(_ context.Context, providerID uuid.UUID, includeInactive bool) ([]*queries.PolicyView, error) {
	all := v.U.PoliciesOf(providerID)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().Before(all[j].CreatedAt()) })
	out := make([]*queries.PolicyView, 0, len(all))
	for _, p := range all {
		if !includeInactive && !p.IsActive() {
			continue
		}
		out = append(out, queries.NewPolicyView(p))
	}
	return out, nil
}

func reservationView(res *payment.Reservation) *queries.ReservationView {
	s := res.Split()
	v := &queries.ReservationView{
		ID:                   res.ID(),
		ClientID:             res.ClientID(),
		ProviderID:           res.ProviderID(),
		QuoteID:              res.QuoteID(),
		TotalCents:           s.TotalCents(),
		DepositCents:         s.DepositCents(),
		BalanceCents:         s.BalanceCents(),
		DepositPercentage:    s.DepositPercentage(),
		ServiceDate:          res.ServiceDate(),
		PaymentStatus:        res.PaymentStatus().String(),
		ServiceStatus:        res.ServiceStatus().String(),
		PaymentIntentID:      nonEmpty(res.PaymentIntentID()),
		DepositTransferID:    nonEmpty(res.DepositTransferID()),
		BalanceTransferID:    nonEmpty(res.BalanceTransferID()),
		RefundID:             nonEmpty(res.RefundID()),
		CancellationPolicyID: res.CancellationPolicyID(),
		CreatedAt:            res.CreatedAt(),
		UpdatedAt:            res.UpdatedAt(),
	}
	if c := res.Cancellation(); c != nil {
		v.Cancellation = &queries.CancellationView{
			CancelledAt:      c.At,
			CancelledBy:      c.By.String(),
			Reason:           nonEmpty(c.Reason),
			PolicyID:         c.PolicyID,
			RefundCents:      c.RefundCents,
			RefundPercentage: c.RefundPercentage,
			FeeCents:         c.FeeCents,
		}
	}
	return v
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
