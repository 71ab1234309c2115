//go:build unit || e2e

package builder

import (
	"time"

	"shootbook/internal/domain/payment"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID                uuid.UUID
	ClientID          uuid.UUID
	ProviderID        uuid.UUID
	QuoteID           *uuid.UUID
	TotalCents        int64
	DepositPercentage float64
	ServiceDate       time.Time
	PaymentStatus     payment.PaymentStatus
	ServiceStatus     payment.ServiceStatus
	PaymentIntentID   string
	DepositTransferID string
	BalanceTransferID string
	RefundID          string
	PolicyID          *uuid.UUID
	Cancellation      *payment.Cancellation
	Version           int64
	CreatedAt         time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &ReservationBuilder{
		ID:                uuid.New(),
		ClientID:          uuid.New(),
		ProviderID:        uuid.New(),
		TotalCents:        1000,
		DepositPercentage: 30,
		ServiceDate:       now.Add(72 * time.Hour),
		PaymentStatus:     payment.PaymentStatusPending,
		ServiceStatus:     payment.ServiceStatusConfirmed,
		Version:           1,
		CreatedAt:         now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// BuildDomain panics on an inconsistent split so broken fixtures fail loudly.
func (b *ReservationBuilder) BuildDomain() *payment.Reservation {
	split, err := payment.NewSplit(b.TotalCents, b.DepositPercentage)
	if err != nil {
		panic(err)
	}
	return payment.ReconstructReservation(payment.ReconstructParams{
		ID:                   b.ID,
		ClientID:             b.ClientID,
		ProviderID:           b.ProviderID,
		QuoteID:              b.QuoteID,
		Split:                split,
		ServiceDate:          b.ServiceDate,
		PaymentStatus:        b.PaymentStatus,
		ServiceStatus:        b.ServiceStatus,
		PaymentIntentID:      b.PaymentIntentID,
		DepositTransferID:    b.DepositTransferID,
		BalanceTransferID:    b.BalanceTransferID,
		RefundID:             b.RefundID,
		CancellationPolicyID: b.PolicyID,
		Cancellation:         b.Cancellation,
		Version:              b.Version,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.CreatedAt,
	})
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithClientID(id uuid.UUID) *ReservationBuilder {
	b.ClientID = id
	return b
}

func (b *ReservationBuilder) WithProviderID(id uuid.UUID) *ReservationBuilder {
	b.ProviderID = id
	return b
}

func (b *ReservationBuilder) WithTotal(totalCents int64, depositPercentage float64) *ReservationBuilder {
	b.TotalCents = totalCents
	b.DepositPercentage = depositPercentage
	return b
}

func (b *ReservationBuilder) WithServiceDate(at time.Time) *ReservationBuilder {
	b.ServiceDate = at
	return b
}

func (b *ReservationBuilder) WithPolicyID(id uuid.UUID) *ReservationBuilder {
	b.PolicyID = &id
	return b
}

func (b *ReservationBuilder) WithPaymentStatus(status payment.PaymentStatus) *ReservationBuilder {
	b.PaymentStatus = status
	return b
}

func (b *ReservationBuilder) WithServiceStatus(status payment.ServiceStatus) *ReservationBuilder {
	b.ServiceStatus = status
	return b
}

func (b *ReservationBuilder) AsIntentCreated() *ReservationBuilder {
	b.PaymentStatus = payment.PaymentStatusIntentCreated
	b.PaymentIntentID = "pi_" + b.ID.String()[:8]
	return b
}

func (b *ReservationBuilder) AsCaptured() *ReservationBuilder {
	b.AsIntentCreated()
	b.PaymentStatus = payment.PaymentStatusCaptured
	return b
}

func (b *ReservationBuilder) AsDepositPaid() *ReservationBuilder {
	b.AsCaptured()
	b.PaymentStatus = payment.PaymentStatusDepositPaid
	b.DepositTransferID = "tr_dep_" + b.ID.String()[:8]
	return b
}

// WithAppliedPolicy records the policy and fee used by an earlier cancellation.
func (b *ReservationBuilder) WithAppliedPolicy(id uuid.UUID, feeCents int64) *ReservationBuilder {
	if b.Cancellation != nil {
		b.Cancellation.PolicyID = &id
		b.Cancellation.FeeCents = feeCents
	}
	return b
}

func (b *ReservationBuilder) AsServiceFinished() *ReservationBuilder {
	b.ServiceStatus = payment.ServiceStatusFinished
	return b
}

func (b *ReservationBuilder) AsRefunded(refundCents int64, by payment.CancelledBy) *ReservationBuilder {
	b.AsCaptured()
	b.PaymentStatus = payment.PaymentStatusRefunded
	b.ServiceStatus = payment.ServiceStatusCancelled
	b.RefundID = "re_" + b.ID.String()[:8]
	b.Cancellation = &payment.Cancellation{
		At:               b.CreatedAt,
		By:               by,
		RefundCents:      refundCents,
		RefundPercentage: float64(refundCents) * 100 / float64(b.TotalCents),
	}
	return b
}
