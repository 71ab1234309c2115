package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid payment status transition")
	ErrServiceNotFinished   = errors.New("service has not been completed")
	ErrReservationCancelled = errors.New("reservation is cancelled")
	ErrInvalidCancellation  = errors.New("invalid cancellation")
	ErrMissingExternalID    = errors.New("external reference is required")
	ErrInvalidParty         = errors.New("invalid reservation party")
)

// Cancellation records who cancelled, which policy was applied and what the
// client got back. PolicyID is nil for provider cancellations and for
// reservations without any policy.
type Cancellation struct {
	At               time.Time
	By               CancelledBy
	Reason           string
	PolicyID         *uuid.UUID
	RefundCents      int64
	RefundPercentage float64
	FeeCents         int64
}

type NewReservationParams struct {
	ClientID          uuid.UUID
	ProviderID        uuid.UUID
	QuoteID           *uuid.UUID
	TotalCents        int64
	DepositPercentage float64
	ServiceDate       time.Time
	PolicyID          *uuid.UUID
}

type Reservation struct {
	id                   uuid.UUID
	clientID             uuid.UUID
	providerID           uuid.UUID
	quoteID              *uuid.UUID
	split                Split
	serviceDate          time.Time
	paymentStatus        PaymentStatus
	serviceStatus        ServiceStatus
	paymentIntentID      string
	depositTransferID    string
	balanceTransferID    string
	refundID             string
	cancellationPolicyID *uuid.UUID
	cancellation         *Cancellation
	version              int64
	createdAt            time.Time
	updatedAt            time.Time
}

// NewReservation creates the reservation a client gets when accepting a quote.
func NewReservation(p NewReservationParams, now time.Time) (*Reservation, error) {
	if p.ClientID == uuid.Nil || p.ProviderID == uuid.Nil {
		return nil, fmt.Errorf("%w: client and provider are required", ErrInvalidParty)
	}
	if p.ClientID == p.ProviderID {
		return nil, fmt.Errorf("%w: client and provider must differ", ErrInvalidParty)
	}
	split, err := NewSplit(p.TotalCents, p.DepositPercentage)
	if err != nil {
		return nil, err
	}
	if p.ServiceDate.IsZero() {
		return nil, errors.New("service date is required")
	}

	return &Reservation{
		id:                   uuid.New(),
		clientID:             p.ClientID,
		providerID:           p.ProviderID,
		quoteID:              p.QuoteID,
		split:                split,
		serviceDate:          p.ServiceDate.UTC(),
		paymentStatus:        PaymentStatusPending,
		serviceStatus:        ServiceStatusConfirmed,
		cancellationPolicyID: p.PolicyID,
		version:              1,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

type ReconstructParams struct {
	ID                   uuid.UUID
	ClientID             uuid.UUID
	ProviderID           uuid.UUID
	QuoteID              *uuid.UUID
	Split                Split
	ServiceDate          time.Time
	PaymentStatus        PaymentStatus
	ServiceStatus        ServiceStatus
	PaymentIntentID      string
	DepositTransferID    string
	BalanceTransferID    string
	RefundID             string
	CancellationPolicyID *uuid.UUID
	Cancellation         *Cancellation
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func ReconstructReservation(p ReconstructParams) *Reservation {
	return &Reservation{
		id:                   p.ID,
		clientID:             p.ClientID,
		providerID:           p.ProviderID,
		quoteID:              p.QuoteID,
		split:                p.Split,
		serviceDate:          p.ServiceDate,
		paymentStatus:        p.PaymentStatus,
		serviceStatus:        p.ServiceStatus,
		paymentIntentID:      p.PaymentIntentID,
		depositTransferID:    p.DepositTransferID,
		balanceTransferID:    p.BalanceTransferID,
		refundID:             p.RefundID,
		cancellationPolicyID: p.CancellationPolicyID,
		cancellation:         p.Cancellation,
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}
}

func (r *Reservation) transition(from []PaymentStatus, to PaymentStatus) error {
	for _, s := range from {
		if r.paymentStatus == s {
			r.paymentStatus = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.paymentStatus, to)
}

// MarkIntentCreated stores the remote intent together with the split it was created for.
func (r *Reservation) MarkIntentCreated(intentID string, split Split, now time.Time) error {
	if strings.TrimSpace(intentID) == "" {
		return ErrMissingExternalID
	}
	if err := r.transition([]PaymentStatus{PaymentStatusPending}, PaymentStatusIntentCreated); err != nil {
		return err
	}
	r.paymentIntentID = intentID
	r.split = split
	r.updatedAt = now
	return nil
}

func (r *Reservation) MarkCaptured(now time.Time) error {
	if err := r.transition([]PaymentStatus{PaymentStatusIntentCreated}, PaymentStatusCaptured); err != nil {
		return err
	}
	r.updatedAt = now
	return nil
}

// MarkDepositPaid accepts an empty transferID only for a zero deposit.
func (r *Reservation) MarkDepositPaid(transferID string, now time.Time) error {
	if transferID == "" && r.split.DepositCents() > 0 {
		return ErrMissingExternalID
	}
	if err := r.transition([]PaymentStatus{PaymentStatusCaptured}, PaymentStatusDepositPaid); err != nil {
		return err
	}
	r.depositTransferID = transferID
	r.updatedAt = now
	return nil
}

func (r *Reservation) CanSettle() error {
	if r.serviceStatus != ServiceStatusFinished {
		return ErrServiceNotFinished
	}
	if r.paymentStatus != PaymentStatusDepositPaid {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.paymentStatus, PaymentStatusSettled)
	}
	return nil
}

func (r *Reservation) MarkSettled(transferID string, now time.Time) error {
	if err := r.CanSettle(); err != nil {
		return err
	}
	if transferID == "" && r.split.BalanceCents() > 0 {
		return ErrMissingExternalID
	}
	r.paymentStatus = PaymentStatusSettled
	r.balanceTransferID = transferID
	r.updatedAt = now
	return nil
}

// FinishService records that the shoot took place. It does not move money.
func (r *Reservation) FinishService(now time.Time) error {
	if r.IsCancelled() {
		return ErrReservationCancelled
	}
	switch r.serviceStatus {
	case ServiceStatusPending, ServiceStatusConfirmed:
	default:
		return fmt.Errorf("%w: service %s -> %s", ErrInvalidTransition, r.serviceStatus, ServiceStatusFinished)
	}
	r.serviceStatus = ServiceStatusFinished
	r.updatedAt = now
	return nil
}

func (r *Reservation) CanCancel() error {
	if r.paymentStatus.IsTerminal() {
		return fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidTransition, r.paymentStatus)
	}
	return nil
}

// Cancel moves the reservation to refunded when money was returned, or to
// cancelled when nothing was. refundID is required if the refund is non-zero.
func (r *Reservation) Cancel(c Cancellation, refundID string) error {
	if err := r.CanCancel(); err != nil {
		return err
	}
	if _, err := ParseCancelledBy(string(c.By)); err != nil {
		return err
	}
	if c.RefundCents < 0 || c.RefundCents > r.split.TotalCents() {
		return fmt.Errorf("%w: refund %d out of range", ErrInvalidCancellation, c.RefundCents)
	}
	if c.FeeCents < 0 {
		return fmt.Errorf("%w: negative fee %d", ErrInvalidCancellation, c.FeeCents)
	}
	if c.RefundCents > 0 && refundID == "" {
		return ErrMissingExternalID
	}

	if c.RefundCents > 0 {
		r.paymentStatus = PaymentStatusRefunded
		r.refundID = refundID
	} else {
		r.paymentStatus = PaymentStatusCancelled
	}
	r.serviceStatus = ServiceStatusCancelled
	rec := c
	r.cancellation = &rec
	r.updatedAt = c.At
	return nil
}

func (r *Reservation) IsCancelled() bool {
	return r.paymentStatus == PaymentStatusRefunded || r.paymentStatus == PaymentStatusCancelled
}

func (r *Reservation) HasCapturedFunds() bool { return r.paymentStatus.HoldsFunds() }

// IsParty reports whether the user is the client or the provider of this reservation.
func (r *Reservation) IsParty(userID uuid.UUID) bool {
	return r.clientID == userID || r.providerID == userID
}

func (r *Reservation) ID() uuid.UUID                    { return r.id }
func (r *Reservation) ClientID() uuid.UUID              { return r.clientID }
func (r *Reservation) ProviderID() uuid.UUID            { return r.providerID }
func (r *Reservation) QuoteID() *uuid.UUID              { return r.quoteID }
func (r *Reservation) Split() Split                     { return r.split }
func (r *Reservation) ServiceDate() time.Time           { return r.serviceDate }
func (r *Reservation) PaymentStatus() PaymentStatus     { return r.paymentStatus }
func (r *Reservation) ServiceStatus() ServiceStatus     { return r.serviceStatus }
func (r *Reservation) PaymentIntentID() string          { return r.paymentIntentID }
func (r *Reservation) DepositTransferID() string        { return r.depositTransferID }
func (r *Reservation) BalanceTransferID() string        { return r.balanceTransferID }
func (r *Reservation) RefundID() string                 { return r.refundID }
func (r *Reservation) CancellationPolicyID() *uuid.UUID { return r.cancellationPolicyID }
func (r *Reservation) Cancellation() *Cancellation      { return r.cancellation }
func (r *Reservation) Version() int64                   { return r.version }
func (r *Reservation) CreatedAt() time.Time             { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time             { return r.updatedAt }
