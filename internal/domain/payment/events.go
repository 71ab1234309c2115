package payment

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventIntentCreated       = "payment.intent_created"
	EventCaptured            = "payment.captured"
	EventDepositTransferred  = "payment.deposit_transferred"
	EventBalanceTransferred  = "payment.balance_transferred"
	EventRefunded            = "payment.refunded"
	EventCancelled           = "reservation.cancelled"
	EventServiceFinished     = "reservation.service_finished"
	EventReservationAccepted = "reservation.created"
)

// Event is the payload published for every persisted lifecycle step.
type Event struct {
	Type          string        `json:"type"`
	ReservationID uuid.UUID     `json:"reservation_id"`
	ClientID      uuid.UUID     `json:"client_id"`
	ProviderID    uuid.UUID     `json:"provider_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	ServiceStatus ServiceStatus `json:"service_status"`
	AmountCents   int64         `json:"amount_cents,omitempty"`
	ExternalID    string        `json:"external_id,omitempty"`
	CancelledBy   CancelledBy   `json:"cancelled_by,omitempty"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

func NewEvent(eventType string, r *Reservation, amountCents int64, externalID string, now time.Time) Event {
	ev := Event{
		Type:          eventType,
		ReservationID: r.ID(),
		ClientID:      r.ClientID(),
		ProviderID:    r.ProviderID(),
		PaymentStatus: r.PaymentStatus(),
		ServiceStatus: r.ServiceStatus(),
		AmountCents:   amountCents,
		ExternalID:    externalID,
		OccurredAt:    now,
	}
	if c := r.Cancellation(); c != nil {
		ev.CancelledBy = c.By
	}
	return ev
}
