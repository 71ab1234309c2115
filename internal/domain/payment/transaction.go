package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

type TransactionMetadata struct {
	CancelledBy      CancelledBy `json:"cancelled_by,omitempty"`
	PolicyID         *uuid.UUID  `json:"policy_id,omitempty"`
	RefundPercentage *float64    `json:"refund_percentage,omitempty"`
	FeeCents         *int64      `json:"fee_cents,omitempty"`
	Reason           string      `json:"reason,omitempty"`
}

// Transaction is an append-only ledger entry for one completed money movement.
type Transaction struct {
	id            uuid.UUID
	reservationID uuid.UUID
	txType        TransactionType
	amountCents   int64
	externalID    string
	status        TransactionStatus
	metadata      *TransactionMetadata
	createdAt     time.Time
}

func NewTransaction(
	reservationID uuid.UUID,
	txType TransactionType,
	amountCents int64,
	externalID string,
	metadata *TransactionMetadata,
	now time.Time,
) (*Transaction, error) {
	if reservationID == uuid.Nil {
		return nil, ErrInvalidTransaction
	}
	if _, err := ParseTransactionType(string(txType)); err != nil {
		return nil, err
	}
	if amountCents <= 0 {
		return nil, errors.New("transaction amount must be positive")
	}
	if externalID == "" {
		return nil, ErrMissingExternalID
	}

	return &Transaction{
		id:            uuid.New(),
		reservationID: reservationID,
		txType:        txType,
		amountCents:   amountCents,
		externalID:    externalID,
		status:        TransactionStatusSucceeded,
		metadata:      metadata,
		createdAt:     now,
	}, nil
}

func ReconstructTransaction(
	id, reservationID uuid.UUID,
	txType TransactionType,
	amountCents int64,
	externalID string,
	status TransactionStatus,
	metadata *TransactionMetadata,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		reservationID: reservationID,
		txType:        txType,
		amountCents:   amountCents,
		externalID:    externalID,
		status:        status,
		metadata:      metadata,
		createdAt:     createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID                  { return t.id }
func (t *Transaction) ReservationID() uuid.UUID       { return t.reservationID }
func (t *Transaction) Type() TransactionType          { return t.txType }
func (t *Transaction) AmountCents() int64             { return t.amountCents }
func (t *Transaction) ExternalID() string             { return t.externalID }
func (t *Transaction) Status() TransactionStatus      { return t.status }
func (t *Transaction) Metadata() *TransactionMetadata { return t.metadata }
func (t *Transaction) CreatedAt() time.Time           { return t.createdAt }
