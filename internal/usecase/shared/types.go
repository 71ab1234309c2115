package shared

import (
	"time"

	"github.com/google/uuid"
)

type PayoutAccountSnapshot struct {
	ProviderID uuid.UUID
	AccountID  string
}

func (p *PayoutAccountSnapshot) Configured() bool {
	return p != nil && p.AccountID != ""
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

// OutboxEvent is stored with the state change it describes and published later.
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        string
	Payload     []byte
	OccurredAt  time.Time
}
