package shared

import (
	"context"
	"time"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx exposes repositories bound to one database transaction.
type Tx interface {
	Reservations() ReservationRepository
	Transactions() TransactionRepository
	Policies() PolicyRepository
	Outbox() OutboxRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
}

type CommandReads interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (*payment.Reservation, error)
	TransactionsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*payment.Transaction, error)
	PolicyByID(ctx context.Context, id uuid.UUID) (*cancellation.Policy, error)
	// DefaultPolicy returns the provider's active default, or a NOT_FOUND repository error.
	DefaultPolicy(ctx context.Context, providerID uuid.UUID) (*cancellation.Policy, error)
	PayoutAccount(ctx context.Context, providerID uuid.UUID) (*PayoutAccountSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *payment.Reservation) error
	// Update writes res only if the stored version still equals res.Version().
	// A lost race is reported as a CONFLICT repository error.
	Update(ctx context.Context, res *payment.Reservation) error
}

type TransactionRepository interface {
	Append(ctx context.Context, t *payment.Transaction) error
}

type PolicyRepository interface {
	Create(ctx context.Context, p *cancellation.Policy) error
	// UpdateFlags persists is_default and is_active. Rules are immutable.
	UpdateFlags(ctx context.Context, p *cancellation.Policy) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, ev OutboxEvent) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether this call created the processing record.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseBodyHash string, resultReservationID uuid.UUID) error
	// Release drops a processing record so a failed request can be retried with the same key.
	Release(ctx context.Context, key, userID uuid.UUID) error
}
