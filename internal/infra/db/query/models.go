package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservations struct {
	ID                   uuid.UUID
	ClientID             uuid.UUID
	ProviderID           uuid.UUID
	QuoteID              pgtype.UUID
	TotalCents           int64
	DepositCents         int64
	BalanceCents         int64
	DepositPercentage    float64
	ServiceDate          time.Time
	PaymentStatus        string
	ServiceStatus        string
	PaymentIntentID      pgtype.Text
	DepositTransferID    pgtype.Text
	BalanceTransferID    pgtype.Text
	RefundID             pgtype.Text
	CancellationPolicyID pgtype.UUID
	CancelledAt          pgtype.Timestamptz
	CancelledBy          pgtype.Text
	CancellationReason   pgtype.Text
	RefundCents          pgtype.Int8
	RefundPercentage     pgtype.Float8
	AppliedPolicyID      pgtype.UUID
	CancellationFeeCents pgtype.Int8
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type PaymentTransactions struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Type          string
	AmountCents   int64
	ExternalID    string
	Status        string
	Metadata      []byte
	CreatedAt     time.Time
}

type CancellationPolicies struct {
	ID               uuid.UUID
	ProviderID       uuid.UUID
	Name             string
	PolicyType       string
	RefundRules      []byte
	FeePercentage    float64
	FeeFixedCents    int64
	IsDefault        bool
	IsActive         bool
	ReplacesPolicyID pgtype.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Providers struct {
	ID              uuid.UUID
	PayoutAccountID pgtype.Text
}

type IdempotencyKeys struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResponseBodyHash    pgtype.Text
	ResultReservationID pgtype.UUID
	ExpiresAt           time.Time
}

type PaymentEvents struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	EventType     string
	Payload       []byte
	Status        string
	Attempts      int32
	LastError     pgtype.Text
	NextAttemptAt time.Time
	OccurredAt    time.Time
}
