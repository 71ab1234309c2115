package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/infra"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/queries"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const createReservationEndpoint = "POST /api/reservations"

// CreateReservationRequest carries the terms of the quote the client accepted.
type CreateReservationRequest struct {
	QuoteID           *uuid.UUID `json:"quote_id,omitempty"`
	ProviderID        uuid.UUID  `json:"provider_id"`
	TotalCents        int64      `json:"total_cents"`
	DepositPercentage *float64   `json:"deposit_percentage,omitempty"`
	ServiceDate       time.Time  `json:"service_date"`
	PolicyID          *uuid.UUID `json:"policy_id,omitempty"`
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest, actor user.Actor, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	settings           PaymentSettings
	logger             *slog.Logger
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
	settings PaymentSettings,
	logger *slog.Logger,
) ReservationCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &reservationUseCaseImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		clock:              clk,
		settings:           settings,
		logger:             logger,
	}
}

func (r *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	req CreateReservationRequest,
	actor user.Actor,
	idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	if actor.Role != user.RoleClient {
		return nil, errs.ErrForbidden
	}

	requestHash := r.calculateRequestHash(req)
	expiresAt := r.clock.Now().Add(24 * time.Hour)

	existingResult, err := r.handleIdempotency(ctx, idempotencyKey, actor.ID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existingResult != nil {
		return &CreateReservationResult{
			Reservation: existingResult,
			IsReplayed:  true,
		}, nil
	}

	view, err := r.createNewReservation(ctx, req, actor.ID, idempotencyKey)
	if err != nil {
		r.releaseKey(ctx, idempotencyKey, actor.ID)
		return nil, err
	}
	return &CreateReservationResult{
		Reservation: view,
		IsReplayed:  false,
	}, nil
}

// handleIdempotency returns the original reservation for a completed key, nil
// when this request owns a fresh key, and an error otherwise.
func (r *reservationUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.ReservationView, error) {
	var inserted bool
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ierr error
		inserted, ierr = tx.Idempotency().TryInsert(ctx, idempotencyKey, userID, createReservationEndpoint, requestHash, expiresAt)
		return ierr
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := r.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if existing.RequestHash != requestHash {
		return nil, errs.ErrDuplicateRequest
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID != nil {
			// Use system-level access for idempotency replay
			return r.reservationQueries.GetByIDSystem(ctx, *existing.ResultReservationID)
		}
		return nil, errs.New("completed request missing result reservation ID")

	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (r *reservationUseCaseImpl) createNewReservation(
	ctx context.Context,
	req CreateReservationRequest,
	clientID, idempotencyKey uuid.UUID,
) (*queries.ReservationView, error) {
	pct := r.settings.DefaultDepositPercentage
	if req.DepositPercentage != nil {
		pct = *req.DepositPercentage
	}

	var reservationID uuid.UUID
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		policyID, err := r.bookingPolicy(ctx, tx.Reads(), req)
		if err != nil {
			return err
		}

		res, err := payment.NewReservation(payment.NewReservationParams{
			ClientID:          clientID,
			ProviderID:        req.ProviderID,
			QuoteID:           req.QuoteID,
			TotalCents:        req.TotalCents,
			DepositPercentage: pct,
			ServiceDate:       req.ServiceDate,
			PolicyID:          policyID,
		}, r.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		payload, err := json.Marshal(payment.NewEvent(payment.EventReservationAccepted, res, res.Split().TotalCents(), "", res.CreatedAt()))
		if err != nil {
			return err
		}
		if err := tx.Outbox().Enqueue(ctx, shared.OutboxEvent{
			ID:          uuid.New(),
			AggregateID: res.ID(),
			Type:        payment.EventReservationAccepted,
			Payload:     payload,
			OccurredAt:  res.CreatedAt(),
		}); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, clientID, r.calculateIDHash(res.ID()), res.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		reservationID = res.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: Get the complete reservation view from read store
	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// bookingPolicy captures the terms in force when the quote is accepted.
func (r *reservationUseCaseImpl) bookingPolicy(ctx context.Context, reads shared.CommandReads, req CreateReservationRequest) (*uuid.UUID, error) {
	if req.PolicyID != nil {
		p, err := reads.PolicyByID(ctx, *req.PolicyID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrPolicyNotFound)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !p.OwnedBy(req.ProviderID) || !p.IsActive() {
			return nil, errs.Mark(errs.New("policy is not an active policy of the provider"), errs.ErrDomainValidation)
		}
		id := p.ID()
		return &id, nil
	}

	p, err := reads.DefaultPolicy(ctx, req.ProviderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	id := p.ID()
	return &id, nil
}

func (r *reservationUseCaseImpl) releaseKey(ctx context.Context, key, userID uuid.UUID) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, userID)
	})
	if err != nil {
		r.logger.Warn("failed to release idempotency key", "key", key, "error", err)
	}
}

func (r *reservationUseCaseImpl) calculateRequestHash(req CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *reservationUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
