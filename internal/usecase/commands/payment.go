package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/infra"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Gateway idempotency key suffixes, one per step.
const (
	StepCreateIntent    = "create_intent"
	StepConfirm         = "confirm"
	StepDepositTransfer = "deposit_transfer"
	StepBalanceTransfer = "balance_transfer"
	StepRefund          = "refund"
	StepCompleteService = "complete_service"
	StepCancel          = "cancel"
	StepCancelIntent    = "cancel_intent"
)

func gatewayKey(reservationID uuid.UUID, step string) string {
	return reservationID.String() + ":" + step
}

type PaymentSettings struct {
	Currency                 string
	DefaultDepositPercentage float64
}

// PaymentObserver receives step outcomes for metrics.
type PaymentObserver interface {
	ObserveStep(step string, err error)
	ObserveRefund(cents int64)
}

type noopObserver struct{}

func (noopObserver) ObserveStep(string, error) {}

func (noopObserver) ObserveRefund(int64) {}

type CreateBookingPaymentRequest struct {
	ReservationID uuid.UUID
	ProviderID    uuid.UUID
	// TotalCents must match the reservation total when set.
	TotalCents int64
	// DepositPercentage overrides the percentage agreed at booking when set.
	DepositPercentage *float64
	PayerEmail        string
}

type ConfirmPaymentRequest struct {
	ReservationID uuid.UUID
	IntentID      string
}

type PaymentStepResult struct {
	ReservationID     uuid.UUID
	PaymentStatus     payment.PaymentStatus
	ServiceStatus     payment.ServiceStatus
	PaymentIntentID   string
	TotalCents        int64
	DepositCents      int64
	BalanceCents      int64
	DepositTransferID string
	BalanceTransferID string
	IsReplayed        bool
}

type PaymentCommands interface {
	CreateBookingPayment(ctx context.Context, req CreateBookingPaymentRequest, actor user.Actor) (*PaymentStepResult, error)
	ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest, actor user.Actor) (*PaymentStepResult, error)
	TransferDeposit(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*PaymentStepResult, error)
	TransferBalance(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*PaymentStepResult, error)
	CompleteService(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*PaymentStepResult, error)
	HandleCancellation(ctx context.Context, req CancellationRequest, actor user.Actor) (*CancellationResult, error)
	ResolveEffectivePolicy(ctx context.Context, res *payment.Reservation) (*cancellation.Policy, error)
}

type paymentUseCaseImpl struct {
	uow      shared.UnitOfWork
	gateway  shared.PaymentGateway
	locker   shared.Locker
	clock    clock.Clock
	settings PaymentSettings
	observer PaymentObserver
	logger   *slog.Logger
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	locker shared.Locker,
	clk clock.Clock,
	settings PaymentSettings,
	observer PaymentObserver,
	logger *slog.Logger,
) PaymentCommands {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &paymentUseCaseImpl{
		uow:      uow,
		gateway:  gateway,
		locker:   locker,
		clock:    clk,
		settings: settings,
		observer: observer,
		logger:   logger,
	}
}

func (uc *paymentUseCaseImpl) CreateBookingPayment(ctx context.Context, req CreateBookingPaymentRequest, actor user.Actor) (*PaymentStepResult, error) {
	var result *PaymentStepResult
	err := uc.withReservation(ctx, req.ReservationID, StepCreateIntent, func(ctx context.Context, res *payment.Reservation) error {
		if !actor.CanActFor(res.ClientID()) {
			return errs.ErrForbidden
		}
		if req.ProviderID != res.ProviderID() {
			return errs.Mark(errs.New("provider does not match reservation"), errs.ErrDomainValidation)
		}
		if req.TotalCents != 0 && req.TotalCents != res.Split().TotalCents() {
			return errs.Mark(errs.Newf("total %d does not match reservation total %d",
				req.TotalCents, res.Split().TotalCents()), errs.ErrDomainValidation)
		}

		// A retried create after the intent was stored returns the stored intent.
		if res.PaymentStatus() == payment.PaymentStatusIntentCreated {
			result = stepResult(res)
			result.IsReplayed = true
			return nil
		}
		if res.PaymentStatus() != payment.PaymentStatusPending {
			return errs.Mark(errs.Newf("cannot create payment for %s reservation", res.PaymentStatus()), errs.ErrInvalidTransition)
		}

		pct := res.Split().DepositPercentage()
		if req.DepositPercentage != nil {
			pct = *req.DepositPercentage
		}
		split, err := payment.NewSplit(res.Split().TotalCents(), pct)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		intentID, err := uc.gateway.CreatePaymentIntent(ctx, shared.CreateIntentRequest{
			AmountCents:  split.TotalCents(),
			Currency:     uc.settings.Currency,
			ReceiptEmail: req.PayerEmail,
			Metadata: map[string]string{
				"reservation_id": res.ID().String(),
				"provider_id":    res.ProviderID().String(),
				"deposit_cents":  strconv.FormatInt(split.DepositCents(), 10),
				"balance_cents":  strconv.FormatInt(split.BalanceCents(), 10),
			},
			IdempotencyKey: gatewayKey(res.ID(), StepCreateIntent),
		})
		if err != nil {
			return uc.gatewayFailure(res, StepCreateIntent, err)
		}

		now := uc.clock.Now()
		if err := res.MarkIntentCreated(intentID, split, now); err != nil {
			return domainErr(err)
		}
		if err := uc.persist(ctx, res, nil, payment.NewEvent(payment.EventIntentCreated, res, split.TotalCents(), intentID, now)); err != nil {
			return err
		}
		result = stepResult(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmPayment captures the intent and then pays the deposit out in the same
// call. When only the deposit fails, the capture is kept and the returned
// error is marked ErrDepositTransferPending.
func (uc *paymentUseCaseImpl) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest, actor user.Actor) (*PaymentStepResult, error) {
	var result *PaymentStepResult
	err := uc.withReservation(ctx, req.ReservationID, StepConfirm, func(ctx context.Context, res *payment.Reservation) error {
		if !actor.CanActFor(res.ClientID()) {
			return errs.ErrForbidden
		}
		if res.PaymentIntentID() == "" || res.PaymentIntentID() != req.IntentID {
			return errs.ErrIntentMismatch
		}
		if res.PaymentStatus() != payment.PaymentStatusIntentCreated {
			return errs.Mark(errs.Newf("cannot confirm payment for %s reservation", res.PaymentStatus()), errs.ErrInvalidTransition)
		}

		confirmed, err := uc.gateway.ConfirmPaymentIntent(ctx, req.IntentID, gatewayKey(res.ID(), StepConfirm))
		if err != nil {
			return uc.gatewayFailure(res, StepConfirm, err)
		}
		if !confirmed.Succeeded(res.Split().TotalCents()) {
			uc.logger.Warn("payment intent not captured",
				"reservation_id", res.ID(),
				"intent_id", req.IntentID,
				"intent_status", confirmed.Status,
				"captured_cents", confirmed.CapturedCents)
			return errs.Mark(errs.Newf("intent status %q captured %d of %d",
				confirmed.Status, confirmed.CapturedCents, res.Split().TotalCents()), errs.ErrPaymentNotCaptured)
		}

		now := uc.clock.Now()
		if err := res.MarkCaptured(now); err != nil {
			return domainErr(err)
		}
		if err := uc.persist(ctx, res, nil, payment.NewEvent(payment.EventCaptured, res, res.Split().TotalCents(), req.IntentID, now)); err != nil {
			return err
		}

		// Reload so the deposit step works on the stored version.
		fresh, err := uc.load(ctx, res.ID())
		if err != nil {
			return err
		}
		if err := uc.transferDeposit(ctx, fresh); err != nil {
			uc.observer.ObserveStep(StepDepositTransfer, err)
			uc.logger.Error("deposit transfer after capture failed",
				"reservation_id", res.ID(),
				"step", StepDepositTransfer,
				"error", err)
			return errs.Mark(err, errs.ErrDepositTransferPending)
		}
		uc.observer.ObserveStep(StepDepositTransfer, nil)
		result = stepResult(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TransferDeposit is the retry path for a deposit that failed after capture.
func (uc *paymentUseCaseImpl) TransferDeposit(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*PaymentStepResult, error) {
	var result *PaymentStepResult
	err := uc.withReservation(ctx, reservationID, StepDepositTransfer, func(ctx context.Context, res *payment.Reservation) error {
		if !actor.IsAdmin() {
			return errs.ErrForbidden
		}
		if err := uc.transferDeposit(ctx, res); err != nil {
			return err
		}
		result = stepResult(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *paymentUseCaseImpl) transferDeposit(ctx context.Context, res *payment.Reservation) error {
	if res.PaymentStatus() != payment.PaymentStatusCaptured {
		return errs.Mark(errs.Newf("cannot transfer deposit for %s reservation", res.PaymentStatus()), errs.ErrInvalidTransition)
	}

	now := uc.clock.Now()
	deposit := res.Split().DepositCents()
	if deposit == 0 {
		if err := res.MarkDepositPaid("", now); err != nil {
			return domainErr(err)
		}
		return uc.persist(ctx, res, nil, payment.NewEvent(payment.EventDepositTransferred, res, 0, "", now))
	}

	account, err := uc.payoutAccount(ctx, res)
	if err != nil {
		return err
	}

	transferID, err := uc.gateway.CreateTransfer(ctx, shared.TransferRequest{
		DestinationAccountID: account,
		AmountCents:          deposit,
		Currency:             uc.settings.Currency,
		SourceIntentID:       res.PaymentIntentID(),
		Metadata: map[string]string{
			"reservation_id": res.ID().String(),
			"tranche":        "deposit",
		},
		IdempotencyKey: gatewayKey(res.ID(), StepDepositTransfer),
	})
	if err != nil {
		return uc.gatewayFailure(res, StepDepositTransfer, err)
	}

	ledger, err := payment.NewTransaction(res.ID(), payment.TransactionTypeDepositTransfer, deposit, transferID, nil, now)
	if err != nil {
		return domainErr(err)
	}
	if err := res.MarkDepositPaid(transferID, now); err != nil {
		return domainErr(err)
	}
	return uc.persist(ctx, res, ledger, payment.NewEvent(payment.EventDepositTransferred, res, deposit, transferID, now))
}

func (uc *paymentUseCaseImpl) TransferBalance(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*PaymentStepResult, error) {
	var result *PaymentStepResult
	err := uc.withReservation(ctx, reservationID, StepBalanceTransfer, func(ctx context.Context, res *payment.Reservation) error {
		if !actor.CanActFor(res.ProviderID()) {
			return errs.ErrForbidden
		}
		if err := res.CanSettle(); err != nil {
			return domainErr(err)
		}

		now := uc.clock.Now()
		balance := res.Split().BalanceCents()
		var (
			transferID string
			ledger     *payment.Transaction
		)
		if balance > 0 {
			account, err := uc.payoutAccount(ctx, res)
			if err != nil {
				return err
			}
			transferID, err = uc.gateway.CreateTransfer(ctx, shared.TransferRequest{
				DestinationAccountID: account,
				AmountCents:          balance,
				Currency:             uc.settings.Currency,
				SourceIntentID:       res.PaymentIntentID(),
				Metadata: map[string]string{
					"reservation_id": res.ID().String(),
					"tranche":        "balance",
				},
				IdempotencyKey: gatewayKey(res.ID(), StepBalanceTransfer),
			})
			if err != nil {
				return uc.gatewayFailure(res, StepBalanceTransfer, err)
			}
			ledger, err = payment.NewTransaction(res.ID(), payment.TransactionTypeBalanceTransfer, balance, transferID, nil, now)
			if err != nil {
				return domainErr(err)
			}
		}

		if err := res.MarkSettled(transferID, now); err != nil {
			return domainErr(err)
		}
		if err := uc.persist(ctx, res, ledger, payment.NewEvent(payment.EventBalanceTransferred, res, balance, transferID, now)); err != nil {
			return err
		}
		result = stepResult(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteService marks the shoot as done. Balance transfer stays a separate call.
func (uc *paymentUseCaseImpl) CompleteService(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*PaymentStepResult, error) {
	var result *PaymentStepResult
	err := uc.withReservation(ctx, reservationID, StepCompleteService, func(ctx context.Context, res *payment.Reservation) error {
		if !actor.CanActFor(res.ProviderID()) {
			return errs.ErrForbidden
		}
		now := uc.clock.Now()
		if err := res.FinishService(now); err != nil {
			return domainErr(err)
		}
		if err := uc.persist(ctx, res, nil, payment.NewEvent(payment.EventServiceFinished, res, 0, "", now)); err != nil {
			return err
		}
		result = stepResult(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *paymentUseCaseImpl) ResolveEffectivePolicy(ctx context.Context, res *payment.Reservation) (*cancellation.Policy, error) {
	return shared.ResolveEffectivePolicy(ctx, uc.uow.CommandReads(), res)
}

// withReservation holds the reservation lock for the whole read, gateway call
// and write sequence of one step.
func (uc *paymentUseCaseImpl) withReservation(
	ctx context.Context,
	reservationID uuid.UUID,
	step string,
	fn func(ctx context.Context, res *payment.Reservation) error,
) (err error) {
	defer func() { uc.observer.ObserveStep(step, err) }()

	release, err := uc.locker.Acquire(ctx, shared.ReservationLockKey(reservationID.String()))
	if err != nil {
		uc.logger.Warn("reservation lock not acquired", "reservation_id", reservationID, "step", step, "error", err)
		return err
	}
	defer release()

	res, err := uc.load(ctx, reservationID)
	if err != nil {
		return err
	}
	return fn(ctx, res)
}

func (uc *paymentUseCaseImpl) load(ctx context.Context, id uuid.UUID) (*payment.Reservation, error) {
	res, err := uc.uow.CommandReads().ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (uc *paymentUseCaseImpl) payoutAccount(ctx context.Context, res *payment.Reservation) (string, error) {
	acct, err := uc.uow.CommandReads().PayoutAccount(ctx, res.ProviderID())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !acct.Configured() {
		uc.logger.Error("provider payout account missing",
			"reservation_id", res.ID(),
			"provider_id", res.ProviderID())
		return "", errs.Mark(errs.Newf("provider %s has no payout account", res.ProviderID()), errs.ErrMissingPayoutAccount)
	}
	return acct.AccountID, nil
}

// persist writes the reservation, the optional ledger row and the outbox event atomically.
func (uc *paymentUseCaseImpl) persist(ctx context.Context, res *payment.Reservation, ledger *payment.Transaction, ev payment.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "marshal payment event")
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if ledger != nil {
			if err := tx.Transactions().Append(ctx, ledger); err != nil {
				return err
			}
		}
		return tx.Outbox().Enqueue(ctx, shared.OutboxEvent{
			ID:          uuid.New(),
			AggregateID: res.ID(),
			Type:        ev.Type,
			Payload:     payload,
			OccurredAt:  ev.OccurredAt,
		})
	})
	if err != nil {
		uc.logger.Error("failed to persist payment step",
			"reservation_id", res.ID(),
			"event", ev.Type,
			"error", err)
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, errs.ErrConcurrentModification)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *paymentUseCaseImpl) gatewayFailure(res *payment.Reservation, step string, err error) error {
	uc.logger.Error("payment gateway call failed",
		"reservation_id", res.ID(),
		"step", step,
		"error", err)
	return errs.Mark(err, errs.ErrGateway)
}

func domainErr(err error) error {
	switch {
	case errors.Is(err, payment.ErrInvalidTransition), errors.Is(err, payment.ErrReservationCancelled):
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errors.Is(err, payment.ErrServiceNotFinished):
		return errs.Mark(err, errs.ErrServiceNotCompleted)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func stepResult(res *payment.Reservation) *PaymentStepResult {
	s := res.Split()
	return &PaymentStepResult{
		ReservationID:     res.ID(),
		PaymentStatus:     res.PaymentStatus(),
		ServiceStatus:     res.ServiceStatus(),
		PaymentIntentID:   res.PaymentIntentID(),
		TotalCents:        s.TotalCents(),
		DepositCents:      s.DepositCents(),
		BalanceCents:      s.BalanceCents(),
		DepositTransferID: res.DepositTransferID(),
		BalanceTransferID: res.BalanceTransferID(),
	}
}
