package queries

import (
	"context"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/infra"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the party check. Used for idempotent replays.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListTransactions(ctx context.Context, actor user.Actor, reservationID uuid.UUID) ([]*TransactionView, error)
	PreviewCancellation(ctx context.Context, actor user.Actor, reservationID uuid.UUID, by payment.CancelledBy) (*CancellationPreview, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindTransactions(ctx context.Context, reservationID uuid.UUID) ([]*TransactionView, error)
}

type reservationQueriesImpl struct {
	repo  ReservationViewRepo
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationQueries(repo ReservationViewRepo, uow shared.UnitOfWork, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, uow: uow, clock: clk}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != view.ClientID && actor.ID != view.ProviderID {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, errs.ErrReservationNotFound)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListTransactions(ctx context.Context, actor user.Actor, reservationID uuid.UUID) ([]*TransactionView, error) {
	if _, err := q.GetByID(ctx, actor, reservationID); err != nil {
		return nil, err
	}
	rows, err := q.repo.FindTransactions(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rows, nil
}

// PreviewCancellation reports what a cancellation would return right now
// without touching the reservation or the gateway.
func (q *reservationQueriesImpl) PreviewCancellation(ctx context.Context, actor user.Actor, reservationID uuid.UUID, by payment.CancelledBy) (*CancellationPreview, error) {
	by, err := payment.ParseCancelledBy(string(by))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	reads := q.uow.CommandReads()
	res, err := reads.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, notFoundAs(err, errs.ErrReservationNotFound)
	}
	if !actor.CanActFor(res.ClientID()) && !actor.CanActFor(res.ProviderID()) {
		return nil, errs.ErrForbidden
	}
	if err := res.CanCancel(); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTransition)
	}

	now := q.clock.Now()
	preview := &CancellationPreview{
		ReservationID: res.ID(),
		CancelledBy:   by.String(),
	}

	if by == payment.CancelledByProvider {
		b := cancellation.FullRefund(res.Split().TotalCents())
		preview.CanCancel = true
		preview.Reason = "provider-initiated cancellation: full refund"
		preview.HoursRemaining = res.ServiceDate().Sub(now).Hours()
		fillBreakdown(preview, b, res)
		return preview, nil
	}

	policy, err := shared.ResolveEffectivePolicy(ctx, reads, res)
	if err != nil {
		return nil, err
	}
	d := cancellation.Evaluate(policy, res.ServiceDate(), now)
	preview.CanCancel = d.CanCancel
	preview.RequiresJustification = d.RequiresJustification
	preview.Reason = d.Reason
	preview.HoursRemaining = d.HoursRemaining
	preview.PolicyType = cancellation.PolicyTypeFlexible.String()
	fee := cancellation.Fee{}
	if policy != nil {
		id := policy.ID()
		preview.PolicyID = &id
		preview.PolicyType = policy.Type().String()
		fee = policy.Fee()
	}
	if d.CanCancel {
		fillBreakdown(preview, cancellation.ComputeRefund(res.Split().TotalCents(), d.RefundPercentage, fee), res)
	}
	return preview, nil
}

func fillBreakdown(p *CancellationPreview, b cancellation.RefundBreakdown, res *payment.Reservation) {
	p.RefundPercentage = b.RefundPercentage
	p.GrossRefundCents = b.GrossCents
	p.FeeCents = b.FeeCents
	p.RefundCents = b.RefundCents
	// Nothing was captured yet, so nothing can be refunded.
	if !res.HasCapturedFunds() {
		p.RefundCents = 0
	}
}

func notFoundAs(err error, mark error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, mark)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
