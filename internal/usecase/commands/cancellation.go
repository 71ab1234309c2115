package commands

import (
	"context"
	"strings"
	"unicode/utf8"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CancellationRequest struct {
	ReservationID uuid.UUID
	CancelledBy   payment.CancelledBy
	// Reason doubles as the justification required by strict policies.
	Reason string
	// Policy overrides the effective policy when set.
	Policy *cancellation.Policy
}

type CancellationResult struct {
	ReservationID    uuid.UUID
	PaymentStatus    payment.PaymentStatus
	ServiceStatus    payment.ServiceStatus
	CancelledBy      payment.CancelledBy
	RefundPercentage float64
	RefundCents      int64
	FeeCents         int64
	RefundID         string
	PolicyID         *uuid.UUID
	Decision         cancellation.Decision
	AlreadyCancelled bool
}

// HandleCancellation cancels a non-terminal reservation. Providers always give
// a full refund; clients get what the effective policy allows minus its fee.
// A repeated call on a cancelled reservation returns the recorded outcome.
func (uc *paymentUseCaseImpl) HandleCancellation(ctx context.Context, req CancellationRequest, actor user.Actor) (*CancellationResult, error) {
	by, err := payment.ParseCancelledBy(string(req.CancelledBy))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var result *CancellationResult
	err = uc.withReservation(ctx, req.ReservationID, StepCancel, func(ctx context.Context, res *payment.Reservation) error {
		var err error
		party := res.ClientID()
		if by == payment.CancelledByProvider {
			party = res.ProviderID()
		}
		if !actor.CanActFor(party) {
			return errs.ErrForbidden
		}

		if res.IsCancelled() {
			result = recordedCancellation(res)
			return nil
		}
		if err := res.CanCancel(); err != nil {
			return domainErr(err)
		}

		now := uc.clock.Now()
		var (
			decision  cancellation.Decision
			breakdown cancellation.RefundBreakdown
			policyID  *uuid.UUID
		)
		switch by {
		case payment.CancelledByProvider:
			decision = cancellation.Decision{
				CanCancel:        true,
				RefundPercentage: 100,
				Reason:           "provider-initiated cancellation: full refund",
				HoursRemaining:   res.ServiceDate().Sub(now).Hours(),
			}
			breakdown = cancellation.FullRefund(res.Split().TotalCents())
		default:
			policy := req.Policy
			if policy == nil {
				if policy, err = uc.ResolveEffectivePolicy(ctx, res); err != nil {
					return err
				}
			}
			decision = cancellation.Evaluate(policy, res.ServiceDate(), now)
			if !decision.CanCancel {
				uc.logger.Info("cancellation refused by policy",
					"reservation_id", res.ID(),
					"hours_remaining", decision.HoursRemaining,
					"reason", decision.Reason)
				return errs.Mark(errs.New(decision.Reason), errs.ErrPolicyRefusal)
			}
			if decision.RequiresJustification && !sufficientJustification(req.Reason) {
				return errs.Mark(errs.Newf("justification must be at least %d characters",
					cancellation.MinJustificationLength), errs.ErrInsufficientJustification)
			}
			fee := cancellation.Fee{}
			if policy != nil {
				fee = policy.Fee()
				id := policy.ID()
				policyID = &id
			}
			breakdown = cancellation.ComputeRefund(res.Split().TotalCents(), decision.RefundPercentage, fee)
		}

		refund := breakdown.RefundCents
		if !res.HasCapturedFunds() {
			refund = 0
		}

		if res.PaymentStatus() == payment.PaymentStatusIntentCreated && res.PaymentIntentID() != "" {
			if err := uc.gateway.CancelPaymentIntent(ctx, res.PaymentIntentID(), gatewayKey(res.ID(), StepCancelIntent)); err != nil {
				return uc.gatewayFailure(res, StepCancelIntent, err)
			}
		}

		var (
			refundID string
			ledger   *payment.Transaction
		)
		// A deposit already paid out stays with the provider; the platform funds the refund.
		if refund > 0 {
			refundID, err = uc.gateway.CreateRefund(ctx, shared.RefundRequest{
				IntentID:    res.PaymentIntentID(),
				AmountCents: refund,
				Reason:      "requested_by_customer",
				Metadata: map[string]string{
					"reservation_id": res.ID().String(),
					"cancelled_by":   by.String(),
				},
				IdempotencyKey: gatewayKey(res.ID(), StepRefund),
			})
			if err != nil {
				return uc.gatewayFailure(res, StepRefund, err)
			}

			pct := breakdown.RefundPercentage
			fee := breakdown.FeeCents
			ledger, err = payment.NewTransaction(res.ID(), payment.TransactionTypeRefund, refund, refundID,
				&payment.TransactionMetadata{
					CancelledBy:      by,
					PolicyID:         policyID,
					RefundPercentage: &pct,
					FeeCents:         &fee,
					Reason:           strings.TrimSpace(req.Reason),
				}, now)
			if err != nil {
				return domainErr(err)
			}
		}

		err = res.Cancel(payment.Cancellation{
			At:               now,
			By:               by,
			Reason:           strings.TrimSpace(req.Reason),
			PolicyID:         policyID,
			RefundCents:      refund,
			RefundPercentage: breakdown.RefundPercentage,
			FeeCents:         breakdown.FeeCents,
		}, refundID)
		if err != nil {
			return domainErr(err)
		}

		eventType := payment.EventCancelled
		if refund > 0 {
			eventType = payment.EventRefunded
		}
		if err := uc.persist(ctx, res, ledger, payment.NewEvent(eventType, res, refund, refundID, now)); err != nil {
			return err
		}
		uc.observer.ObserveRefund(refund)

		result = &CancellationResult{
			ReservationID:    res.ID(),
			PaymentStatus:    res.PaymentStatus(),
			ServiceStatus:    res.ServiceStatus(),
			CancelledBy:      by,
			RefundPercentage: breakdown.RefundPercentage,
			RefundCents:      refund,
			FeeCents:         breakdown.FeeCents,
			RefundID:         refundID,
			PolicyID:         policyID,
			Decision:         decision,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func sufficientJustification(reason string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(reason)) >= cancellation.MinJustificationLength
}

func recordedCancellation(res *payment.Reservation) *CancellationResult {
	out := &CancellationResult{
		ReservationID:    res.ID(),
		PaymentStatus:    res.PaymentStatus(),
		ServiceStatus:    res.ServiceStatus(),
		RefundID:         res.RefundID(),
		AlreadyCancelled: true,
	}
	if c := res.Cancellation(); c != nil {
		out.CancelledBy = c.By
		out.PolicyID = c.PolicyID
		out.RefundCents = c.RefundCents
		out.RefundPercentage = c.RefundPercentage
		out.FeeCents = c.FeeCents
	}
	return out
}
