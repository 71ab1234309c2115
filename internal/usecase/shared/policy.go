package shared

import (
	"context"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/infra"
	"shootbook/internal/pkg/errs"
)

// ResolveEffectivePolicy returns the policy captured at booking, else the
// provider's active default. A nil policy with a nil error means the implicit
// flexible terms apply.
func ResolveEffectivePolicy(ctx context.Context, reads CommandReads, res *payment.Reservation) (*cancellation.Policy, error) {
	if id := res.CancellationPolicyID(); id != nil {
		p, err := reads.PolicyByID(ctx, *id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrPolicyNotFound)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return p, nil
	}

	p, err := reads.DefaultPolicy(ctx, res.ProviderID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return p, nil
}
