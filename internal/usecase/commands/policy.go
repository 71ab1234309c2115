package commands

import (
	"context"
	"errors"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/user"
	"shootbook/internal/infra"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type PolicyRequest struct {
	ProviderID uuid.UUID
	Name       string
	// Template fills type, rules and fee from a named template when set.
	Template    *cancellation.PolicyType
	Type        cancellation.PolicyType
	Rules       []cancellation.RefundRule
	Fee         cancellation.Fee
	MakeDefault bool
}

func (r PolicyRequest) spec() (cancellation.PolicySpec, error) {
	if r.Template != nil {
		tpl, err := cancellation.TemplateFor(*r.Template)
		if err != nil {
			return cancellation.PolicySpec{}, err
		}
		return tpl.Spec(r.ProviderID, r.Name), nil
	}
	return cancellation.PolicySpec{
		ProviderID: r.ProviderID,
		Name:       r.Name,
		Type:       r.Type,
		Rules:      r.Rules,
		Fee:        r.Fee,
	}, nil
}

type PolicyCommands interface {
	CreatePolicy(ctx context.Context, req PolicyRequest, actor user.Actor) (*cancellation.Policy, error)
	// RevisePolicy stores req as a new revision. Reservations that captured the
	// old revision keep its terms.
	RevisePolicy(ctx context.Context, policyID uuid.UUID, req PolicyRequest, actor user.Actor) (*cancellation.Policy, error)
	SetDefaultPolicy(ctx context.Context, policyID uuid.UUID, actor user.Actor) (*cancellation.Policy, error)
	DeactivatePolicy(ctx context.Context, policyID uuid.UUID, actor user.Actor) error
}

type policyUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPolicyUseCase(uow shared.UnitOfWork, clk clock.Clock) PolicyCommands {
	return &policyUseCaseImpl{uow: uow, clock: clk}
}

func (uc *policyUseCaseImpl) CreatePolicy(ctx context.Context, req PolicyRequest, actor user.Actor) (*cancellation.Policy, error) {
	if !actor.CanActFor(req.ProviderID) {
		return nil, errs.ErrForbidden
	}
	spec, err := req.spec()
	if err != nil {
		return nil, policyErr(err)
	}
	now := uc.clock.Now()
	p, err := cancellation.NewPolicy(spec, now)
	if err != nil {
		return nil, policyErr(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := currentDefault(ctx, tx, req.ProviderID)
		if err != nil {
			return err
		}
		// The first policy of a provider becomes its default.
		if req.MakeDefault || current == nil {
			if current != nil {
				current.UnmarkDefault(now)
				if err := tx.Policies().UpdateFlags(ctx, current); err != nil {
					return err
				}
			}
			if err := p.MarkDefault(now); err != nil {
				return err
			}
		}
		return tx.Policies().Create(ctx, p)
	})
	if err != nil {
		return nil, policyErr(err)
	}
	return p, nil
}

func (uc *policyUseCaseImpl) RevisePolicy(ctx context.Context, policyID uuid.UUID, req PolicyRequest, actor user.Actor) (*cancellation.Policy, error) {
	var next *cancellation.Policy
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := ownedPolicy(ctx, tx, policyID, actor)
		if err != nil {
			return err
		}
		req.ProviderID = current.ProviderID()
		spec, err := req.spec()
		if err != nil {
			return err
		}
		n, err := current.Revise(spec, uc.clock.Now())
		if err != nil {
			return err
		}
		// Old revision gives up the default flag before the new one takes it.
		if err := tx.Policies().UpdateFlags(ctx, current); err != nil {
			return err
		}
		if err := tx.Policies().Create(ctx, n); err != nil {
			return err
		}
		next = n
		return nil
	})
	if err != nil {
		return nil, policyErr(err)
	}
	return next, nil
}

func (uc *policyUseCaseImpl) SetDefaultPolicy(ctx context.Context, policyID uuid.UUID, actor user.Actor) (*cancellation.Policy, error) {
	var out *cancellation.Policy
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := ownedPolicy(ctx, tx, policyID, actor)
		if err != nil {
			return err
		}
		if p.IsDefault() {
			out = p
			return nil
		}
		now := uc.clock.Now()
		current, err := currentDefault(ctx, tx, p.ProviderID())
		if err != nil {
			return err
		}
		if current != nil {
			current.UnmarkDefault(now)
			if err := tx.Policies().UpdateFlags(ctx, current); err != nil {
				return err
			}
		}
		if err := p.MarkDefault(now); err != nil {
			return err
		}
		if err := tx.Policies().UpdateFlags(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, policyErr(err)
	}
	return out, nil
}

// DeactivatePolicy retires a policy. A provider without a default falls back
// to the implicit flexible terms for new bookings.
func (uc *policyUseCaseImpl) DeactivatePolicy(ctx context.Context, policyID uuid.UUID, actor user.Actor) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := ownedPolicy(ctx, tx, policyID, actor)
		if err != nil {
			return err
		}
		if !p.IsActive() {
			return nil
		}
		p.Deactivate(uc.clock.Now())
		return tx.Policies().UpdateFlags(ctx, p)
	})
	if err != nil {
		return policyErr(err)
	}
	return nil
}

func ownedPolicy(ctx context.Context, tx shared.Tx, id uuid.UUID, actor user.Actor) (*cancellation.Policy, error) {
	p, err := tx.Reads().PolicyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(p.ProviderID()) {
		return nil, errs.ErrForbidden
	}
	return p, nil
}

func currentDefault(ctx context.Context, tx shared.Tx, providerID uuid.UUID) (*cancellation.Policy, error) {
	p, err := tx.Reads().DefaultPolicy(ctx, providerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func policyErr(err error) error {
	switch {
	case errs.Is(err, errs.ErrForbidden):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrPolicyNotFound)
	case errors.Is(err, cancellation.ErrPolicyOwnership):
		return errs.Mark(err, errs.ErrForbidden)
	case errors.Is(err, cancellation.ErrInvalidPolicy), errors.Is(err, cancellation.ErrPolicyInactive):
		return errs.Mark(err, errs.ErrDomainValidation)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrConcurrentModification)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
