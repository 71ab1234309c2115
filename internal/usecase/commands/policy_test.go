//go:build unit

package commands_test

import (
	"context"
	"testing"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/user"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/commands"
	"shootbook/tests/common/builder"
	"shootbook/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type policyFixture struct {
	uow      *fake.UoW
	cmds     commands.PolicyCommands
	provider user.Actor
}

func newPolicyFixture(t *testing.T) *policyFixture {
	t.Helper()
	clk := clock.NewMockClock(fixedNow)
	uow := fake.NewUoW(clk.Now)
	return &policyFixture{
		uow:      uow,
		cmds:     commands.NewPolicyUseCase(uow, clk),
		provider: user.Actor{ID: uuid.New(), Role: user.RoleProvider},
	}
}

func (f *policyFixture) customRequest(name string) commands.PolicyRequest {
	return commands.PolicyRequest{
		ProviderID: f.provider.ID,
		Name:       name,
		Type:       cancellation.PolicyTypeCustom,
		Rules: []cancellation.RefundRule{
			{HoursBefore: 48, RefundPercentage: 100},
			{HoursBefore: 0, RefundPercentage: 25},
		},
		Fee: cancellation.Fee{FixedCents: 100},
	}
}

func (f *policyFixture) defaults() []*cancellation.Policy {
	var out []*cancellation.Policy
	for _, p := range f.uow.PoliciesOf(f.provider.ID) {
		if p.IsDefault() {
			out = append(out, p)
		}
	}
	return out
}

func TestCreatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("success: first policy becomes the default", func(t *testing.T) {
		f := newPolicyFixture(t)

		p, err := f.cmds.CreatePolicy(ctx, f.customRequest("Standard"), f.provider)

		require.NoError(t, err)
		assert.True(t, p.IsDefault())
		assert.True(t, p.IsActive())
		assert.Equal(t, cancellation.PolicyTypeCustom, p.Type())
		assert.Len(t, p.Rules(), 2)
	})

	t.Run("success: later policies stay secondary unless asked", func(t *testing.T) {
		f := newPolicyFixture(t)
		first, err := f.cmds.CreatePolicy(ctx, f.customRequest("Standard"), f.provider)
		require.NoError(t, err)

		second, err := f.cmds.CreatePolicy(ctx, f.customRequest("Peak season"), f.provider)
		require.NoError(t, err)
		assert.False(t, second.IsDefault())

		req := f.customRequest("Weddings")
		req.MakeDefault = true
		third, err := f.cmds.CreatePolicy(ctx, req, f.provider)
		require.NoError(t, err)
		assert.True(t, third.IsDefault())

		defaults := f.defaults()
		require.Len(t, defaults, 1)
		assert.Equal(t, third.ID(), defaults[0].ID())
		stored, ok := f.uow.Policy(first.ID())
		require.True(t, ok)
		assert.False(t, stored.IsDefault())
	})

	t.Run("success: template fills rules and fee", func(t *testing.T) {
		f := newPolicyFixture(t)
		tpl := cancellation.PolicyTypeModerate

		p, err := f.cmds.CreatePolicy(ctx, commands.PolicyRequest{ProviderID: f.provider.ID, Template: &tpl}, f.provider)

		require.NoError(t, err)
		assert.Equal(t, cancellation.PolicyTypeModerate, p.Type())
		assert.Equal(t, "Moderate", p.Name())
		assert.Len(t, p.Rules(), 3)
		assert.InDelta(t, 5.0, p.Fee().Percentage, 0.001)
	})

	t.Run("success: admin creates for a provider", func(t *testing.T) {
		f := newPolicyFixture(t)
		admin := user.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		p, err := f.cmds.CreatePolicy(ctx, f.customRequest("Standard"), admin)

		require.NoError(t, err)
		assert.Equal(t, f.provider.ID, p.ProviderID())
	})

	testCases := []struct {
		name    string
		mutate  func(req *commands.PolicyRequest)
		actor   func(f *policyFixture) user.Actor
		wantErr error
	}{
		{
			name:    "error: another provider",
			actor:   func(*policyFixture) user.Actor { return user.Actor{ID: uuid.New(), Role: user.RoleProvider} },
			wantErr: errs.ErrForbidden,
		},
		{
			name: "error: refund percentage above 100",
			mutate: func(req *commands.PolicyRequest) {
				req.Rules = []cancellation.RefundRule{{HoursBefore: 24, RefundPercentage: 120}}
			},
			wantErr: errs.ErrDomainValidation,
		},
		{
			name:    "error: no rules for a non-strict policy",
			mutate:  func(req *commands.PolicyRequest) { req.Rules = nil },
			wantErr: errs.ErrDomainValidation,
		},
		{
			name:    "error: blank name",
			mutate:  func(req *commands.PolicyRequest) { req.Name = "  " },
			wantErr: errs.ErrDomainValidation,
		},
		{
			name:    "error: negative fixed fee",
			mutate:  func(req *commands.PolicyRequest) { req.Fee.FixedCents = -1 },
			wantErr: errs.ErrDomainValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPolicyFixture(t)
			req := f.customRequest("Standard")
			if tc.mutate != nil {
				tc.mutate(&req)
			}
			actor := f.provider
			if tc.actor != nil {
				actor = tc.actor(f)
			}

			_, err := f.cmds.CreatePolicy(ctx, req, actor)

			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.Empty(t, f.uow.PoliciesOf(f.provider.ID))
		})
	}
}

func TestRevisePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("success: new revision takes over and the old one keeps its terms", func(t *testing.T) {
		f := newPolicyFixture(t)
		old, err := f.cmds.CreatePolicy(ctx, f.customRequest("Standard"), f.provider)
		require.NoError(t, err)

		req := f.customRequest("Standard v2")
		req.Rules = []cancellation.RefundRule{{HoursBefore: 0, RefundPercentage: 10}}
		next, err := f.cmds.RevisePolicy(ctx, old.ID(), req, f.provider)

		require.NoError(t, err)
		assert.True(t, next.IsDefault())
		require.NotNil(t, next.ReplacesPolicyID())
		assert.Equal(t, old.ID(), *next.ReplacesPolicyID())

		stored, ok := f.uow.Policy(old.ID())
		require.True(t, ok)
		assert.False(t, stored.IsActive())
		assert.False(t, stored.IsDefault())
		assert.Equal(t, old.Rules(), stored.Rules())
		assert.Len(t, f.defaults(), 1)
	})

	t.Run("error: inactive policy", func(t *testing.T) {
		f := newPolicyFixture(t)
		p := builder.NewPolicyBuilder().WithProviderID(f.provider.ID).AsInactive().BuildDomain()
		f.uow.PutPolicy(p)

		_, err := f.cmds.RevisePolicy(ctx, p.ID(), f.customRequest("again"), f.provider)

		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("error: another provider's policy", func(t *testing.T) {
		f := newPolicyFixture(t)
		p := builder.NewPolicyBuilder().BuildDomain()
		f.uow.PutPolicy(p)

		_, err := f.cmds.RevisePolicy(ctx, p.ID(), f.customRequest("mine"), f.provider)

		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("error: unknown policy", func(t *testing.T) {
		f := newPolicyFixture(t)

		_, err := f.cmds.RevisePolicy(ctx, uuid.New(), f.customRequest("x"), f.provider)

		assert.True(t, errs.Is(err, errs.ErrPolicyNotFound))
	})
}

func TestSetDefaultPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("success: moves the default flag", func(t *testing.T) {
		f := newPolicyFixture(t)
		first, err := f.cmds.CreatePolicy(ctx, f.customRequest("A"), f.provider)
		require.NoError(t, err)
		second, err := f.cmds.CreatePolicy(ctx, f.customRequest("B"), f.provider)
		require.NoError(t, err)

		out, err := f.cmds.SetDefaultPolicy(ctx, second.ID(), f.provider)

		require.NoError(t, err)
		assert.True(t, out.IsDefault())
		defaults := f.defaults()
		require.Len(t, defaults, 1)
		assert.Equal(t, second.ID(), defaults[0].ID())
		stored, _ := f.uow.Policy(first.ID())
		assert.False(t, stored.IsDefault())
	})

	t.Run("success: already default is a no-op", func(t *testing.T) {
		f := newPolicyFixture(t)
		p, err := f.cmds.CreatePolicy(ctx, f.customRequest("A"), f.provider)
		require.NoError(t, err)

		out, err := f.cmds.SetDefaultPolicy(ctx, p.ID(), f.provider)

		require.NoError(t, err)
		assert.True(t, out.IsDefault())
		assert.Len(t, f.defaults(), 1)
	})

	t.Run("error: inactive policy cannot become default", func(t *testing.T) {
		f := newPolicyFixture(t)
		p := builder.NewPolicyBuilder().WithProviderID(f.provider.ID).AsInactive().BuildDomain()
		f.uow.PutPolicy(p)

		_, err := f.cmds.SetDefaultPolicy(ctx, p.ID(), f.provider)

		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}

func TestDeactivatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("success: retires the policy and its default flag", func(t *testing.T) {
		f := newPolicyFixture(t)
		p, err := f.cmds.CreatePolicy(ctx, f.customRequest("A"), f.provider)
		require.NoError(t, err)

		require.NoError(t, f.cmds.DeactivatePolicy(ctx, p.ID(), f.provider))

		stored, ok := f.uow.Policy(p.ID())
		require.True(t, ok)
		assert.False(t, stored.IsActive())
		assert.False(t, stored.IsDefault())
		assert.Empty(t, f.defaults())

		assert.NoError(t, f.cmds.DeactivatePolicy(ctx, p.ID(), f.provider))
	})

	t.Run("error: another provider", func(t *testing.T) {
		f := newPolicyFixture(t)
		p := builder.NewPolicyBuilder().BuildDomain()
		f.uow.PutPolicy(p)

		err := f.cmds.DeactivatePolicy(ctx, p.ID(), f.provider)

		assert.True(t, errs.Is(err, errs.ErrForbidden))
		stored, _ := f.uow.Policy(p.ID())
		assert.True(t, stored.IsActive())
	})
}
