//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/commands"
	"shootbook/tests/common/builder"
	"shootbook/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJustification = "撮影場所が台風で閉鎖されたため、やむを得ずキャンセルします"

func (f *paymentFixture) policy(b *builder.PolicyBuilder) *cancellation.Policy {
	p := b.WithProviderID(f.provider.ID).BuildDomain()
	f.uow.PutPolicy(p)
	return p
}

func (f *paymentFixture) cancel(t *testing.T, id uuid.UUID, by payment.CancelledBy, reason string) (*commands.CancellationResult, error) {
	t.Helper()
	actor := f.client
	if by == payment.CancelledByProvider {
		actor = f.provider
	}
	return f.cmds.HandleCancellation(context.Background(), commands.CancellationRequest{
		ReservationID: id,
		CancelledBy:   by,
		Reason:        reason,
	}, actor)
}

func TestHandleCancellation_RefundAmounts(t *testing.T) {
	testCases := []struct {
		name          string
		policy        func() *builder.PolicyBuilder
		hoursBefore   float64
		by            payment.CancelledBy
		reason        string
		wantStatus    payment.PaymentStatus
		wantRefund    int64
		wantFee       int64
		wantPct       float64
		wantGatewayID bool
	}{
		{
			name:          "moderate policy three days out refunds half minus the fee",
			policy:        func() *builder.PolicyBuilder { return builder.NewPolicyBuilder().AsModerate().WithFee(5, 0) },
			hoursBefore:   72,
			by:            payment.CancelledByClient,
			wantStatus:    payment.PaymentStatusRefunded,
			wantRefund:    450,
			wantFee:       50,
			wantPct:       50,
			wantGatewayID: true,
		},
		{
			name:          "moderate policy a week out refunds everything but the fee",
			policy:        func() *builder.PolicyBuilder { return builder.NewPolicyBuilder().AsModerate().WithFee(5, 0) },
			hoursBefore:   200,
			by:            payment.CancelledByClient,
			wantStatus:    payment.PaymentStatusRefunded,
			wantRefund:    950,
			wantFee:       50,
			wantPct:       100,
			wantGatewayID: true,
		},
		{
			name:        "moderate policy inside 24 hours refunds nothing",
			policy:      func() *builder.PolicyBuilder { return builder.NewPolicyBuilder().AsModerate() },
			hoursBefore: 10,
			by:          payment.CancelledByClient,
			wantStatus:  payment.PaymentStatusCancelled,
			wantRefund:  0,
			wantPct:     0,
		},
		{
			name:          "provider cancellation refunds in full regardless of policy",
			policy:        func() *builder.PolicyBuilder { return builder.NewPolicyBuilder().AsModerate().WithFee(5, 200) },
			hoursBefore:   2,
			by:            payment.CancelledByProvider,
			wantStatus:    payment.PaymentStatusRefunded,
			wantRefund:    1000,
			wantPct:       100,
			wantGatewayID: true,
		},
		{
			name:        "strict policy with justification refunds nothing",
			policy:      func() *builder.PolicyBuilder { return builder.NewPolicyBuilder().AsStrict() },
			hoursBefore: 400,
			by:          payment.CancelledByClient,
			reason:      validJustification,
			wantStatus:  payment.PaymentStatusCancelled,
			wantRefund:  0,
		},
		{
			name:          "fee larger than the refund floors at zero",
			policy:        func() *builder.PolicyBuilder { return builder.NewPolicyBuilder().AsModerate().WithFee(0, 600) },
			hoursBefore:   72,
			by:            payment.CancelledByClient,
			wantStatus:    payment.PaymentStatusCancelled,
			wantRefund:    0,
			wantFee:       600,
			wantPct:       50,
			wantGatewayID: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPaymentFixture(t)
			p := f.policy(tc.policy())
			res := f.reservation(func(b *builder.ReservationBuilder) {
				b.AsDepositPaid().
					WithPolicyID(p.ID()).
					WithServiceDate(fixedNow.Add(time.Duration(tc.hoursBefore * float64(time.Hour))))
			})

			out, err := f.cancel(t, res.ID(), tc.by, tc.reason)

			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, out.PaymentStatus)
			assert.Equal(t, payment.ServiceStatusCancelled, out.ServiceStatus)
			assert.Equal(t, tc.wantRefund, out.RefundCents)
			assert.Equal(t, tc.wantFee, out.FeeCents)
			assert.InDelta(t, tc.wantPct, out.RefundPercentage, 0.001)
			assert.Equal(t, tc.by, out.CancelledBy)
			assert.False(t, out.AlreadyCancelled)
			assert.Equal(t, tc.wantRefund, f.gateway.RefundedCents())

			stored := f.stored(t, res.ID())
			require.NotNil(t, stored.Cancellation())
			assert.Equal(t, tc.wantRefund, stored.Cancellation().RefundCents)
			assert.Equal(t, tc.by, stored.Cancellation().By)

			ledger := f.uow.Transactions(res.ID())
			if tc.wantGatewayID {
				assert.NotEmpty(t, out.RefundID)
				require.Len(t, ledger, 1)
				assert.Equal(t, payment.TransactionTypeRefund, ledger[0].Type())
				assert.Equal(t, tc.wantRefund, ledger[0].AmountCents())
				require.NotNil(t, ledger[0].Metadata())
				assert.Equal(t, tc.by, ledger[0].Metadata().CancelledBy)
				assert.Equal(t, []string{payment.EventRefunded}, f.uow.EventTypes())
			} else {
				assert.Empty(t, out.RefundID)
				assert.Empty(t, ledger)
				assert.Empty(t, f.gateway.Refunds)
				assert.Equal(t, []string{payment.EventCancelled}, f.uow.EventTypes())
			}
		})
	}
}

func TestHandleCancellation_Rules(t *testing.T) {
	ctx := context.Background()

	t.Run("success: second cancel returns the recorded outcome without a second refund", func(t *testing.T) {
		f := newPaymentFixture(t)
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsDepositPaid() })

		first, err := f.cancel(t, res.ID(), payment.CancelledByProvider, "")
		require.NoError(t, err)
		second, err := f.cancel(t, res.ID(), payment.CancelledByProvider, "")
		require.NoError(t, err)

		assert.True(t, second.AlreadyCancelled)
		assert.Equal(t, int64(1000), first.RefundCents)
		assert.Equal(t, first.RefundCents, second.RefundCents)
		assert.Equal(t, first.RefundID, second.RefundID)
		assert.Len(t, f.gateway.Refunds, 1)
		assert.Empty(t, f.gateway.Transfers)
		assert.Len(t, f.uow.Transactions(res.ID()), 1)
	})

	t.Run("success: repeated client cancel reports the policy and fee applied the first time", func(t *testing.T) {
		f := newPaymentFixture(t)
		p := f.policy(builder.NewPolicyBuilder().AsModerate().WithFee(5, 0).AsDefault())
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsCaptured() })

		first, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")
		require.NoError(t, err)
		second, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")
		require.NoError(t, err)

		require.NotNil(t, first.PolicyID)
		assert.Equal(t, p.ID(), *first.PolicyID)
		assert.Equal(t, int64(50), first.FeeCents)
		assert.True(t, second.AlreadyCancelled)
		second.AlreadyCancelled = false
		second.Decision = first.Decision
		assert.Equal(t, first, second)

		stored := f.stored(t, res.ID()).Cancellation()
		require.NotNil(t, stored)
		assert.Equal(t, first.PolicyID, stored.PolicyID)
		assert.Equal(t, int64(50), stored.FeeCents)
		assert.Nil(t, f.stored(t, res.ID()).CancellationPolicyID())
	})

	t.Run("success: zero refund still records the applied policy", func(t *testing.T) {
		f := newPaymentFixture(t)
		p := f.policy(builder.NewPolicyBuilder().AsModerate().WithFee(0, 600))
		res := f.reservation(func(b *builder.ReservationBuilder) {
			b.AsDepositPaid().WithPolicyID(p.ID()).WithServiceDate(fixedNow.Add(72 * time.Hour))
		})

		_, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")
		require.NoError(t, err)
		again, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")
		require.NoError(t, err)

		assert.Zero(t, again.RefundCents)
		assert.Equal(t, int64(600), again.FeeCents)
		require.NotNil(t, again.PolicyID)
		assert.Equal(t, p.ID(), *again.PolicyID)
		assert.Empty(t, f.uow.Transactions(res.ID()))
	})

	t.Run("success: nothing captured voids the open intent without a refund", func(t *testing.T) {
		f := newPaymentFixture(t)
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsIntentCreated() })

		out, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")

		require.NoError(t, err)
		assert.Equal(t, payment.PaymentStatusCancelled, out.PaymentStatus)
		assert.Zero(t, out.RefundCents)
		assert.Empty(t, f.gateway.Refunds)
		assert.Equal(t, []string{res.PaymentIntentID()}, f.gateway.Voided)
	})

	t.Run("error: failing to void the intent leaves the reservation open", func(t *testing.T) {
		f := newPaymentFixture(t)
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsIntentCreated() })
		f.gateway.FailStep(commands.StepCancelIntent, fake.ErrGatewayDown)

		_, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrGateway))
		assert.Equal(t, payment.PaymentStatusIntentCreated, f.stored(t, res.ID()).PaymentStatus())
		assert.Empty(t, f.uow.Events())
	})

	t.Run("success: pending reservation cancels without the gateway", func(t *testing.T) {
		f := newPaymentFixture(t)
		res := f.reservation()

		out, err := f.cancel(t, res.ID(), payment.CancelledByProvider, "")

		require.NoError(t, err)
		assert.Equal(t, payment.PaymentStatusCancelled, out.PaymentStatus)
		assert.Empty(t, f.gateway.Voided)
		assert.Empty(t, f.gateway.Refunds)
	})

	t.Run("success: no policy falls back to the implicit flexible terms", func(t *testing.T) {
		f := newPaymentFixture(t)
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsCaptured() })

		out, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")

		require.NoError(t, err)
		assert.Equal(t, int64(1000), out.RefundCents)
		assert.Nil(t, out.PolicyID)
	})

	t.Run("success: provider default applies when none was captured", func(t *testing.T) {
		f := newPaymentFixture(t)
		p := f.policy(builder.NewPolicyBuilder().AsModerate().WithFee(5, 0).AsDefault())
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsCaptured() })

		out, err := f.cancel(t, res.ID(), payment.CancelledByClient, "")

		require.NoError(t, err)
		assert.Equal(t, int64(450), out.RefundCents)
		require.NotNil(t, out.PolicyID)
		assert.Equal(t, p.ID(), *out.PolicyID)
	})

	t.Run("success: request policy overrides the effective one", func(t *testing.T) {
		f := newPaymentFixture(t)
		stored := f.policy(builder.NewPolicyBuilder().AsModerate())
		override := builder.NewPolicyBuilder().WithProviderID(f.provider.ID).
			WithRules(cancellation.RefundRule{HoursBefore: 0, RefundPercentage: 80}).BuildDomain()
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsCaptured().WithPolicyID(stored.ID()) })

		out, err := f.cmds.HandleCancellation(ctx, commands.CancellationRequest{
			ReservationID: res.ID(),
			CancelledBy:   payment.CancelledByClient,
			Policy:        override,
		}, f.client)

		require.NoError(t, err)
		assert.Equal(t, int64(800), out.RefundCents)
		require.NotNil(t, out.PolicyID)
		assert.Equal(t, override.ID(), *out.PolicyID)
		assert.Equal(t, override.ID(), *f.stored(t, res.ID()).Cancellation().PolicyID)
	})

	testCases := []struct {
		name    string
		mutate  func(f *paymentFixture, b *builder.ReservationBuilder)
		by      payment.CancelledBy
		actor   func(f *paymentFixture) user.Actor
		reason  string
		wantErr error
	}{
		{
			name: "error: strict policy without justification",
			mutate: func(f *paymentFixture, b *builder.ReservationBuilder) {
				b.AsCaptured().WithPolicyID(f.policy(builder.NewPolicyBuilder().AsStrict()).ID())
			},
			by:      payment.CancelledByClient,
			reason:  "やむを得ない事情",
			wantErr: errs.ErrInsufficientJustification,
		},
		{
			name: "error: policy without a floor tier refuses late cancellation",
			mutate: func(f *paymentFixture, b *builder.ReservationBuilder) {
				p := f.policy(builder.NewPolicyBuilder().WithRules(cancellation.RefundRule{HoursBefore: 96, RefundPercentage: 100}))
				b.AsCaptured().WithPolicyID(p.ID())
			},
			by:      payment.CancelledByClient,
			wantErr: errs.ErrPolicyRefusal,
		},
		{
			name: "error: implicit terms refuse inside 24 hours",
			mutate: func(_ *paymentFixture, b *builder.ReservationBuilder) {
				b.AsCaptured().WithServiceDate(fixedNow.Add(12 * time.Hour))
			},
			by:      payment.CancelledByClient,
			wantErr: errs.ErrPolicyRefusal,
		},
		{
			name:    "error: settled reservation",
			mutate:  func(_ *paymentFixture, b *builder.ReservationBuilder) { b.AsDepositPaid().WithPaymentStatus(payment.PaymentStatusSettled) },
			by:      payment.CancelledByProvider,
			wantErr: errs.ErrInvalidTransition,
		},
		{
			name:    "error: client cannot cancel as provider",
			mutate:  func(_ *paymentFixture, b *builder.ReservationBuilder) { b.AsCaptured() },
			by:      payment.CancelledByProvider,
			actor:   func(f *paymentFixture) user.Actor { return f.client },
			wantErr: errs.ErrForbidden,
		},
		{
			name:    "error: stranger",
			mutate:  func(_ *paymentFixture, b *builder.ReservationBuilder) { b.AsCaptured() },
			by:      payment.CancelledByClient,
			actor:   func(*paymentFixture) user.Actor { return user.Actor{ID: uuid.New(), Role: user.RoleClient} },
			wantErr: errs.ErrForbidden,
		},
		{
			name:    "error: unknown cancelling party",
			mutate:  func(_ *paymentFixture, b *builder.ReservationBuilder) { b.AsCaptured() },
			by:      payment.CancelledBy("platform"),
			wantErr: errs.ErrDomainValidation,
		},
		{
			name: "error: captured policy was removed",
			mutate: func(_ *paymentFixture, b *builder.ReservationBuilder) {
				b.AsCaptured().WithPolicyID(uuid.New())
			},
			by:      payment.CancelledByClient,
			wantErr: errs.ErrPolicyNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPaymentFixture(t)
			res := f.reservation(func(b *builder.ReservationBuilder) { tc.mutate(f, b) })
			actor := f.client
			if tc.by == payment.CancelledByProvider {
				actor = f.provider
			}
			if tc.actor != nil {
				actor = tc.actor(f)
			}

			_, err := f.cmds.HandleCancellation(ctx, commands.CancellationRequest{
				ReservationID: res.ID(),
				CancelledBy:   tc.by,
				Reason:        tc.reason,
			}, actor)

			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.Empty(t, f.gateway.Refunds)
			assert.Equal(t, res.PaymentStatus(), f.stored(t, res.ID()).PaymentStatus())
			assert.Empty(t, f.uow.Events())
		})
	}

	t.Run("error: refund failure writes nothing", func(t *testing.T) {
		f := newPaymentFixture(t)
		res := f.reservation(func(b *builder.ReservationBuilder) { b.AsDepositPaid() })
		f.gateway.FailStep(commands.StepRefund, fake.ErrGatewayDown)

		_, err := f.cancel(t, res.ID(), payment.CancelledByProvider, "")

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrGateway))
		stored := f.stored(t, res.ID())
		assert.Equal(t, payment.PaymentStatusDepositPaid, stored.PaymentStatus())
		assert.Nil(t, stored.Cancellation())
		assert.Empty(t, f.uow.Events())

		f.gateway.ClearFailures()
		out, err := f.cancel(t, res.ID(), payment.CancelledByProvider, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), out.RefundCents)
	})
}
