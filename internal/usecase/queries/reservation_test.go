//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/infra"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/queries"
	"shootbook/internal/usecase/shared"
	"shootbook/tests/common/builder"
	"shootbook/tests/common/fake"
	queriesmock "shootbook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uow      *fake.UoW
	q        queries.ReservationQueries
	client   user.Actor
	provider user.Actor
}

func newFixture() *fixture {
	clk := clock.NewMockClock(now)
	uow := fake.NewUoW(clk.Now)
	return &fixture{
		uow:      uow,
		q:        queries.NewReservationQueries(fake.Views{U: uow}, uow, clk),
		client:   user.Actor{ID: uuid.New(), Role: user.RoleClient},
		provider: user.Actor{ID: uuid.New(), Role: user.RoleProvider},
	}
}

func (f *fixture) seed(mutate func(*builder.ReservationBuilder)) *payment.Reservation {
	b := builder.NewReservationBuilder().
		WithClientID(f.client.ID).
		WithProviderID(f.provider.ID).
		WithServiceDate(now.Add(72 * time.Hour))
	if mutate != nil {
		mutate(b)
	}
	res := b.BuildDomain()
	f.uow.PutReservation(res)
	return res
}

func TestReservationQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	res := f.seed(nil)

	testCases := []struct {
		name    string
		actor   user.Actor
		wantErr error
	}{
		{name: "success: client", actor: f.client},
		{name: "success: provider", actor: f.provider},
		{name: "success: admin", actor: user.Actor{ID: uuid.New(), Role: user.RoleAdmin}},
		{name: "error: stranger", actor: user.Actor{ID: uuid.New(), Role: user.RoleClient}, wantErr: errs.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := f.q.GetByID(ctx, tc.actor, res.ID())
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.wantErr))
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, res.ID(), view.ID)
			assert.Equal(t, int64(300), view.DepositCents)
		})
	}

	t.Run("error: unknown reservation", func(t *testing.T) {
		_, err := f.q.GetByID(ctx, f.client, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
	})
}

func TestReservationQueries_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := queriesmock.NewMockReservationViewRepo(ctrl)
	uow := fake.NewUoW(nil)
	q := queries.NewReservationQueries(repo, uow, clock.NewMockClock(now))
	id := uuid.New()

	repo.EXPECT().FindByID(gomock.Any(), id).
		Return(nil, infra.WrapRepoErr("failed to find reservation by ID", errors.New("connection reset")))

	_, err := q.GetByIDSystem(ctx, id)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	assert.False(t, errs.Is(err, errs.ErrReservationNotFound))
}

func TestReservationQueries_ListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	res := f.seed(func(b *builder.ReservationBuilder) { b.AsDepositPaid() })
	tx, err := payment.NewTransaction(res.ID(), payment.TransactionTypeDepositTransfer, 300, "tr_1", nil, now)
	require.NoError(t, err)
	require.NoError(t, f.uow.Within(ctx, func(ctx context.Context, w shared.Tx) error {
		return w.Transactions().Append(ctx, tx)
	}))

	rows, err := f.q.ListTransactions(ctx, f.provider, res.ID())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "deposit_transfer", rows[0].Type)
	assert.Equal(t, int64(300), rows[0].AmountCents)

	_, err = f.q.ListTransactions(ctx, user.Actor{ID: uuid.New(), Role: user.RoleProvider}, res.ID())
	assert.True(t, errs.Is(err, errs.ErrForbidden))
}

func TestReservationQueries_PreviewCancellation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		policy     *builder.PolicyBuilder
		mutate     func(*builder.ReservationBuilder)
		by         payment.CancelledBy
		wantCan    bool
		wantJust   bool
		wantGross  int64
		wantFee    int64
		wantRefund int64
		wantType   string
	}{
		{
			name:       "moderate policy three days out",
			policy:     builder.NewPolicyBuilder().AsModerate().WithFee(5, 0),
			mutate:     func(b *builder.ReservationBuilder) { b.AsCaptured() },
			by:         payment.CancelledByClient,
			wantCan:    true,
			wantGross:  500,
			wantFee:    50,
			wantRefund: 450,
			wantType:   "moderate",
		},
		{
			name:       "nothing captured shows the terms but no refund",
			policy:     builder.NewPolicyBuilder().AsModerate().WithFee(5, 0),
			by:         payment.CancelledByClient,
			wantCan:    true,
			wantGross:  500,
			wantFee:    50,
			wantRefund: 0,
			wantType:   "moderate",
		},
		{
			name:     "strict policy requires a justification",
			policy:   builder.NewPolicyBuilder().AsStrict(),
			mutate:   func(b *builder.ReservationBuilder) { b.AsCaptured() },
			by:       payment.CancelledByClient,
			wantCan:  true,
			wantJust: true,
			wantType: "strict",
		},
		{
			name:       "provider always refunds in full",
			policy:     builder.NewPolicyBuilder().AsStrict(),
			mutate:     func(b *builder.ReservationBuilder) { b.AsCaptured() },
			by:         payment.CancelledByProvider,
			wantCan:    true,
			wantGross:  1000,
			wantRefund: 1000,
		},
		{
			name:     "implicit terms refuse inside 24 hours",
			mutate:   func(b *builder.ReservationBuilder) { b.AsCaptured().WithServiceDate(now.Add(6 * time.Hour)) },
			by:       payment.CancelledByClient,
			wantCan:  false,
			wantType: "flexible",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			var policyID *uuid.UUID
			if tc.policy != nil {
				p := tc.policy.WithProviderID(f.provider.ID).BuildDomain()
				f.uow.PutPolicy(p)
				id := p.ID()
				policyID = &id
			}
			res := f.seed(func(b *builder.ReservationBuilder) {
				b.PolicyID = policyID
				if tc.mutate != nil {
					tc.mutate(b)
				}
			})
			before := f.uow.EventTypes()

			preview, err := f.q.PreviewCancellation(ctx, f.client, res.ID(), tc.by)

			require.NoError(t, err)
			assert.Equal(t, tc.wantCan, preview.CanCancel)
			assert.Equal(t, tc.wantJust, preview.RequiresJustification)
			assert.Equal(t, tc.wantGross, preview.GrossRefundCents)
			assert.Equal(t, tc.wantFee, preview.FeeCents)
			assert.Equal(t, tc.wantRefund, preview.RefundCents)
			assert.Equal(t, tc.wantType, preview.PolicyType)
			assert.Equal(t, tc.by.String(), preview.CancelledBy)
			assert.NotEmpty(t, preview.Reason)

			stored, _ := f.uow.Reservation(res.ID())
			assert.Equal(t, res.PaymentStatus(), stored.PaymentStatus())
			assert.Equal(t, before, f.uow.EventTypes())
		})
	}

	t.Run("error: terminal reservation", func(t *testing.T) {
		f := newFixture()
		res := f.seed(func(b *builder.ReservationBuilder) { b.AsRefunded(1000, payment.CancelledByProvider) })

		_, err := f.q.PreviewCancellation(ctx, f.client, res.ID(), payment.CancelledByClient)

		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("error: stranger", func(t *testing.T) {
		f := newFixture()
		res := f.seed(nil)

		_, err := f.q.PreviewCancellation(ctx, user.Actor{ID: uuid.New(), Role: user.RoleClient}, res.ID(), payment.CancelledByClient)

		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("error: unknown party", func(t *testing.T) {
		f := newFixture()
		res := f.seed(nil)

		_, err := f.q.PreviewCancellation(ctx, f.client, res.ID(), payment.CancelledBy("nobody"))

		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}
