//go:build unit

package payment_test

import (
	"testing"
	"time"

	"shootbook/internal/domain/payment"
	"shootbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSplitHolds(t *testing.T, r *payment.Reservation) {
	t.Helper()
	s := r.Split()
	assert.Equal(t, s.TotalCents(), s.DepositCents()+s.BalanceCents(), "deposit + balance must equal total")
}

func TestNewSplit(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		pct         float64
		wantDeposit int64
		wantBalance int64
		errIs       error
	}{
		{name: "30%で300/700", total: 1000, pct: 30, wantDeposit: 300, wantBalance: 700},
		{name: "端数は切り捨て", total: 999, pct: 33.3, wantDeposit: 332, wantBalance: 667},
		{name: "0%は全額残金", total: 1000, pct: 0, wantDeposit: 0, wantBalance: 1000},
		{name: "100%は全額手付金", total: 1000, pct: 100, wantDeposit: 1000, wantBalance: 0},
		{name: "1セントの予約", total: 1, pct: 50, wantDeposit: 0, wantBalance: 1},
		{name: "合計0はNG", total: 0, pct: 30, errIs: payment.ErrNonPositiveTotal},
		{name: "負の合計はNG", total: -100, pct: 30, errIs: payment.ErrNonPositiveTotal},
		{name: "100%超はNG", total: 1000, pct: 100.5, errIs: payment.ErrInvalidDepositPercentage},
		{name: "負の割合はNG", total: 1000, pct: -1, errIs: payment.ErrInvalidDepositPercentage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := payment.NewSplit(tt.total, tt.pct)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeposit, s.DepositCents())
			assert.Equal(t, tt.wantBalance, s.BalanceCents())
			assert.Equal(t, tt.total, s.DepositCents()+s.BalanceCents())
		})
	}
}

func TestReconstructSplit(t *testing.T) {
	_, err := payment.ReconstructSplit(1000, 300, 700, 30)
	require.NoError(t, err)

	_, err = payment.ReconstructSplit(1000, 300, 600, 30)
	assert.ErrorIs(t, err, payment.ErrSplitMismatch)
}

func TestNewReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	base := payment.NewReservationParams{
		ClientID:          uuid.New(),
		ProviderID:        uuid.New(),
		TotalCents:        1000,
		DepositPercentage: 30,
		ServiceDate:       now.Add(48 * time.Hour),
	}

	t.Run("基本成功ケース", func(t *testing.T) {
		r, err := payment.NewReservation(base, now)
		require.NoError(t, err)
		assert.Equal(t, payment.PaymentStatusPending, r.PaymentStatus())
		assert.Equal(t, payment.ServiceStatusConfirmed, r.ServiceStatus())
		assert.Equal(t, int64(1), r.Version())
		assertSplitHolds(t, r)
	})

	t.Run("同一ユーザーはNG", func(t *testing.T) {
		p := base
		p.ProviderID = p.ClientID
		_, err := payment.NewReservation(p, now)
		assert.ErrorIs(t, err, payment.ErrInvalidParty)
	})

	t.Run("撮影日なしはNG", func(t *testing.T) {
		p := base
		p.ServiceDate = time.Time{}
		_, err := payment.NewReservation(p, now)
		assert.Error(t, err)
	})
}

func TestReservation_PaymentLifecycle(t *testing.T) {
	now := time.Now().UTC()
	r := builder.NewReservationBuilder().BuildDomain()
	split := r.Split()

	require.NoError(t, r.MarkIntentCreated("pi_1", split, now))
	assert.Equal(t, payment.PaymentStatusIntentCreated, r.PaymentStatus())
	assert.Equal(t, "pi_1", r.PaymentIntentID())
	assertSplitHolds(t, r)

	require.NoError(t, r.MarkCaptured(now))
	assert.Equal(t, payment.PaymentStatusCaptured, r.PaymentStatus())
	assert.True(t, r.HasCapturedFunds())

	require.NoError(t, r.MarkDepositPaid("tr_dep", now))
	assert.Equal(t, payment.PaymentStatusDepositPaid, r.PaymentStatus())

	t.Run("撮影完了前の残金送金はNG", func(t *testing.T) {
		err := r.MarkSettled("tr_bal", now)
		assert.ErrorIs(t, err, payment.ErrServiceNotFinished)
		assert.Equal(t, payment.PaymentStatusDepositPaid, r.PaymentStatus())
	})

	require.NoError(t, r.FinishService(now))
	require.NoError(t, r.MarkSettled("tr_bal", now))
	assert.Equal(t, payment.PaymentStatusSettled, r.PaymentStatus())
	assert.True(t, r.PaymentStatus().IsTerminal())
	assertSplitHolds(t, r)

	t.Run("精算済みはキャンセル不可", func(t *testing.T) {
		err := r.Cancel(payment.Cancellation{At: now, By: payment.CancelledByClient}, "")
		assert.ErrorIs(t, err, payment.ErrInvalidTransition)
	})
}

func TestReservation_InvalidTransitions(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		build func() *payment.Reservation
		act   func(*payment.Reservation) error
		errIs error
	}{
		{
			name:  "pendingから直接キャプチャはNG",
			build: func() *payment.Reservation { return builder.NewReservationBuilder().BuildDomain() },
			act:   func(r *payment.Reservation) error { return r.MarkCaptured(now) },
			errIs: payment.ErrInvalidTransition,
		},
		{
			name:  "intent作成は一度だけ",
			build: func() *payment.Reservation { return builder.NewReservationBuilder().AsIntentCreated().BuildDomain() },
			act:   func(r *payment.Reservation) error { return r.MarkIntentCreated("pi_2", r.Split(), now) },
			errIs: payment.ErrInvalidTransition,
		},
		{
			name:  "空のintent IDはNG",
			build: func() *payment.Reservation { return builder.NewReservationBuilder().BuildDomain() },
			act:   func(r *payment.Reservation) error { return r.MarkIntentCreated(" ", r.Split(), now) },
			errIs: payment.ErrMissingExternalID,
		},
		{
			name:  "キャプチャ前の手付金送金はNG",
			build: func() *payment.Reservation { return builder.NewReservationBuilder().AsIntentCreated().BuildDomain() },
			act:   func(r *payment.Reservation) error { return r.MarkDepositPaid("tr_1", now) },
			errIs: payment.ErrInvalidTransition,
		},
		{
			name:  "手付金がある場合は送金IDが必要",
			build: func() *payment.Reservation { return builder.NewReservationBuilder().AsCaptured().BuildDomain() },
			act:   func(r *payment.Reservation) error { return r.MarkDepositPaid("", now) },
			errIs: payment.ErrMissingExternalID,
		},
		{
			name: "手付金支払前の精算はNG",
			build: func() *payment.Reservation {
				return builder.NewReservationBuilder().AsCaptured().AsServiceFinished().BuildDomain()
			},
			act:   func(r *payment.Reservation) error { return r.MarkSettled("tr_bal", now) },
			errIs: payment.ErrInvalidTransition,
		},
		{
			name: "キャンセル済みは撮影完了にできない",
			build: func() *payment.Reservation {
				return builder.NewReservationBuilder().AsRefunded(500, payment.CancelledByClient).BuildDomain()
			},
			act:   func(r *payment.Reservation) error { return r.FinishService(now) },
			errIs: payment.ErrReservationCancelled,
		},
		{
			name: "撮影完了は一度だけ",
			build: func() *payment.Reservation {
				return builder.NewReservationBuilder().AsDepositPaid().AsServiceFinished().BuildDomain()
			},
			act:   func(r *payment.Reservation) error { return r.FinishService(now) },
			errIs: payment.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.build()
			before := r.PaymentStatus()
			err := tt.act(r)
			require.ErrorIs(t, err, tt.errIs)
			assert.Equal(t, before, r.PaymentStatus())
		})
	}
}

func TestReservation_ZeroDeposit(t *testing.T) {
	now := time.Now().UTC()
	r := builder.NewReservationBuilder().WithTotal(1000, 0).AsCaptured().BuildDomain()

	require.NoError(t, r.MarkDepositPaid("", now))
	assert.Equal(t, payment.PaymentStatusDepositPaid, r.PaymentStatus())
	assert.Empty(t, r.DepositTransferID())
}

func TestReservation_Cancel(t *testing.T) {
	now := time.Now().UTC()

	t.Run("返金ありはrefunded", func(t *testing.T) {
		r := builder.NewReservationBuilder().AsDepositPaid().BuildDomain()
		err := r.Cancel(payment.Cancellation{
			At: now, By: payment.CancelledByClient, RefundCents: 450, RefundPercentage: 50,
		}, "re_1")
		require.NoError(t, err)

		assert.Equal(t, payment.PaymentStatusRefunded, r.PaymentStatus())
		assert.Equal(t, payment.ServiceStatusCancelled, r.ServiceStatus())
		assert.Equal(t, "re_1", r.RefundID())
		require.NotNil(t, r.Cancellation())
		assert.Equal(t, int64(450), r.Cancellation().RefundCents)
		assertSplitHolds(t, r)
	})

	t.Run("返金なしはcancelled", func(t *testing.T) {
		r := builder.NewReservationBuilder().BuildDomain()
		err := r.Cancel(payment.Cancellation{At: now, By: payment.CancelledByProvider}, "")
		require.NoError(t, err)

		assert.Equal(t, payment.PaymentStatusCancelled, r.PaymentStatus())
		assert.Equal(t, payment.ServiceStatusCancelled, r.ServiceStatus())
		assert.Empty(t, r.RefundID())
	})

	t.Run("返金IDなしの返金はNG", func(t *testing.T) {
		r := builder.NewReservationBuilder().AsCaptured().BuildDomain()
		err := r.Cancel(payment.Cancellation{At: now, By: payment.CancelledByClient, RefundCents: 100}, "")
		assert.ErrorIs(t, err, payment.ErrMissingExternalID)
	})

	t.Run("合計を超える返金はNG", func(t *testing.T) {
		r := builder.NewReservationBuilder().AsCaptured().BuildDomain()
		err := r.Cancel(payment.Cancellation{At: now, By: payment.CancelledByClient, RefundCents: 1001}, "re_1")
		assert.ErrorIs(t, err, payment.ErrInvalidCancellation)
	})

	t.Run("不明なキャンセル主体はNG", func(t *testing.T) {
		r := builder.NewReservationBuilder().AsCaptured().BuildDomain()
		err := r.Cancel(payment.Cancellation{At: now, By: "admin"}, "")
		assert.ErrorIs(t, err, payment.ErrInvalidCancellation)
	})

	t.Run("二重キャンセルはNG", func(t *testing.T) {
		r := builder.NewReservationBuilder().AsRefunded(1000, payment.CancelledByProvider).BuildDomain()
		err := r.Cancel(payment.Cancellation{At: now, By: payment.CancelledByClient}, "")
		assert.ErrorIs(t, err, payment.ErrInvalidTransition)
	})
}

func TestNewTransaction(t *testing.T) {
	now := time.Now().UTC()
	resID := uuid.New()

	tx, err := payment.NewTransaction(resID, payment.TransactionTypeDepositTransfer, 300, "tr_1", nil, now)
	require.NoError(t, err)
	assert.Equal(t, payment.TransactionStatusSucceeded, tx.Status())
	assert.Equal(t, int64(300), tx.AmountCents())

	_, err = payment.NewTransaction(resID, payment.TransactionTypeRefund, 0, "re_1", nil, now)
	assert.Error(t, err)

	_, err = payment.NewTransaction(resID, payment.TransactionTypeRefund, 100, "", nil, now)
	assert.ErrorIs(t, err, payment.ErrMissingExternalID)

	_, err = payment.NewTransaction(resID, "payout", 100, "x", nil, now)
	assert.ErrorIs(t, err, payment.ErrInvalidStatus)
}
