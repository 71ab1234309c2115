//go:build unit

package cancellation_test

import (
	"testing"
	"time"

	"shootbook/internal/domain/cancellation"
	"shootbook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoursAhead(now time.Time, h float64) time.Time {
	return now.Add(time.Duration(h * float64(time.Hour)))
}

func TestEvaluate_Flexible(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	policy := builder.NewPolicyBuilder().BuildDomain()

	tests := []struct {
		name    string
		hours   float64
		wantPct float64
	}{
		{name: "ちょうど24時間前は100%", hours: 24, wantPct: 100},
		{name: "48時間前は100%", hours: 48, wantPct: 100},
		{name: "23.9時間前は50%", hours: 23.9, wantPct: 50},
		{name: "ちょうど0時間は50%", hours: 0, wantPct: 50},
		{name: "撮影5時間後も最下位ティアで50%", hours: -5, wantPct: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cancellation.Evaluate(policy, hoursAhead(now, tt.hours), now)
			require.True(t, d.CanCancel)
			assert.Equal(t, tt.wantPct, d.RefundPercentage)
			assert.False(t, d.RequiresJustification)
			assert.InDelta(t, tt.hours, d.HoursRemaining, 1e-9)
			require.NotNil(t, d.MatchedRule)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestEvaluate_Moderate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	policy := builder.NewPolicyBuilder().AsModerate().BuildDomain()

	tests := []struct {
		name    string
		at      time.Time
		wantPct float64
	}{
		{name: "8日前は100%", at: now.AddDate(0, 0, 8), wantPct: 100},
		{name: "ちょうど7日前は100%", at: now.Add(168 * time.Hour), wantPct: 100},
		{name: "3日前は50%", at: now.AddDate(0, 0, 3), wantPct: 50},
		{name: "12時間前は0%", at: now.Add(12 * time.Hour), wantPct: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cancellation.Evaluate(policy, tt.at, now)
			require.True(t, d.CanCancel)
			assert.Equal(t, tt.wantPct, d.RefundPercentage)
		})
	}
}

func TestEvaluate_Strict(t *testing.T) {
	now := time.Now().UTC()
	policy := builder.NewPolicyBuilder().AsStrict().BuildDomain()

	for _, h := range []float64{1000, 24, 0.5, -48} {
		d := cancellation.Evaluate(policy, hoursAhead(now, h), now)
		assert.True(t, d.CanCancel)
		assert.Zero(t, d.RefundPercentage)
		assert.True(t, d.RequiresJustification)
		assert.Nil(t, d.MatchedRule)
	}
}

func TestEvaluate_NoPolicy(t *testing.T) {
	now := time.Now().UTC()

	t.Run("24時間以上前は100%", func(t *testing.T) {
		d := cancellation.Evaluate(nil, now.Add(30*time.Hour), now)
		require.True(t, d.CanCancel)
		assert.Equal(t, float64(100), d.RefundPercentage)
	})

	t.Run("24時間未満は拒否", func(t *testing.T) {
		d := cancellation.Evaluate(nil, now.Add(23*time.Hour), now)
		assert.False(t, d.CanCancel)
		assert.Zero(t, d.RefundPercentage)
		assert.Contains(t, d.Reason, "does not allow")
	})
}

func TestEvaluate_CustomWithoutFloorTier(t *testing.T) {
	now := time.Now().UTC()
	policy := builder.NewPolicyBuilder().
		WithRules(
			cancellation.RefundRule{HoursBefore: 48, RefundPercentage: 80},
			cancellation.RefundRule{HoursBefore: 72, RefundPercentage: 100},
		).
		BuildDomain()

	t.Run("未ソートでも降順で評価", func(t *testing.T) {
		d := cancellation.Evaluate(policy, now.Add(80*time.Hour), now)
		require.True(t, d.CanCancel)
		assert.Equal(t, float64(100), d.RefundPercentage)

		d = cancellation.Evaluate(policy, now.Add(50*time.Hour), now)
		require.True(t, d.CanCancel)
		assert.Equal(t, float64(80), d.RefundPercentage)
	})

	t.Run("どのティアにも届かない場合は拒否", func(t *testing.T) {
		d := cancellation.Evaluate(policy, now.Add(10*time.Hour), now)
		assert.False(t, d.CanCancel)
	})

	t.Run("ルールの順序を変更しない", func(t *testing.T) {
		_ = cancellation.Evaluate(policy, now.Add(50*time.Hour), now)
		assert.Equal(t, float64(48), policy.Rules()[0].HoursBefore)
	})
}

func TestComputeRefund(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		pct        float64
		fee        cancellation.Fee
		wantFee    int64
		wantRefund int64
	}{
		{name: "手数料なし", total: 1000, pct: 50, wantRefund: 500},
		{name: "手数料割合あり", total: 1000, pct: 50, fee: cancellation.Fee{Percentage: 5}, wantFee: 50, wantRefund: 450},
		{name: "固定手数料あり", total: 1000, pct: 100, fee: cancellation.Fee{FixedCents: 120}, wantFee: 120, wantRefund: 880},
		{name: "手数料が返金を上回る場合は0", total: 1000, pct: 10, fee: cancellation.Fee{Percentage: 20}, wantFee: 200, wantRefund: 0},
		{name: "四捨五入", total: 999, pct: 50, wantRefund: 500},
		{name: "0%", total: 1000, pct: 0, wantRefund: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cancellation.ComputeRefund(tt.total, tt.pct, tt.fee)
			assert.Equal(t, tt.wantFee, got.FeeCents)
			assert.Equal(t, tt.wantRefund, got.RefundCents)
		})
	}

	t.Run("事業者キャンセルは全額", func(t *testing.T) {
		got := cancellation.FullRefund(1234)
		assert.Equal(t, int64(1234), got.RefundCents)
		assert.Zero(t, got.FeeCents)
	})
}
