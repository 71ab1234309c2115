package cancellation

import "math"

type RefundBreakdown struct {
	TotalCents       int64
	RefundPercentage float64
	GrossCents       int64
	FeeCents         int64
	RefundCents      int64
}

// ComputeRefund applies the decided percentage to the total and subtracts the
// fee, never going below zero.
func ComputeRefund(totalCents int64, refundPercentage float64, fee Fee) RefundBreakdown {
	gross := int64(math.Round(float64(totalCents) * refundPercentage / 100))
	feeCents := fee.AmountCents(totalCents)
	refund := gross - feeCents
	if refund < 0 {
		refund = 0
	}
	if refund > totalCents {
		refund = totalCents
	}
	return RefundBreakdown{
		TotalCents:       totalCents,
		RefundPercentage: refundPercentage,
		GrossCents:       gross,
		FeeCents:         feeCents,
		RefundCents:      refund,
	}
}

// FullRefund is what a provider-initiated cancellation returns to the client.
func FullRefund(totalCents int64) RefundBreakdown {
	return ComputeRefund(totalCents, 100, Fee{})
}
