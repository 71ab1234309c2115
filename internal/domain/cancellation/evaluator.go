package cancellation

import (
	"fmt"
	"sort"
	"time"
)

// MinJustificationLength is the minimum trimmed rune count a client must give
// when the decision requires a justification.
const MinJustificationLength = 20

// Rules applied when a provider has no policy at all.
var implicitRules = []RefundRule{{HoursBefore: 24, RefundPercentage: 100}}

type Decision struct {
	CanCancel             bool
	RefundPercentage      float64
	Reason                string
	RequiresJustification bool
	HoursRemaining        float64
	MatchedRule           *RefundRule
}

// Evaluate decides whether a client may cancel and at what refund percentage.
// A nil policy means the implicit flexible terms. It has no side effects.
func Evaluate(policy *Policy, serviceDate, now time.Time) Decision {
	hours := serviceDate.Sub(now).Hours()

	if policy != nil && policy.Type() == PolicyTypeStrict {
		return Decision{
			CanCancel:             true,
			RefundPercentage:      0,
			Reason:                "strict policy: no refund, justification required",
			RequiresJustification: true,
			HoursRemaining:        hours,
		}
	}

	rules := implicitRules
	label := "default"
	if policy != nil {
		rules = policy.Rules()
		label = policy.Type().String()
	}

	rule, ok := matchRule(rules, hours)
	if !ok {
		return Decision{
			CanCancel:      false,
			Reason:         fmt.Sprintf("%s policy does not allow cancellation %.1f hours before service", label, hours),
			HoursRemaining: hours,
		}
	}

	return Decision{
		CanCancel:        true,
		RefundPercentage: rule.RefundPercentage,
		Reason: fmt.Sprintf("%s policy: %.0f%% refund at %.1f hours before service (tier %vh)",
			label, rule.RefundPercentage, hours, rule.HoursBefore),
		HoursRemaining: hours,
		MatchedRule:    &rule,
	}
}

// matchRule picks the first rule, by descending threshold, whose threshold the
// remaining time reaches. A lowest tier at or below zero also covers a service
// time that has already passed.
func matchRule(rules []RefundRule, hours float64) (RefundRule, bool) {
	if len(rules) == 0 {
		return RefundRule{}, false
	}
	sorted := append([]RefundRule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HoursBefore > sorted[j].HoursBefore
	})

	for _, r := range sorted {
		if r.HoursBefore <= hours {
			return r, true
		}
	}

	floor := sorted[len(sorted)-1]
	if floor.HoursBefore <= 0 {
		return floor, true
	}
	return RefundRule{}, false
}
