package payment

import (
	"errors"
	"math"
)

var (
	ErrNonPositiveTotal         = errors.New("total amount must be positive")
	ErrInvalidDepositPercentage = errors.New("deposit percentage must be between 0 and 100")
	ErrSplitMismatch            = errors.New("deposit and balance do not add up to total")
)

// Split is the two-tranche division of a reservation total.
// deposit = floor(total * pct / 100) and balance = total - deposit.
type Split struct {
	totalCents        int64
	depositCents      int64
	balanceCents      int64
	depositPercentage float64
}

func NewSplit(totalCents int64, depositPercentage float64) (Split, error) {
	if totalCents <= 0 {
		return Split{}, ErrNonPositiveTotal
	}
	if math.IsNaN(depositPercentage) || depositPercentage < 0 || depositPercentage > 100 {
		return Split{}, ErrInvalidDepositPercentage
	}

	// Percentages are kept to basis-point precision so the floor is exact integer math.
	basisPoints := int64(math.Round(depositPercentage * 100))
	deposit := totalCents * basisPoints / 10000

	return Split{
		totalCents:        totalCents,
		depositCents:      deposit,
		balanceCents:      totalCents - deposit,
		depositPercentage: depositPercentage,
	}, nil
}

// ReconstructSplit restores a persisted split and rejects rows that break the sum.
func ReconstructSplit(totalCents, depositCents, balanceCents int64, depositPercentage float64) (Split, error) {
	if depositCents < 0 || balanceCents < 0 || depositCents+balanceCents != totalCents {
		return Split{}, ErrSplitMismatch
	}
	return Split{
		totalCents:        totalCents,
		depositCents:      depositCents,
		balanceCents:      balanceCents,
		depositPercentage: depositPercentage,
	}, nil
}

func (s Split) TotalCents() int64          { return s.totalCents }
func (s Split) DepositCents() int64        { return s.depositCents }
func (s Split) BalanceCents() int64        { return s.balanceCents }
func (s Split) DepositPercentage() float64 { return s.depositPercentage }
