// Package metrics computes dividend yield, dividend growth rate and payout
// ratio from a payment history. The functions are pure and hold no state.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrEmptyHistory indicates a history without any payment.
	ErrEmptyHistory = errors.New("empty dividend history")
	// ErrInsufficientHistory indicates too few payments to compute a change.
	ErrInsufficientHistory = errors.New("insufficient dividend history")
	// ErrDivisionByZero indicates a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidFrequency indicates a non-positive payment frequency.
	ErrInvalidFrequency = errors.New("invalid payment frequency")
)

// Payment is one historical dividend payment.
type Payment struct {
	PayDate time.Time
	Amount  float64
}

// History is a sequence of payments ordered by pay date.
type History []Payment

// SortHistory returns a copy of payments ordered by pay date. Payments on
// the same date keep their relative order.
func SortHistory(payments []Payment) History {
	h := make(History, len(payments))
	copy(h, payments)
	sort.SliceStable(h, func(i, j int) bool { return h[i].PayDate.Before(h[j].PayDate) })
	return h
}

// Latest returns the most recent payment.
func (h History) Latest() (Payment, error) {
	if len(h) == 0 {
		return Payment{}, ErrEmptyHistory
	}
	return h[len(h)-1], nil
}

// AnnualizedYield returns the dividend yield in percent. With at least
// frequency payments the trailing frequency payments are summed, otherwise
// the latest payment is multiplied by frequency.
func AnnualizedYield(h History, price float64, frequency int) (float64, error) {
	if len(h) == 0 {
		return 0, ErrEmptyHistory
	}
	if frequency <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFrequency, frequency)
	}
	if price == 0 {
		return 0, fmt.Errorf("%w: share price is zero", ErrDivisionByZero)
	}

	var annual float64
	if len(h) < frequency {
		annual = h[len(h)-1].Amount * float64(frequency)
	} else {
		for _, p := range h[len(h)-frequency:] {
			annual += p.Amount
		}
	}
	return annual / price * 100, nil
}

// AverageGrowthRate returns the mean period-over-period change in percent.
func AverageGrowthRate(h History) (float64, error) {
	if len(h) < 2 {
		return 0, fmt.Errorf("%w: %d payment(s)", ErrInsufficientHistory, len(h))
	}

	var sum float64
	for i := 1; i < len(h); i++ {
		prev := h[i-1].Amount
		if prev == 0 {
			return 0, fmt.Errorf("%w: zero payment on %s", ErrDivisionByZero, h[i-1].PayDate.Format(time.DateOnly))
		}
		sum += (h[i].Amount/prev - 1) * 100
	}
	return sum / float64(len(h)-1), nil
}

// PayoutRatio returns dividend * shares / netCashFlow in percent.
func PayoutRatio(dividend, shares, netCashFlow float64) (float64, error) {
	if netCashFlow == 0 {
		return 0, fmt.Errorf("%w: net cash flow is zero", ErrDivisionByZero)
	}
	return dividend * shares / netCashFlow * 100, nil
}
