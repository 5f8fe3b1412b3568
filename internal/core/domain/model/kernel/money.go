package kernel

import (
	"fmt"
	"math"

	"bakery/internal/pkg/errs"
)

// Money is an exact amount in minor currency units (kopecks, cents).
// Arithmetic is integer only and every operation checks for overflow,
// so sums of line totals are always exact.
type Money struct {
	minor int64
}

// NewMoney creates a non-negative amount from minor units.
func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, int64(math.MaxInt64))
	}
	return Money{minor: minor}, nil
}

// NewPositiveMoney creates an amount that must be strictly greater than zero, as prices are.
func NewPositiveMoney(minor int64) (Money, error) {
	if minor <= 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("price", minor, 1, int64(math.MaxInt64))
	}
	return Money{minor: minor}, nil
}

// Zero returns an empty amount, the identity for Add.
func Zero() Money {
	return Money{}
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) IsPositive() bool {
	return m.minor > 0
}

func (m Money) IsEqual(other Money) bool {
	return m.minor == other.minor
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if other.minor > math.MaxInt64-m.minor {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"amount", m.minor, 0, int64(math.MaxInt64), fmt.Errorf("adding %d overflows", other.minor),
		)
	}
	return Money{minor: m.minor + other.minor}, nil
}

// Multiply returns m * quantity. Quantity must be positive.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	q := int64(quantity)
	if m.minor != 0 && q > math.MaxInt64/m.minor {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"amount", m.minor, 0, int64(math.MaxInt64), fmt.Errorf("multiplying by %d overflows", quantity),
		)
	}
	return Money{minor: m.minor * q}, nil
}

// String renders the amount with two decimal places, e.g. 280 -> "2.80".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/100, m.minor%100)
}
