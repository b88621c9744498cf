package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Money represents a monetary amount with precise decimal arithmetic.
// It uses big.Rat internally so cart totals never accumulate float error.
// Money is immutable - all operations return new instances.
type Money struct {
	amount *big.Rat
}

// NewMoneyFromCents creates Money from an integer amount of minor units.
// For example: NewMoneyFromCents(1999) represents 19.99.
func NewMoneyFromCents(cents int64) *Money {
	return &Money{amount: big.NewRat(cents, 100)}
}

// NewMoneyFromDecimal parses a decimal string such as "19.99", "100" or "0.5".
// A leading currency symbol ("$") is tolerated because that is how prices are typed into forms.
func NewMoneyFromDecimal(decimal string) (*Money, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(decimal), "$"))
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	rat := new(big.Rat)
	if _, ok := rat.SetString(s); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, decimal)
	}
	return &Money{amount: rat}, nil
}

// Zero returns a Money instance representing zero.
func Zero() *Money {
	return &Money{amount: new(big.Rat)}
}

// Add returns a new Money that is the sum of m and other.
func (m *Money) Add(other *Money) *Money {
	return &Money{amount: new(big.Rat).Add(m.amount, other.amount)}
}

// Subtract returns a new Money that is the difference of m and other.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{amount: new(big.Rat).Sub(m.amount, other.amount)}
}

// MultiplyByInt multiplies the amount by an integer quantity.
func (m *Money) MultiplyByInt(n int64) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, new(big.Rat).SetInt64(n))}
}

// MultiplyByFraction multiplies Money by numerator/denominator (e.g. 19/100 for tax).
func (m *Money) MultiplyByFraction(numerator, denominator int64) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, big.NewRat(numerator, denominator))}
}

func (m *Money) IsZero() bool {
	return m.amount.Sign() == 0
}

func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

func (m *Money) IsPositive() bool {
	return m.amount.Sign() > 0
}

// Equals returns true if m equals other.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.amount.Cmp(other.amount) == 0
}

// CentAmount returns the amount in minor units, rounding half away from zero.
func (m *Money) CentAmount() int64 {
	scaled := new(big.Rat).Mul(m.amount, big.NewRat(100, 1))
	num := new(big.Int).Set(scaled.Num())
	den := scaled.Denom()

	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if new(big.Int).Mul(r, big.NewInt(2)).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}
	return q.Int64()
}

// String returns the amount with two decimal places, e.g. "19.99".
func (m *Money) String() string {
	return m.amount.FloatString(2)
}

// Format renders the amount the way the storefront shows it, e.g. "$19.99".
func (m *Money) Format() string {
	return "$" + m.String()
}
