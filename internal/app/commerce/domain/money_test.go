package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"19.99", 1999},
		{"$25", 2500},
		{" 0.5 ", 50},
		{"10.005", 1001}, // half away from zero
		{"-1.005", -101},
	}
	for _, tc := range cases {
		m, err := NewMoneyFromDecimal(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.cents, m.CentAmount(), tc.in)
	}

	for _, bad := range []string{"", "$", "abc", "1,50"} {
		_, err := NewMoneyFromDecimal(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyFromCents(1999)
	b := NewMoneyFromCents(1)

	assert.Equal(t, "20.00", a.Add(b).String())
	assert.Equal(t, "19.98", a.Subtract(b).String())
	assert.Equal(t, "$59.97", a.MultiplyByInt(3).Format())
	assert.Equal(t, int64(380), a.MultiplyByFraction(19, 100).CentAmount()) // 3.7981
	assert.True(t, Zero().IsZero())
	assert.True(t, b.Subtract(a).IsNegative())
	assert.True(t, a.IsPositive())
	assert.True(t, a.Equals(NewMoneyFromCents(1999)))
	assert.False(t, a.Equals(nil))

	// operands are never modified
	assert.Equal(t, "19.99", a.String())
}
