package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_ProcessPayment(t *testing.T) {
	tests := []struct {
		method   PaymentMethod
		daily    int64
		deposit  int64
		expected int64
	}{
		{PaymentUpfront, 90000, 25000, 106000},
		{PaymentCard, 12000, 25000, 37000},
		{PaymentInstantTransfer, 10000, 25000, 34500},
		{PaymentUpfront, 0, 25000, 25000},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := tt.method.ProcessPayment(tt.daily, tt.deposit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("Unknown method", func(t *testing.T) {
		_, err := PaymentMethod("CHEQUE").ProcessPayment(100, 100)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("1")
	require.NoError(t, err)
	assert.Equal(t, PaymentUpfront, m)

	m, err = ParsePaymentMethod(" card ")
	require.NoError(t, err)
	assert.Equal(t, PaymentCard, m)

	m, err = ParsePaymentMethod("3")
	require.NoError(t, err)
	assert.Equal(t, PaymentInstantTransfer, m)

	_, err = ParsePaymentMethod("4")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.060,00", FormatBRL(106000))
	assert.Equal(t, "R$ 95,50", FormatBRL(9550))
	assert.Equal(t, "R$ 0,05", FormatBRL(5))
	assert.Equal(t, "R$ 1.234.567,89", FormatBRL(123456789))
	assert.Equal(t, "-R$ 10,00", FormatBRL(-1000))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, int64(9000), PercentOf(10000, 90))
	assert.Equal(t, int64(5), PercentOf(45, 10), "half up")
	assert.Equal(t, int64(0), PercentOf(-100, 10))

	big := PercentOf(math.MaxInt64, 90)
	assert.Positive(t, big)
	assert.Less(t, big, int64(math.MaxInt64))
}

func TestParseBRL(t *testing.T) {
	valid := map[string]int64{
		"95":          9500,
		"95,50":       9550,
		"95.5":        9550,
		"R$ 1.234,56": 123456,
		" 0,05 ":      5,
	}
	for in, want := range valid {
		got, err := ParseBRL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "-10", "1,234", "5.+1", "5.-1", "+5", "5.", ".50", "1 000"} {
		_, err := ParseBRL(in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
}

func TestNewCoupon(t *testing.T) {
	c, err := NewCoupon(" promo20 ", CouponKindPercentage, 20)
	require.NoError(t, err)
	assert.Equal(t, "PROMO20", c.Code)

	_, err = NewCoupon("X", CouponKindPercentage, 120)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewCoupon("", CouponKindFixed, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewCoupon("X", CouponKind("bogus"), 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	kind, err := ParseCouponKind("perc")
	require.NoError(t, err)
	assert.Equal(t, CouponKindPercentage, kind)
}
