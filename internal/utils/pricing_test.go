package utils

import (
	"math"
	"testing"

	"avrental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestLongDurationDiscount(t *testing.T) {
	t.Run("No discount below seven days", func(t *testing.T) {
		for days := 1; days <= 6; days++ {
			assert.Equal(t, int64(0), LongDurationDiscount(10000*int64(days), days))
		}
	})

	t.Run("Ten percent from seven days", func(t *testing.T) {
		tests := []struct {
			rate     int64
			days     int
			expected int64
		}{
			{10000, 7, 7000},
			{10000, 10, 10000},
			{5000, 8, 4000},
			{9550, 30, 28650},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, LongDurationDiscount(tt.rate*int64(tt.days), tt.days))
		}
	})
}

func TestQuoteRental(t *testing.T) {
	t.Run("Ten days at R$100", func(t *testing.T) {
		q := QuoteRental(10000, 10)
		assert.Equal(t, int64(100000), q.BaseTotalCents)
		assert.Equal(t, int64(10000), q.LongDurationDiscount)
		assert.Equal(t, int64(90000), q.DailyTotalCents)
	})

	t.Run("Three days at R$50", func(t *testing.T) {
		q := QuoteRental(5000, 3)
		assert.Equal(t, int64(0), q.LongDurationDiscount)
		assert.Equal(t, int64(15000), q.DailyTotalCents)
	})

	t.Run("Eight days at R$50", func(t *testing.T) {
		q := QuoteRental(5000, 8)
		assert.Equal(t, int64(36000), q.DailyTotalCents)
	})

	t.Run("Large inputs keep the discount positive", func(t *testing.T) {
		tests := []struct {
			rate int64
			days int
		}{
			{100_000_000, domain.MaxRentalDays},
			{10000, 100_000_000_000_000},
			{math.MaxInt64 / 2, 7},
		}

		for _, tt := range tests {
			q := QuoteRental(tt.rate, tt.days)
			assert.Positive(t, q.LongDurationDiscount)
			assert.Positive(t, q.DailyTotalCents)
			assert.Less(t, q.DailyTotalCents, q.BaseTotalCents)
		}
	})
}

func TestCouponDiscount(t *testing.T) {
	t.Run("Nil coupon", func(t *testing.T) {
		assert.Equal(t, int64(0), CouponDiscount(15000, nil))
	})

	t.Run("Percentage", func(t *testing.T) {
		c := &domain.Coupon{Code: "P20", Kind: domain.CouponKindPercentage, Value: 20}
		assert.Equal(t, int64(3000), CouponDiscount(15000, c))
		assert.Equal(t, int64(12000), ApplyCoupon(15000, c))
	})

	t.Run("Fixed", func(t *testing.T) {
		c := &domain.Coupon{Code: "FERIAS50", Kind: domain.CouponKindFixed, Value: 5000}
		assert.Equal(t, int64(5000), CouponDiscount(15000, c))
		assert.Equal(t, int64(10000), ApplyCoupon(15000, c))
	})

	t.Run("Fixed is capped at the total", func(t *testing.T) {
		c := &domain.Coupon{Code: "BIG", Kind: domain.CouponKindFixed, Value: 50000}
		assert.Equal(t, int64(15000), CouponDiscount(15000, c))
		assert.Equal(t, int64(0), ApplyCoupon(15000, c))
	})
}
