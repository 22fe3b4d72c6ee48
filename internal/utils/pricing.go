package utils

import (
	"math"

	"avrental-backend/internal/domain"
)

const (
	// LongDurationMinDays is the rental length from which the long-duration discount applies
	LongDurationMinDays = 7
	// LongDurationPercent is the long-duration discount on the base total
	LongDurationPercent = 10
)

// RentalQuote provides the price breakdown of a booking
type RentalQuote struct {
	Days                 int
	DailyRateCents       int64
	BaseTotalCents       int64
	LongDurationDiscount int64
	DailyTotalCents      int64
}

// LongDurationDiscount returns 10% of baseTotalCents when days >= 7, else 0
func LongDurationDiscount(baseTotalCents int64, days int) int64 {
	if days < LongDurationMinDays {
		return 0
	}
	return domain.PercentOf(baseTotalCents, LongDurationPercent)
}

// QuoteRental prices a rental from scratch: rate * days minus the
// long-duration discount. Modifications call it again instead of adjusting
// the previous total. Callers bound days by domain.MaxRentalDays; a product
// beyond int64 saturates instead of wrapping.
func QuoteRental(dailyRateCents int64, days int) RentalQuote {
	var base int64
	if days > 0 && dailyRateCents > math.MaxInt64/int64(days) {
		base = math.MaxInt64
	} else {
		base = dailyRateCents * int64(days)
	}
	discount := LongDurationDiscount(base, days)
	return RentalQuote{
		Days:                 days,
		DailyRateCents:       dailyRateCents,
		BaseTotalCents:       base,
		LongDurationDiscount: discount,
		DailyTotalCents:      base - discount,
	}
}

// CouponDiscount calculates the coupon discount on the daily total.
// Fixed discounts are capped so the total never goes below zero.
func CouponDiscount(dailyTotalCents int64, coupon *domain.Coupon) int64 {
	if coupon == nil || dailyTotalCents <= 0 {
		return 0
	}

	var discount int64
	switch coupon.Kind {
	case domain.CouponKindPercentage:
		discount = domain.PercentOf(dailyTotalCents, coupon.Value)
	case domain.CouponKindFixed:
		discount = coupon.Value
	}

	if discount > dailyTotalCents {
		discount = dailyTotalCents
	}
	return discount
}

// ApplyCoupon returns the daily total after the coupon discount
func ApplyCoupon(dailyTotalCents int64, coupon *domain.Coupon) int64 {
	return dailyTotalCents - CouponDiscount(dailyTotalCents, coupon)
}
