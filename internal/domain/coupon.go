package domain

import (
	"fmt"
	"strings"
)

type CouponKind string

const (
	CouponKindPercentage CouponKind = "percentage"
	CouponKindFixed      CouponKind = "fixed"
)

// Coupon is a promotional code. Value is a whole percentage (1-100) for
// percentage coupons and an amount in cents for fixed coupons.
type Coupon struct {
	Code  string     `json:"code"`
	Kind  CouponKind `json:"kind"`
	Value int64      `json:"value"`
}

func NewCoupon(code string, kind CouponKind, value int64) (*Coupon, error) {
	code = NormalizeCouponCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: coupon code is required", ErrInvalidInput)
	}
	if kind != CouponKindPercentage && kind != CouponKindFixed {
		return nil, fmt.Errorf("%w: invalid coupon kind %q", ErrInvalidInput, kind)
	}
	if value <= 0 {
		return nil, fmt.Errorf("%w: coupon value must be positive", ErrInvalidInput)
	}
	if kind == CouponKindPercentage && value > 100 {
		return nil, fmt.Errorf("%w: percentage coupon cannot exceed 100", ErrInvalidInput)
	}
	return &Coupon{Code: code, Kind: kind, Value: value}, nil
}

// ParseCouponKind accepts the english names and the short forms used on the admin menu
func ParseCouponKind(s string) (CouponKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "perc", "%":
		return CouponKindPercentage, nil
	case "fixed", "fixo":
		return CouponKindFixed, nil
	}
	return "", fmt.Errorf("%w: coupon kind must be percentage or fixed", ErrInvalidInput)
}

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Coupon) String() string {
	if c.Kind == CouponKindPercentage {
		return fmt.Sprintf("%s: %d%% off", c.Code, c.Value)
	}
	return fmt.Sprintf("%s: %s off", c.Code, FormatBRL(c.Value))
}
