package domain

import (
	"fmt"
	"strings"
)

// PaymentMethod is the closed set of payment strategies
type PaymentMethod string

const (
	PaymentUpfront         PaymentMethod = "UPFRONT"
	PaymentCard            PaymentMethod = "CARD"
	PaymentInstantTransfer PaymentMethod = "INSTANT_TRANSFER"
)

// PaymentMethods lists the strategies in menu order
var PaymentMethods = []PaymentMethod{PaymentUpfront, PaymentCard, PaymentInstantTransfer}

// PaymentStrategy turns the daily total and the deposit into the payable amount
type PaymentStrategy interface {
	ProcessPayment(dailyTotalCents, depositCents int64) (int64, error)
}

// ProcessPayment applies the method's discount on the daily total only; the
// deposit is always charged in full.
func (m PaymentMethod) ProcessPayment(dailyTotalCents, depositCents int64) (int64, error) {
	switch m {
	case PaymentUpfront:
		return PercentOf(dailyTotalCents, 90) + depositCents, nil
	case PaymentCard:
		return dailyTotalCents + depositCents, nil
	case PaymentInstantTransfer:
		return PercentOf(dailyTotalCents, 95) + depositCents, nil
	}
	return 0, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, m)
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentUpfront:
		return "Upfront (10% off the daily total)"
	case PaymentCard:
		return "Card"
	case PaymentInstantTransfer:
		return "Instant transfer (5% off the daily total)"
	}
	return string(m)
}

// ParsePaymentMethod maps a menu choice ("1", "2", "3") or a method name
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", string(PaymentUpfront):
		return PaymentUpfront, nil
	case "2", string(PaymentCard):
		return PaymentCard, nil
	case "3", string(PaymentInstantTransfer), "PIX":
		return PaymentInstantTransfer, nil
	}
	return "", fmt.Errorf("%w: payment method must be 1, 2 or 3", ErrInvalidInput)
}

var _ PaymentStrategy = PaymentUpfront
