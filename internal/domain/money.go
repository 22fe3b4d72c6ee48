package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PercentOf returns pct percent of amount in cents, rounded half up
func PercentOf(amountCents, pct int64) int64 {
	if amountCents <= 0 || pct <= 0 {
		return 0
	}
	// split so amountCents*pct cannot overflow
	return (amountCents/100)*pct + ((amountCents%100)*pct+50)/100
}

// FormatBRL renders cents as "R$ 1.234,56"
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := cents / 100
	rest := cents % 100

	digits := fmt.Sprintf("%d", reais)
	grouped := ""
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped += "."
		}
		grouped += string(d)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped, rest)
}

// ParseBRL reads an amount typed as "95", "95,50", "95.50" or "R$ 1.234,56"
// and returns it in cents.
func ParseBRL(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if !allDigits(whole) || (hasFrac && !allDigits(frac)) {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: amount %q has more than two decimals", ErrInvalidInput, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	reais, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || reais < 0 {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}
	return reais*100 + cents, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
