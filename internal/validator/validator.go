package validator

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New creates a new validator instance with custom validations registered.
//
//	notblank  rejects whitespace-only strings
//	cpf       exactly 11 digits
//	plate     exactly 7 letters or digits
//	personname letters and spaces, at least one letter
func New() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // Not a string, let other validators handle it
		}
		return strings.TrimSpace(str) != ""
	})

	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		return IsCPF(str)
	})

	_ = v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		return IsPlate(str)
	})

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		return IsPersonName(str)
	})

	return v
}

// IsCPF reports whether s has exactly 11 digits (no check digit verification)
func IsCPF(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func IsPlate(s string) bool {
	if len(s) != 7 {
		return false
	}
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func IsPersonName(s string) bool {
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == ' ':
		default:
			return false
		}
	}
	return letters > 0
}
