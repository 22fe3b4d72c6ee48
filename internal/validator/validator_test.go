package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New()
	require.NotNil(t, v, "New() should return a non-nil validator")
}

func TestCustomTags(t *testing.T) {
	v := New()

	type registration struct {
		Name  string `validate:"notblank,personname"`
		CPF   string `validate:"cpf"`
		Plate string `validate:"plate"`
	}

	valid := registration{Name: "Arthur Alves", CPF: "12345678900", Plate: "ABC1234"}

	testCases := []struct {
		name        string
		mutate      func(r *registration)
		expectError bool
	}{
		{"valid", func(r *registration) {}, false},
		{"accented_name", func(r *registration) { r.Name = "João Conceição" }, false},
		{"blank_name", func(r *registration) { r.Name = "   " }, true},
		{"name_with_digits", func(r *registration) { r.Name = "R2D2" }, true},
		{"short_cpf", func(r *registration) { r.CPF = "1234567890" }, true},
		{"cpf_with_letters", func(r *registration) { r.CPF = "1234567890a" }, true},
		{"formatted_cpf", func(r *registration) { r.CPF = "123.456.789-00" }, true},
		{"long_plate", func(r *registration) { r.Plate = "ABC12345" }, true},
		{"plate_with_dash", func(r *registration) { r.Plate = "ABC-123" }, true},
		{"lowercase_plate", func(r *registration) { r.Plate = "abc1d23" }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			err := v.Struct(r)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
