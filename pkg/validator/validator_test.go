package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type sample struct {
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"required,email"`
	Price    *decimal.Decimal `json:"price" validate:"required,nonneg_decimal,money"`
	Kind     string           `json:"kind" validate:"omitempty,oneof=physical remote"`
	Password string           `json:"password" validate:"omitempty,bcrypt_len"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()
	price := decimal.NewFromFloat(12.5)
	negative := decimal.NewFromInt(-1)
	fractional := decimal.RequireFromString("12.345")
	huge := decimal.NewFromInt(100000000)
	largest := decimal.RequireFromString("99999999.99")

	tests := []struct {
		name      string
		in        sample
		wantField string
		wantTag   string
	}{
		{"valid", sample{Name: "x", Email: "jo@example.com", Price: &price}, "", ""},
		{"missing name", sample{Email: "jo@example.com", Price: &price}, "name", "name is required"},
		{"bad email", sample{Name: "x", Email: "not-an-email", Price: &price}, "email", "email must be a valid email address"},
		{"missing price", sample{Name: "x", Email: "jo@example.com"}, "price", "price is required"},
		{"negative price", sample{Name: "x", Email: "jo@example.com", Price: &negative}, "price", "price must not be negative"},
		{"price with three decimals", sample{Name: "x", Email: "jo@example.com", Price: &fractional}, "price", "price must have at most 2 decimal places and be below 100000000"},
		{"price too large", sample{Name: "x", Email: "jo@example.com", Price: &huge}, "price", "price must have at most 2 decimal places and be below 100000000"},
		{"largest price", sample{Name: "x", Email: "jo@example.com", Price: &largest}, "", ""},
		{"password over 72 bytes", sample{Name: "x", Email: "jo@example.com", Price: &price, Password: strings.Repeat("é", 37)}, "password", "password must be at most 72 bytes"},
		{"bad kind", sample{Name: "x", Email: "jo@example.com", Price: &price, Kind: "video"}, "kind", "kind must be one of: physical remote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := v.FormatValidationErrors(err)
			if got := errs[tt.wantField]; got != tt.wantTag {
				t.Errorf("message for %s: got %q want %q", tt.wantField, got, tt.wantTag)
			}
		})
	}
}
