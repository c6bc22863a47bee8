package domain_test

import (
	"errors"
	"strings"
	"testing"

	"corebank/internal/domain"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid name", "Main Checking", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAccountName(tt.input)
			if tt.expectError && !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAccountNumber(t *testing.T) {
	if err := domain.ValidateAccountNumber("123456789012"); err != nil {
		t.Errorf("unexpected error for valid number: %v", err)
	}

	for _, bad := range []string{"", "12345", "1234567890123", "12345678901a"} {
		if err := domain.ValidateAccountNumber(bad); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for %q, got %v", bad, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		expectError bool
	}{
		{"valid", "10.50", false},
		{"one cent", "0.01", false},
		{"whole number", "100", false},
		{"zero", "0", true},
		{"negative", "-1.00", true},
		{"sub-cent precision", "0.001", true},
		{"three decimals", "10.555", true},
		{"over maximum", "1000000000000.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(mustDecimal(t, tt.amount))
			if tt.expectError && !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateInitialDeposit(t *testing.T) {
	if err := domain.ValidateInitialDeposit(mustDecimal(t, "0.00")); err != nil {
		t.Errorf("zero opening balance should be allowed: %v", err)
	}

	if err := domain.ValidateInitialDeposit(mustDecimal(t, "100.00")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := domain.ValidateInitialDeposit(mustDecimal(t, "-0.01")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative deposit, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := domain.ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _ = domain.ValidatePagination(500, 0)
	if limit != 100 {
		t.Errorf("expected limit clamped to 100, got %d", limit)
	}
}
