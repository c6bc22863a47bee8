package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"corebank/internal/domain"
)

func TestTransfer_Validate(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		to        string
		amount    string
		errorType error
	}{
		{"valid transfer", "111111111111", "222222222222", "10.00", nil},
		{"same account", "111111111111", "111111111111", "10.00", domain.ErrSameAccount},
		{"zero amount", "111111111111", "222222222222", "0.00", domain.ErrInvalidAmount},
		{"negative amount", "111111111111", "222222222222", "-5.00", domain.ErrInvalidAmount},
		{"sub-cent amount", "111111111111", "222222222222", "0.001", domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := &domain.Transfer{
				FromNumber: tt.from,
				ToNumber:   tt.to,
				Amount:     mustDecimal(t, tt.amount),
			}

			err := transfer.Validate()
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestEntry_Signed(t *testing.T) {
	amount := mustDecimal(t, "25.50")

	debit := &domain.Entry{Direction: domain.DirectionDebit, Amount: amount}
	if !debit.Signed().Equal(amount.Neg()) {
		t.Errorf("expected -25.50 for debit, got %s", debit.Signed())
	}

	credit := &domain.Entry{Direction: domain.DirectionCredit, Amount: amount}
	if !credit.Signed().Equal(amount) {
		t.Errorf("expected 25.50 for credit, got %s", credit.Signed())
	}

	if !debit.Signed().Add(credit.Signed()).Equal(decimal.Zero) {
		t.Error("debit and credit of one transfer should sum to zero")
	}
}
