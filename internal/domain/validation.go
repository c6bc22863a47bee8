package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	// MoneyScale is the fixed number of fractional digits for all amounts.
	MoneyScale = 2

	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	AccountNumberLength  = 12
	MaxTransferAmount    = "999999999999.99"
)

var accountNumberRegex = regexp.MustCompile(`^[0-9]{12}$`)

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: account name cannot be empty", ErrInvalidArgument)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: account name exceeds %d characters", ErrInvalidArgument, MaxAccountNameLength)
	}

	return nil
}

// ValidateAccountNumber validates the bank-style account number format.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: account number must be %d digits", ErrInvalidArgument, AccountNumberLength)
	}

	return nil
}

// ValidateAmount validates a transfer amount: strictly positive, at most two
// fractional digits, within storage range. Amounts are fixed-point decimals
// end to end; binary floating point never touches them.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return fmt.Errorf("%w: at most %d decimal places allowed", ErrInvalidAmount, MoneyScale)
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxTransferAmount)
	}

	return nil
}

// ValidateInitialDeposit validates an opening balance, which unlike a
// transfer amount may be zero.
func ValidateInitialDeposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: initial deposit cannot be negative", ErrInvalidArgument)
	}

	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return fmt.Errorf("%w: at most %d decimal places allowed", ErrInvalidArgument, MoneyScale)
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
