package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account that holds a balance. The balance is
// always the sum of the account's committed ledger entries; it is mutated
// only through entry pairs written by the transfer engine, never directly.
type Account struct {
	ID        int64
	UserID    int64
	Name      string
	Number    string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account can be debited by amount without
// overdrawing.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}

	return nil
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
