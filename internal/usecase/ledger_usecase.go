package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a ledger consistency check.
type ConsistencyReport struct {
	TotalBalance decimal.Decimal
	TotalEntries decimal.Decimal
	Consistent   bool
}

// CheckConsistency verifies that the sum of account balances equals the sum
// of signed entry amounts. Transfers preserve this invariant because a debit
// and credit of equal amount always commit together.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalBalance, totalEntries, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		TotalBalance: totalBalance,
		TotalEntries: totalEntries,
		Consistent:   totalBalance.Equal(totalEntries),
	}, nil
}
