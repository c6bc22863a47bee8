package usecase

import (
	"context"

	"corebank/internal/domain"
)

// EntryUseCase handles read queries over the ledger entries.
type EntryUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// ListTransactionsInput represents input for listing an account's entries.
type ListTransactionsInput struct {
	UserID        int64
	AccountNumber string
	Limit         int
	Offset        int
}

// ListTransactions lists an owned account's ledger entries, most recent
// first.
func (uc *EntryUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Entry, error) {
	if err := domain.ValidateAccountNumber(input.AccountNumber); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	if account.UserID != input.UserID {
		return nil, domain.ErrAccountNotFound
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByAccount(ctx, account.ID, limit, offset)
}

// GetEntriesByTransfer lists the entry pair recorded for a transfer.
func (uc *EntryUseCase) GetEntriesByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	return uc.entryRepo.GetByTransfer(ctx, transferID)
}
