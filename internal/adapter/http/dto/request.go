package dto

import (
	"github.com/shopspring/decimal"

	"corebank/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	AccountName    string          `json:"account_name"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(userID int64) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:         userID,
		Name:           r.AccountName,
		InitialDeposit: r.InitialDeposit,
	}
}

// TransferRequest represents a request to move money between accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	IdempotencyKey    string          `json:"idempotency_key"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(userID int64) usecase.ExecuteTransferInput {
	return usecase.ExecuteTransferInput{
		UserID:         userID,
		IdempotencyKey: r.IdempotencyKey,
		FromNumber:     r.FromAccountNumber,
		ToNumber:       r.ToAccountNumber,
		Amount:         r.Amount,
		Description:    r.Description,
	}
}
