package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"corebank/internal/domain"
	"corebank/internal/usecase"
)

// AccountResponse represents an account in API responses. Balances are
// serialized as decimal strings, never floats.
type AccountResponse struct {
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountNumber: a.Number,
		AccountName:   a.Name,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransferResponse represents the outcome of a transfer request.
type TransferResponse struct {
	TransferID string `json:"transfer_id"`
	Status     string `json:"status"`
	Replayed   bool   `json:"replayed"`
}

// TransferFromResult converts a use case result to a response.
func TransferFromResult(result *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		TransferID: result.TransferID,
		Status:     string(result.Status),
		Replayed:   result.Replayed,
	}
}

// TransferDetailResponse represents a stored transfer in API responses.
type TransferDetailResponse struct {
	TransferID        string          `json:"transfer_id"`
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferDetailResponse {
	return &TransferDetailResponse{
		TransferID:        t.ID,
		FromAccountNumber: t.FromNumber,
		ToAccountNumber:   t.ToNumber,
		Amount:            t.Amount,
		Description:       t.Description,
		Status:            string(t.Status),
		CreatedAt:         t.CreatedAt,
		CompletedAt:       t.CompletedAt,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	TransferID                string          `json:"transfer_id,omitempty"`
	Direction                 string          `json:"direction"`
	CounterpartyAccountNumber string          `json:"counterparty_account_number"`
	Amount                    decimal.Decimal `json:"amount"`
	Description               string          `json:"description"`
	Status                    string          `json:"status"`
	OccurredAt                time.Time       `json:"occurred_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		TransferID:                e.TransferID,
		Direction:                 string(e.Direction),
		CounterpartyAccountNumber: e.CounterpartyNumber,
		Amount:                    e.Amount,
		Description:               e.Description,
		Status:                    string(e.Status),
		OccurredAt:                e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
	TotalEntries decimal.Decimal `json:"total_entries"`
	Consistent   bool            `json:"consistent"`
}

// ConsistencyFromReport converts a use case report to a response.
func ConsistencyFromReport(report *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalBalance: report.TotalBalance,
		TotalEntries: report.TotalEntries,
		Consistent:   report.Consistent,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
