package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the lifecycle status of a transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)

// Transfer represents a money movement between two accounts, recorded as a
// debit/credit entry pair sharing the transfer's ID.
type Transfer struct {
	ID            string
	FromAccountID int64
	ToAccountID   int64
	FromNumber    string
	ToNumber      string
	Amount        decimal.Decimal
	Description   string
	Status        TransferStatus
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// Validate validates the transfer request fields that need no storage access.
func (t *Transfer) Validate() error {
	if t.FromNumber == t.ToNumber {
		return ErrSameAccount
	}

	return ValidateAmount(t.Amount)
}
