package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates which side of a transfer an entry records.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// EntryStatus is the status of a ledger entry.
type EntryStatus string

const (
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusFailed    EntryStatus = "failed"
)

// Entry is a single immutable ledger entry. Every transfer writes exactly
// one debit and one credit entry with the same amount, each naming the
// other account as counterparty. An opening-deposit entry is the one
// exception: it has no TransferID and credits the account itself.
type Entry struct {
	ID                 int64
	AccountID          int64
	TransferID         string
	Direction          Direction
	Amount             decimal.Decimal
	CounterpartyNumber string
	Description        string
	Status             EntryStatus
	CreatedAt          time.Time
}

// Signed returns the entry amount signed by direction: negative for debits,
// positive for credits. Summing signed amounts for an account yields its
// balance.
func (e *Entry) Signed() decimal.Decimal {
	if e.Direction == DirectionDebit {
		return e.Amount.Neg()
	}

	return e.Amount
}
