
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"user_id"`
	Name          string             `json:"name"`
	AccountNumber string             `json:"account_number"`
	Balance       pgtype.Numeric     `json:"balance"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type Entry struct {
	ID                 int64              `json:"id"`
	AccountID          int64              `json:"account_id"`
	TransferID         string             `json:"transfer_id"`
	Direction          string             `json:"direction"`
	Amount             pgtype.Numeric     `json:"amount"`
	CounterpartyNumber string             `json:"counterparty_number"`
	Description        string             `json:"description"`
	Status             string             `json:"status"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
}

type IdempotencyKey struct {
	Key         string             `json:"key"`
	Fingerprint string             `json:"fingerprint"`
	Status      string             `json:"status"`
	TransferID  string             `json:"transfer_id"`
	FailureCode string             `json:"failure_code"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type Transfer struct {
	ID            string             `json:"id"`
	FromAccountID int64              `json:"from_account_id"`
	ToAccountID   int64              `json:"to_account_id"`
	FromNumber    string             `json:"from_number"`
	ToNumber      string             `json:"to_number"`
	Amount        pgtype.Numeric     `json:"amount"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	CompletedAt   pgtype.Timestamptz `json:"completed_at"`
}
