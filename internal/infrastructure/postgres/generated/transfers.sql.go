
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransfer = `-- name: CreateTransfer :one
INSERT INTO transfers (id, from_account_id, to_account_id, from_number, to_number, amount, description, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, from_account_id, to_account_id, from_number, to_number, amount, description, status, created_at, completed_at
`

type CreateTransferParams struct {
	ID            string             `json:"id"`
	FromAccountID int64              `json:"from_account_id"`
	ToAccountID   int64              `json:"to_account_id"`
	FromNumber    string             `json:"from_number"`
	ToNumber      string             `json:"to_number"`
	Amount        pgtype.Numeric     `json:"amount"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransfer(ctx context.Context, arg CreateTransferParams) (Transfer, error) {
	row := q.db.QueryRow(ctx, createTransfer,
		arg.ID,
		arg.FromAccountID,
		arg.ToAccountID,
		arg.FromNumber,
		arg.ToNumber,
		arg.Amount,
		arg.Description,
		arg.Status,
		arg.CreatedAt,
	)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.FromNumber,
		&i.ToNumber,
		&i.Amount,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
		&i.CompletedAt,
	)
	return i, err
}

const getTransferByID = `-- name: GetTransferByID :one
SELECT id, from_account_id, to_account_id, from_number, to_number, amount, description, status, created_at, completed_at FROM transfers WHERE id = $1
`

func (q *Queries) GetTransferByID(ctx context.Context, id string) (Transfer, error) {
	row := q.db.QueryRow(ctx, getTransferByID, id)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.FromNumber,
		&i.ToNumber,
		&i.Amount,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
		&i.CompletedAt,
	)
	return i, err
}

const markTransferCompleted = `-- name: MarkTransferCompleted :exec
UPDATE transfers
SET status = 'completed', completed_at = $2
WHERE id = $1
`

type MarkTransferCompletedParams struct {
	ID          string             `json:"id"`
	CompletedAt pgtype.Timestamptz `json:"completed_at"`
}

func (q *Queries) MarkTransferCompleted(ctx context.Context, arg MarkTransferCompletedParams) error {
	_, err := q.db.Exec(ctx, markTransferCompleted, arg.ID, arg.CompletedAt)
	return err
}
