
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createEntry = `-- name: CreateEntry :one
INSERT INTO entries (account_id, transfer_id, direction, amount, counterparty_number, description, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, account_id, transfer_id, direction, amount, counterparty_number, description, status, created_at
`

type CreateEntryParams struct {
	AccountID          int64              `json:"account_id"`
	TransferID         string             `json:"transfer_id"`
	Direction          string             `json:"direction"`
	Amount             pgtype.Numeric     `json:"amount"`
	CounterpartyNumber string             `json:"counterparty_number"`
	Description        string             `json:"description"`
	Status             string             `json:"status"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (Entry, error) {
	row := q.db.QueryRow(ctx, createEntry,
		arg.AccountID,
		arg.TransferID,
		arg.Direction,
		arg.Amount,
		arg.CounterpartyNumber,
		arg.Description,
		arg.Status,
		arg.CreatedAt,
	)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.TransferID,
		&i.Direction,
		&i.Amount,
		&i.CounterpartyNumber,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const getEntriesByTransfer = `-- name: GetEntriesByTransfer :many
SELECT id, account_id, transfer_id, direction, amount, counterparty_number, description, status, created_at FROM entries WHERE transfer_id = $1 ORDER BY id
`

func (q *Queries) GetEntriesByTransfer(ctx context.Context, transferID string) ([]Entry, error) {
	rows, err := q.db.Query(ctx, getEntriesByTransfer, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.AccountID,
			&i.TransferID,
			&i.Direction,
			&i.Amount,
			&i.CounterpartyNumber,
			&i.Description,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listEntriesByAccount = `-- name: ListEntriesByAccount :many
SELECT id, account_id, transfer_id, direction, amount, counterparty_number, description, status, created_at FROM entries
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListEntriesByAccountParams struct {
	AccountID int64 `json:"account_id"`
	Limit     int32 `json:"limit"`
	Offset    int32 `json:"offset"`
}

func (q *Queries) ListEntriesByAccount(ctx context.Context, arg ListEntriesByAccountParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listEntriesByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.AccountID,
			&i.TransferID,
			&i.Direction,
			&i.Amount,
			&i.CounterpartyNumber,
			&i.Description,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
