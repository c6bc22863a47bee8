
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const deletePendingIdempotencyKey = `-- name: DeletePendingIdempotencyKey :exec
DELETE FROM idempotency_keys WHERE key = $1 AND status = 'pending'
`

func (q *Queries) DeletePendingIdempotencyKey(ctx context.Context, key string) error {
	_, err := q.db.Exec(ctx, deletePendingIdempotencyKey, key)
	return err
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, fingerprint, status, transfer_id, failure_code, created_at FROM idempotency_keys WHERE key = $1
`

func (q *Queries) GetIdempotencyKey(ctx context.Context, key string) (IdempotencyKey, error) {
	row := q.db.QueryRow(ctx, getIdempotencyKey, key)
	var i IdempotencyKey
	err := row.Scan(
		&i.Key,
		&i.Fingerprint,
		&i.Status,
		&i.TransferID,
		&i.FailureCode,
		&i.CreatedAt,
	)
	return i, err
}

const insertIdempotencyKey = `-- name: InsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, fingerprint, status, created_at)
VALUES ($1, $2, 'pending', $3)
ON CONFLICT (key) DO NOTHING
`

type InsertIdempotencyKeyParams struct {
	Key         string             `json:"key"`
	Fingerprint string             `json:"fingerprint"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertIdempotencyKey(ctx context.Context, arg InsertIdempotencyKeyParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertIdempotencyKey, arg.Key, arg.Fingerprint, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateIdempotencyOutcome = `-- name: UpdateIdempotencyOutcome :execrows
UPDATE idempotency_keys
SET status = $2, transfer_id = $3, failure_code = $4
WHERE key = $1 AND status = 'pending'
`

type UpdateIdempotencyOutcomeParams struct {
	Key         string `json:"key"`
	Status      string `json:"status"`
	TransferID  string `json:"transfer_id"`
	FailureCode string `json:"failure_code"`
}

func (q *Queries) UpdateIdempotencyOutcome(ctx context.Context, arg UpdateIdempotencyOutcomeParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateIdempotencyOutcome,
		arg.Key,
		arg.Status,
		arg.TransferID,
		arg.FailureCode,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
