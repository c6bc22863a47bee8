
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const sumAccountBalances = `-- name: SumAccountBalances :one
SELECT COALESCE(SUM(balance), 0)::numeric FROM accounts
`

func (q *Queries) SumAccountBalances(ctx context.Context) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumAccountBalances)
	var column_1 pgtype.Numeric
	err := row.Scan(&column_1)
	return column_1, err
}

const sumSignedEntries = `-- name: SumSignedEntries :one
SELECT COALESCE(SUM(CASE WHEN direction = 'debit' THEN -amount ELSE amount END), 0)::numeric
FROM entries
WHERE status = 'completed'
`

func (q *Queries) SumSignedEntries(ctx context.Context) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumSignedEntries)
	var column_1 pgtype.Numeric
	err := row.Scan(&column_1)
	return column_1, err
}
