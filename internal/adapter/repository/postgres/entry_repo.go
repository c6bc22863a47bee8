package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"corebank/internal/domain"
	"corebank/internal/infrastructure/postgres/generated"
	"corebank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Entries are
// append-only; there is no update or delete.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

func (r *EntryRepository) q(tx usecase.Transaction) *generated.Queries {
	if tx == nil {
		return r.queries
	}

	return generated.New(tx.(*Tx).PgxTx())
}

// Create appends a new entry and fills in its generated ID.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	row, err := r.q(tx).CreateEntry(ctx, generated.CreateEntryParams{
		AccountID:          entry.AccountID,
		TransferID:         entry.TransferID,
		Direction:          string(entry.Direction),
		Amount:             decimalToNumeric(entry.Amount),
		CounterpartyNumber: entry.CounterpartyNumber,
		Description:        entry.Description,
		Status:             string(entry.Status),
		CreatedAt:          timeToPgTimestamptz(entry.CreatedAt),
	})
	if err != nil {
		return err
	}

	entry.ID = row.ID

	return nil
}

// ListByAccount lists an account's entries, most recent first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByAccount(ctx, generated.ListEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// GetByTransfer retrieves the entries recorded for a transfer.
func (r *EntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

func rowsToEntries(rows []generated.Entry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.Entry{
			ID:                 row.ID,
			AccountID:          row.AccountID,
			TransferID:         row.TransferID,
			Direction:          domain.Direction(row.Direction),
			Amount:             numericToDecimal(row.Amount),
			CounterpartyNumber: row.CounterpartyNumber,
			Description:        row.Description,
			Status:             domain.EntryStatus(row.Status),
			CreatedAt:          row.CreatedAt.Time,
		})
	}

	return entries
}
