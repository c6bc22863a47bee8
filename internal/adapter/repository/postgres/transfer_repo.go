package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corebank/internal/domain"
	"corebank/internal/infrastructure/postgres/generated"
	"corebank/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

func (r *TransferRepository) q(tx usecase.Transaction) *generated.Queries {
	if tx == nil {
		return r.queries
	}

	return generated.New(tx.(*Tx).PgxTx())
}

// Create creates a new transfer record.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	_, err := r.q(tx).CreateTransfer(ctx, generated.CreateTransferParams{
		ID:            transfer.ID,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		FromNumber:    transfer.FromNumber,
		ToNumber:      transfer.ToNumber,
		Amount:        decimalToNumeric(transfer.Amount),
		Description:   transfer.Description,
		Status:        string(transfer.Status),
		CreatedAt:     timeToPgTimestamptz(transfer.CreatedAt),
	})

	return err
}

// MarkCompleted transitions a transfer to the completed status.
func (r *TransferRepository) MarkCompleted(ctx context.Context, tx usecase.Transaction, id string, completedAt time.Time) error {
	return r.q(tx).MarkTransferCompleted(ctx, generated.MarkTransferCompletedParams{
		ID:          id,
		CompletedAt: timeToPgTimestamptz(completedAt),
	})
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	transfer := &domain.Transfer{
		ID:            row.ID,
		FromAccountID: row.FromAccountID,
		ToAccountID:   row.ToAccountID,
		FromNumber:    row.FromNumber,
		ToNumber:      row.ToNumber,
		Amount:        numericToDecimal(row.Amount),
		Description:   row.Description,
		Status:        domain.TransferStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time,
	}

	if row.CompletedAt.Valid {
		completedAt := row.CompletedAt.Time
		transfer.CompletedAt = &completedAt
	}

	return transfer, nil
}
