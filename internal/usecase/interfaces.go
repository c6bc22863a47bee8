package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"corebank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create inserts the account and fills in its assigned ID.
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByNumbersForUpdate locks the given accounts in ascending
	// account-number order. Lock order is canonical regardless of request
	// order, which is what makes concurrent opposite-direction transfers
	// deadlock-free.
	GetByNumbersForUpdate(ctx context.Context, tx Transaction, numbers []string) ([]*domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	// Create inserts the entry and fills in its assigned ID. Entries are
	// append-only; there are no update or delete operations.
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	MarkCompleted(ctx context.Context, tx Transaction, id string, completedAt time.Time) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
}

// IdempotencyRegistry deduplicates transfer requests by client-supplied key.
type IdempotencyRegistry interface {
	// Reserve atomically claims key for fingerprint. It is a single
	// compare-and-set against storage, never a separate read-then-write.
	Reserve(ctx context.Context, key, fingerprint string) (*domain.Reservation, error)
	// RecordOutcome attaches the final result to a fresh reservation.
	RecordOutcome(ctx context.Context, key string, outcome domain.Outcome) error
	// Release drops a pending reservation whose transfer is known not to
	// have committed, making the key usable again.
	Release(ctx context.Context, key string) error
}

// LedgerRepository defines ledger-wide operations.
type LedgerRepository interface {
	// CheckConsistency returns the sum of account balances and the sum of
	// signed entry amounts; an intact ledger has them equal.
	CheckConsistency(ctx context.Context) (totalBalance, totalEntries decimal.Decimal, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique transfer IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator generates candidate account numbers. Uniqueness is
// enforced by the store; callers retry on collision.
type AccountNumberGenerator interface {
	Generate() (string, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines read-side caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
