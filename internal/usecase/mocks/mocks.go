// Package mocks provides hand-rolled in-memory fakes for the usecase
// interfaces. Default behavior is a working in-memory store; individual
// methods can be overridden through the *Func fields.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"corebank/internal/domain"
	"corebank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository,
// keyed by account number.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	nextID   int64

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByNumberFunc           func(ctx context.Context, number string) (*domain.Account, error)
	GetByNumbersForUpdateFunc func(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error)
	ListByUserFunc            func(ctx context.Context, userID int64) ([]*domain.Account, error)
	UpdateBalanceFunc         func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.Number]; exists {
		return domain.ErrAccountNumberTaken
	}
	m.nextID++
	account.ID = m.nextID
	copied := *account
	m.accounts[account.Number] = &copied
	return nil
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[number]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	if m.GetByNumbersForUpdateFunc != nil {
		return m.GetByNumbersForUpdateFunc(ctx, tx, numbers)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, number := range numbers {
		if acc, ok := m.accounts[number]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			acc.Balance = balance
			acc.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry
	nextID  int64

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	ListByAccountFunc func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
	GetByTransferFunc func(ctx context.Context, transferID string) ([]*domain.Entry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entry.ID = m.nextID
	copied := *entry
	m.entries = append(m.entries, &copied)
	return nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Most recent first: reverse insertion order.
	var matched []*domain.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].AccountID == accountID {
			copied := *m.entries[i]
			matched = append(matched, &copied)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockEntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	if m.GetByTransferFunc != nil {
		return m.GetByTransferFunc(ctx, transferID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Entry
	for _, e := range m.entries {
		if e.TransferID == transferID {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

// All returns every stored entry in insertion order.
func (m *MockEntryRepository) All() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		copied := *e
		out = append(out, &copied)
	}
	return out
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	MarkCompletedFunc func(ctx context.Context, tx usecase.Transaction, id string, completedAt time.Time) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *transfer
	m.transfers[transfer.ID] = &copied
	return nil
}

func (m *MockTransferRepository) MarkCompleted(ctx context.Context, tx usecase.Transaction, id string, completedAt time.Time) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, tx, id, completedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return domain.ErrTransferNotFound
	}
	t.Status = domain.TransferStatusCompleted
	t.CompletedAt = &completedAt
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTransferNotFound
}

// MockIdempotencyRegistry is an in-memory IdempotencyRegistry with the same
// compare-and-set reservation semantics as the durable implementation.
type MockIdempotencyRegistry struct {
	mu      sync.Mutex
	records map[string]*domain.IdempotencyRecord

	ReserveFunc       func(ctx context.Context, key, fingerprint string) (*domain.Reservation, error)
	RecordOutcomeFunc func(ctx context.Context, key string, outcome domain.Outcome) error
	ReleaseFunc       func(ctx context.Context, key string) error
}

func NewMockIdempotencyRegistry() *MockIdempotencyRegistry {
	return &MockIdempotencyRegistry{
		records: make(map[string]*domain.IdempotencyRecord),
	}
}

func (m *MockIdempotencyRegistry) Reserve(ctx context.Context, key, fingerprint string) (*domain.Reservation, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, key, fingerprint)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[key]; ok {
		copied := *record
		switch {
		case record.Fingerprint != fingerprint:
			return &domain.Reservation{State: domain.ReservationConflict, Record: &copied}, nil
		case record.Status == domain.OutcomePending:
			return &domain.Reservation{State: domain.ReservationInFlight, Record: &copied}, nil
		default:
			return &domain.Reservation{State: domain.ReservationDuplicate, Record: &copied}, nil
		}
	}
	record := &domain.IdempotencyRecord{
		Key:         key,
		Fingerprint: fingerprint,
		Status:      domain.OutcomePending,
		CreatedAt:   time.Now().UTC(),
	}
	m.records[key] = record
	return &domain.Reservation{State: domain.ReservationFresh}, nil
}

func (m *MockIdempotencyRegistry) RecordOutcome(ctx context.Context, key string, outcome domain.Outcome) error {
	if m.RecordOutcomeFunc != nil {
		return m.RecordOutcomeFunc(ctx, key, outcome)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[key]
	if !ok || record.Status != domain.OutcomePending {
		return fmt.Errorf("no pending reservation for key %q", key)
	}
	if outcome.Succeeded() {
		record.Status = domain.OutcomeSucceeded
		record.TransferID = outcome.TransferID
	} else {
		record.Status = domain.OutcomeFailed
		record.FailureCode = outcome.FailureCode
	}
	return nil
}

func (m *MockIdempotencyRegistry) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[key]; ok && record.Status == domain.OutcomePending {
		delete(m.records, key)
	}
	return nil
}

// Record returns the stored record for key, if any.
func (m *MockIdempotencyRegistry) Record(key string) *domain.IdempotencyRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[key]; ok {
		copied := *record
		return &copied
	}
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	release sync.Once
	done    func()
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.done != nil {
		t.release.Do(t.done)
	}
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.done != nil {
		t.release.Do(t.done)
	}
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
// Transactions are serialized by a single lock held from Begin to
// Commit/Rollback, which stands in for row-level locking: concurrent
// transfers observe each other's committed balances, never partial state.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	return &MockTransaction{done: m.mu.Unlock}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("transfer-%06d", m.next)
}

// MockAccountNumberGenerator is a mock implementation of
// AccountNumberGenerator producing sequential 12-digit numbers.
type MockAccountNumberGenerator struct {
	mu   sync.Mutex
	next int64

	GenerateFunc func() (string, error)
}

func NewMockAccountNumberGenerator() *MockAccountNumberGenerator {
	return &MockAccountNumberGenerator{}
}

func (m *MockAccountNumberGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("%012d", m.next), nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, keys ...string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	TotalBalance decimal.Decimal
	TotalEntries decimal.Decimal

	CheckConsistencyFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}
	return m.TotalBalance, m.TotalEntries, nil
}
