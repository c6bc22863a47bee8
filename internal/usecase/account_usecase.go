package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"corebank/internal/domain"
	"corebank/internal/infrastructure/metrics"
)

const (
	// accountNumberAttempts bounds retries when a generated account number
	// collides with an existing one.
	accountNumberAttempts = 5

	defaultAccountCacheTTL = 30 * time.Second
)

// AccountUseCase handles account provisioning and read queries. All balance
// mutation is delegated to the transfer engine.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	numGen      AccountNumberGenerator
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. cache and m may be nil; a
// non-positive cacheTTL falls back to the default.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	numGen AccountNumberGenerator,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
) *AccountUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultAccountCacheTTL
	}

	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		numGen:      numGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID         int64
	Name           string
	InitialDeposit decimal.Decimal
}

// CreateAccount creates a new account with a unique account number. A
// positive opening balance is recorded as a single self-referencing credit
// entry, so balance == sum(entries) holds from the first moment.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateInitialDeposit(input.InitialDeposit); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		number, err := uc.numGen.Generate()
		if err != nil {
			return nil, err
		}

		account, err := uc.createWithNumber(ctx, input, number)
		if err == nil {
			if uc.metrics != nil {
				uc.metrics.AccountsCreated.Inc()
			}

			return account, nil
		}

		if !errors.Is(err, domain.ErrAccountNumberTaken) {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

func (uc *AccountUseCase) createWithNumber(ctx context.Context, input CreateAccountInput, number string) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	account := &domain.Account{
		UserID:    input.UserID,
		Name:      input.Name,
		Number:    number,
		Balance:   input.InitialDeposit.Truncate(domain.MoneyScale),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	if account.Balance.IsPositive() {
		opening := &domain.Entry{
			AccountID:          account.ID,
			Direction:          domain.DirectionCredit,
			Amount:             account.Balance,
			CounterpartyNumber: account.Number,
			Description:        "Initial deposit",
			Status:             domain.EntryStatusCompleted,
			CreatedAt:          now,
		}

		if err := uc.entryRepo.Create(ctx, tx, opening); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by number, restricted to its owner.
func (uc *AccountUseCase) GetAccount(ctx context.Context, userID int64, number string) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	if cached := uc.cachedAccount(ctx, number); cached != nil {
		if uc.metrics != nil {
			uc.metrics.CacheHits.Inc()
		}

		if cached.UserID != userID {
			return nil, domain.ErrAccountNotFound
		}

		return cached, nil
	}

	if uc.metrics != nil && uc.cache != nil {
		uc.metrics.CacheMisses.Inc()
	}

	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	uc.cacheAccount(ctx, account)

	if account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// GetBalance returns the current balance of an owned account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, userID int64, number string) (decimal.Decimal, error) {
	account, err := uc.GetAccount(ctx, userID, number)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// ListAccounts lists the caller's accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID int64) ([]*domain.Account, error) {
	return uc.accountRepo.ListByUser(ctx, userID)
}

func accountCacheKey(number string) string {
	return "account:" + number
}

func (uc *AccountUseCase) cachedAccount(ctx context.Context, number string) *domain.Account {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, accountCacheKey(number))
	if err != nil || data == nil {
		return nil
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil
	}

	return &account
}

func (uc *AccountUseCase) cacheAccount(ctx context.Context, account *domain.Account) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(account)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, accountCacheKey(account.Number), data, uc.cacheTTL); err != nil {
		log.Debug().Err(err).Msg("failed to cache account")
	}
}
