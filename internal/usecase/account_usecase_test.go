package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"corebank/internal/domain"
	"corebank/internal/usecase"
	"corebank/internal/usecase/mocks"
)

type accountFixture struct {
	accounts *mocks.MockAccountRepository
	entries  *mocks.MockEntryRepository
	numGen   *mocks.MockAccountNumberGenerator
	cache    *mocks.MockCache
	uc       *usecase.AccountUseCase
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		accounts: mocks.NewMockAccountRepository(),
		entries:  mocks.NewMockEntryRepository(),
		numGen:   mocks.NewMockAccountNumberGenerator(),
		cache:    mocks.NewMockCache(),
	}

	f.uc = usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		f.accounts,
		f.entries,
		f.numGen,
		f.cache,
		0,
		nil,
	)

	return f
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	f := newAccountFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:         1,
		Name:           "Checking",
		InitialDeposit: mustDecimal(t, "250.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID == 0 {
		t.Error("expected account ID to be assigned")
	}
	if len(account.Number) != domain.AccountNumberLength {
		t.Errorf("expected %d-digit number, got %q", domain.AccountNumberLength, account.Number)
	}
	if !account.Balance.Equal(mustDecimal(t, "250.00")) {
		t.Errorf("expected balance 250.00, got %s", account.Balance)
	}

	// The opening balance is itself a ledger entry, so the balance stays
	// explainable by the entry history.
	entries := f.entries.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 opening entry, got %d", len(entries))
	}
	opening := entries[0]
	if opening.Direction != domain.DirectionCredit {
		t.Errorf("expected credit entry, got %s", opening.Direction)
	}
	if !opening.Amount.Equal(account.Balance) {
		t.Errorf("opening entry amount %s != balance %s", opening.Amount, account.Balance)
	}
	if opening.Description != "Initial deposit" {
		t.Errorf("unexpected opening description %q", opening.Description)
	}
	if opening.TransferID != "" {
		t.Errorf("opening entry must not reference a transfer, got %q", opening.TransferID)
	}
}

func TestAccountUseCase_CreateAccount_ZeroDeposit(t *testing.T) {
	f := newAccountFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID: 1,
		Name:   "Empty",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", account.Balance)
	}
	if entries := f.entries.All(); len(entries) != 0 {
		t.Errorf("zero deposit must not create entries, got %d", len(entries))
	}
}

func TestAccountUseCase_CreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.CreateAccountInput
		errorType error
	}{
		{
			name:      "empty name",
			input:     usecase.CreateAccountInput{UserID: 1},
			errorType: domain.ErrInvalidArgument,
		},
		{
			name: "name too long",
			input: usecase.CreateAccountInput{
				UserID: 1,
				Name:   strings.Repeat("x", domain.MaxAccountNameLength+1),
			},
			errorType: domain.ErrInvalidArgument,
		},
		{
			name: "negative deposit",
			input: usecase.CreateAccountInput{
				UserID:         1,
				Name:           "Checking",
				InitialDeposit: decimal.NewFromInt(-1),
			},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name: "sub-cent deposit",
			input: usecase.CreateAccountInput{
				UserID:         1,
				Name:           "Checking",
				InitialDeposit: mustDecimal(t, "10.005"),
			},
			errorType: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture()

			_, err := f.uc.CreateAccount(context.Background(), tt.input)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_NumberCollision(t *testing.T) {
	f := newAccountFixture()

	// First generated number is already taken; the next attempt succeeds.
	numbers := []string{"000000000042", "000000000042", "000000000043"}
	f.numGen.GenerateFunc = func() (string, error) {
		number := numbers[0]
		if len(numbers) > 1 {
			numbers = numbers[1:]
		}
		return number, nil
	}

	ctx := context.Background()

	first, err := f.uc.CreateAccount(ctx, usecase.CreateAccountInput{UserID: 1, Name: "First"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Number != "000000000042" {
		t.Fatalf("unexpected first number %s", first.Number)
	}

	second, err := f.uc.CreateAccount(ctx, usecase.CreateAccountInput{UserID: 1, Name: "Second"})
	if err != nil {
		t.Fatalf("expected retry to resolve collision: %v", err)
	}
	if second.Number != "000000000043" {
		t.Errorf("expected fallback number 000000000043, got %s", second.Number)
	}
}

func TestAccountUseCase_CreateAccount_NumberExhaustion(t *testing.T) {
	f := newAccountFixture()
	f.numGen.GenerateFunc = func() (string, error) {
		return "000000000042", nil
	}

	ctx := context.Background()

	if _, err := f.uc.CreateAccount(ctx, usecase.CreateAccountInput{UserID: 1, Name: "First"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := f.uc.CreateAccount(ctx, usecase.CreateAccountInput{UserID: 1, Name: "Second"})
	if !errors.Is(err, domain.ErrAccountNumberTaken) {
		t.Fatalf("expected ErrAccountNumberTaken after exhausting attempts, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	f := newAccountFixture()

	created, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:         1,
		Name:           "Checking",
		InitialDeposit: mustDecimal(t, "100.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("owner", func(t *testing.T) {
		account, err := f.uc.GetAccount(context.Background(), 1, created.Number)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.ID != created.ID {
			t.Errorf("expected account %d, got %d", created.ID, account.ID)
		}
	})

	t.Run("other user sees not found", func(t *testing.T) {
		_, err := f.uc.GetAccount(context.Background(), 2, created.Number)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("malformed number", func(t *testing.T) {
		_, err := f.uc.GetAccount(context.Background(), 1, "not-a-number")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unknown number", func(t *testing.T) {
		_, err := f.uc.GetAccount(context.Background(), 1, "999999999999")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestAccountUseCase_GetAccount_ServesFromCache(t *testing.T) {
	f := newAccountFixture()

	created, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:         1,
		Name:           "Checking",
		InitialDeposit: mustDecimal(t, "100.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First read populates the cache.
	if _, err := f.uc.GetAccount(context.Background(), 1, created.Number); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With the repository unplugged, the cached copy still answers.
	f.accounts.GetByNumberFunc = func(ctx context.Context, number string) (*domain.Account, error) {
		return nil, errors.New("database down")
	}

	account, err := f.uc.GetAccount(context.Background(), 1, created.Number)
	if err != nil {
		t.Fatalf("expected cached read to succeed: %v", err)
	}
	if !account.Balance.Equal(mustDecimal(t, "100.00")) {
		t.Errorf("unexpected cached balance %s", account.Balance)
	}
}

func TestAccountUseCase_GetAccount_CachesWithConfiguredTTL(t *testing.T) {
	cache := mocks.NewMockCache()
	accounts := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		accounts,
		mocks.NewMockEntryRepository(),
		mocks.NewMockAccountNumberGenerator(),
		cache,
		2*time.Minute,
		nil,
	)

	var gotTTL time.Duration
	cache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		gotTTL = ttl
		return nil
	}

	created, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:         1,
		Name:           "Checking",
		InitialDeposit: mustDecimal(t, "100.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.GetAccount(context.Background(), 1, created.Number); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotTTL != 2*time.Minute {
		t.Errorf("expected configured TTL 2m, got %s", gotTTL)
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	f := newAccountFixture()

	created, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:         1,
		Name:           "Checking",
		InitialDeposit: mustDecimal(t, "33.10"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, err := f.uc.GetBalance(context.Background(), 1, created.Number)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(mustDecimal(t, "33.10")) {
		t.Errorf("expected balance 33.10, got %s", balance)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	for _, in := range []usecase.CreateAccountInput{
		{UserID: 1, Name: "Checking"},
		{UserID: 1, Name: "Savings"},
		{UserID: 2, Name: "Other"},
	} {
		if _, err := f.uc.CreateAccount(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	accounts, err := f.uc.ListAccounts(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts for user 1, got %d", len(accounts))
	}
	for _, acc := range accounts {
		if acc.UserID != 1 {
			t.Errorf("listed foreign account %d", acc.ID)
		}
	}
}
