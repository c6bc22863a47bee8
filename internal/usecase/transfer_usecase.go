package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"corebank/internal/domain"
	"corebank/internal/infrastructure/metrics"
)

// TransferUseCase is the transfer engine: the single entry point that turns
// a transfer request into a durable, exactly-once-effect ledger mutation.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	registry     IdempotencyRegistry
	idGen        IDGenerator
	retrier      Retrier
	cache        Cache
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. cache and m may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	registry IdempotencyRegistry,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		registry:     registry,
		idGen:        idGen,
		retrier:      retrier,
		cache:        cache,
		metrics:      m,
	}
}

// ExecuteTransferInput represents a transfer request.
type ExecuteTransferInput struct {
	UserID         int64
	IdempotencyKey string
	FromNumber     string
	ToNumber       string
	Amount         decimal.Decimal
	Description    string
}

// TransferResult is the outcome returned to the caller.
type TransferResult struct {
	TransferID string
	Status     domain.TransferStatus
	Replayed   bool
}

// ExecuteTransfer executes a transfer exactly once per idempotency key:
// reserve the key, apply the ledger mutation atomically, record the outcome,
// return it. A retried request with the same key and fingerprint returns the
// recorded outcome without touching balances; the same key with a different
// fingerprint is a conflict.
func (uc *TransferUseCase) ExecuteTransfer(ctx context.Context, input ExecuteTransferInput) (*TransferResult, error) {
	if input.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key is required", domain.ErrInvalidArgument)
	}

	start := time.Now()
	fingerprint := domain.Fingerprint(input.FromNumber, input.ToNumber, input.Amount, input.Description)

	reservation, err := uc.registry.Reserve(ctx, input.IdempotencyKey, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("%w: idempotency reserve: %v", domain.ErrStorageUnavailable, err)
	}

	switch reservation.State {
	case domain.ReservationConflict:
		return nil, domain.ErrIdempotencyConflict
	case domain.ReservationInFlight:
		return nil, domain.ErrTransferInFlight
	case domain.ReservationDuplicate:
		record := reservation.Record
		if uc.metrics != nil {
			uc.metrics.TransfersReplayed.Inc()
		}

		if record.Status == domain.OutcomeSucceeded {
			return &TransferResult{
				TransferID: record.TransferID,
				Status:     domain.TransferStatusCompleted,
				Replayed:   true,
			}, nil
		}

		return nil, domain.ErrorForFailureCode(record.FailureCode)
	}

	transfer, commitAttempted, err := uc.applyTransfer(ctx, input)
	if err != nil {
		if uc.metrics != nil {
			label := "storage"
			if domain.IsTerminalTransferError(err) {
				label = domain.FailureCodeForError(err)
			}
			uc.metrics.TransferErrors.WithLabelValues(label).Inc()
		}

		switch {
		case domain.IsTerminalTransferError(err):
			// Deterministic failure: record it so a retry with the same key
			// replays it instead of re-attempting a doomed mutation.
			uc.recordOutcome(ctx, input.IdempotencyKey, domain.FailedOutcome(err))
		case !commitAttempted:
			// The mutation definitely did not commit; free the key so the
			// caller can retry it.
			uc.releaseReservation(ctx, input.IdempotencyKey)
		default:
			// Commit outcome unknown. The reservation stays pending and the
			// caller must re-query by idempotency key rather than assume
			// failure.
		}

		return nil, err
	}

	uc.recordOutcome(ctx, input.IdempotencyKey, domain.SucceededOutcome(transfer.ID))
	uc.invalidateAccounts(ctx, input.FromNumber, input.ToNumber)

	if uc.metrics != nil {
		uc.metrics.TransfersExecuted.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := input.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amount)
	}

	return &TransferResult{TransferID: transfer.ID, Status: transfer.Status}, nil
}

// applyTransfer performs the atomic ledger mutation: both accounts locked in
// ascending account-number order, balances re-read under lock, the
// debit/credit entry pair and both balance updates committed as one unit.
// No partial state is ever visible to a concurrent reader.
func (uc *TransferUseCase) applyTransfer(ctx context.Context, input ExecuteTransferInput) (*domain.Transfer, bool, error) {
	// Validation happens before any lock is taken.
	if err := domain.ValidateAccountNumber(input.FromNumber); err != nil {
		return nil, false, err
	}

	if err := domain.ValidateAccountNumber(input.ToNumber); err != nil {
		return nil, false, err
	}

	request := &domain.Transfer{
		FromNumber: input.FromNumber,
		ToNumber:   input.ToNumber,
		Amount:     input.Amount,
	}
	if err := request.Validate(); err != nil {
		return nil, false, err
	}

	numbers := []string{input.FromNumber, input.ToNumber}
	sort.Strings(numbers)

	var (
		transfer        *domain.Transfer
		commitAttempted bool
	)

	operation := func() error {
		commitAttempted = false

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.accountRepo.GetByNumbersForUpdate(ctx, tx, numbers)
		if err != nil {
			return err
		}

		byNumber := make(map[string]*domain.Account, len(accounts))
		for _, a := range accounts {
			byNumber[a.Number] = a
		}

		from := byNumber[input.FromNumber]
		to := byNumber[input.ToNumber]

		if from == nil || to == nil {
			return domain.ErrAccountNotFound
		}

		// Callers may only move money out of their own accounts.
		if input.UserID != 0 && from.UserID != input.UserID {
			return domain.ErrAccountNotFound
		}

		if err := from.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		t := &domain.Transfer{
			ID:            uc.idGen.Generate(),
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			FromNumber:    from.Number,
			ToNumber:      to.Number,
			Amount:        input.Amount,
			Description:   input.Description,
			Status:        domain.TransferStatusPending,
			CreatedAt:     now,
		}

		if err := uc.transferRepo.Create(ctx, tx, t); err != nil {
			return err
		}

		debit := &domain.Entry{
			AccountID:          from.ID,
			TransferID:         t.ID,
			Direction:          domain.DirectionDebit,
			Amount:             input.Amount,
			CounterpartyNumber: to.Number,
			Description:        input.Description,
			Status:             domain.EntryStatusCompleted,
			CreatedAt:          now,
		}

		if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, from.ID, from.ApplyDebit(input.Amount), now); err != nil {
			return err
		}

		credit := &domain.Entry{
			AccountID:          to.ID,
			TransferID:         t.ID,
			Direction:          domain.DirectionCredit,
			Amount:             input.Amount,
			CounterpartyNumber: from.Number,
			Description:        input.Description,
			Status:             domain.EntryStatusCompleted,
			CreatedAt:          now,
		}

		if err := uc.entryRepo.Create(ctx, tx, credit); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, to.ID, to.ApplyCredit(input.Amount), now); err != nil {
			return err
		}

		if err := uc.transferRepo.MarkCompleted(ctx, tx, t.ID, now); err != nil {
			return err
		}

		commitAttempted = true
		if err := tx.Commit(ctx); err != nil {
			if errors.Is(err, domain.ErrTxAborted) {
				// The database rolled the transaction back, so nothing
				// committed and the key may still be released.
				commitAttempted = false
			}

			return err
		}

		t.Status = domain.TransferStatusCompleted
		t.CompletedAt = &now
		transfer = t

		return nil
	}

	if err := uc.retrier.Retry(ctx, operation); err != nil {
		return nil, commitAttempted, err
	}

	return transfer, true, nil
}

// GetTransfer retrieves a transfer by ID, restricted to callers who own one
// of its accounts. A transfer the caller is not party to reads as not found.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, userID int64, id string) (*domain.Transfer, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: transfer id is required", domain.ErrInvalidArgument)
	}

	transfer, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, number := range []string{transfer.FromNumber, transfer.ToNumber} {
		account, err := uc.accountRepo.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}

		if account.UserID == userID {
			return transfer, nil
		}
	}

	return nil, domain.ErrTransferNotFound
}

// recordOutcome attaches the final result to the reservation. It runs on a
// context detached from the caller's cancellation: if the mutation committed
// but the request timed out, the outcome must still be recorded so a retry
// replays it instead of re-executing.
func (uc *TransferUseCase) recordOutcome(ctx context.Context, key string, outcome domain.Outcome) {
	if err := uc.registry.RecordOutcome(context.WithoutCancel(ctx), key, outcome); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to record transfer outcome")
	}
}

// releaseReservation frees a pending key after a failure that is known not
// to have committed.
func (uc *TransferUseCase) releaseReservation(ctx context.Context, key string) {
	if err := uc.registry.Release(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency reservation")
	}
}

func (uc *TransferUseCase) invalidateAccounts(ctx context.Context, numbers ...string) {
	if uc.cache == nil {
		return
	}

	keys := make([]string, len(numbers))
	for i, n := range numbers {
		keys[i] = accountCacheKey(n)
	}

	if err := uc.cache.Delete(context.WithoutCancel(ctx), keys...); err != nil {
		log.Debug().Err(err).Msg("failed to invalidate account cache")
	}
}
