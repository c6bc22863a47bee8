package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"corebank/internal/domain"
	"corebank/internal/infrastructure/postgres/generated"
)

// IdempotencyRegistry implements usecase.IdempotencyRegistry on top of an
// idempotency_keys table. Reservation is an INSERT ... ON CONFLICT DO
// NOTHING, so exactly one concurrent request per key wins the insert and
// everyone else reads back the existing record.
type IdempotencyRegistry struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewIdempotencyRegistry creates a new IdempotencyRegistry.
func NewIdempotencyRegistry(pool *pgxpool.Pool) *IdempotencyRegistry {
	return &IdempotencyRegistry{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Reserve claims the key for this request, or classifies the existing
// record when the key has been seen before.
func (r *IdempotencyRegistry) Reserve(ctx context.Context, key, fingerprint string) (*domain.Reservation, error) {
	inserted, err := r.queries.InsertIdempotencyKey(ctx, generated.InsertIdempotencyKeyParams{
		Key:         key,
		Fingerprint: fingerprint,
		CreatedAt:   timeToPgTimestamptz(time.Now().UTC()),
	})
	if err != nil {
		return nil, err
	}

	if inserted > 0 {
		return &domain.Reservation{State: domain.ReservationFresh}, nil
	}

	row, err := r.queries.GetIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}

	record := rowToIdempotencyRecord(row)

	switch {
	case record.Fingerprint != fingerprint:
		return &domain.Reservation{State: domain.ReservationConflict, Record: record}, nil
	case record.Status == domain.OutcomePending:
		return &domain.Reservation{State: domain.ReservationInFlight, Record: record}, nil
	default:
		return &domain.Reservation{State: domain.ReservationDuplicate, Record: record}, nil
	}
}

// RecordOutcome resolves a pending reservation to its final outcome.
func (r *IdempotencyRegistry) RecordOutcome(ctx context.Context, key string, outcome domain.Outcome) error {
	status := domain.OutcomeFailed
	if outcome.Succeeded() {
		status = domain.OutcomeSucceeded
	}

	updated, err := r.queries.UpdateIdempotencyOutcome(ctx, generated.UpdateIdempotencyOutcomeParams{
		Key:         key,
		Status:      string(status),
		TransferID:  outcome.TransferID,
		FailureCode: outcome.FailureCode,
	})
	if err != nil {
		return err
	}

	if updated == 0 {
		return fmt.Errorf("no pending reservation for key %q", key)
	}

	return nil
}

// Release frees a pending reservation so the key can be retried. Resolved
// records are never deleted.
func (r *IdempotencyRegistry) Release(ctx context.Context, key string) error {
	return r.queries.DeletePendingIdempotencyKey(ctx, key)
}

func rowToIdempotencyRecord(row generated.IdempotencyKey) *domain.IdempotencyRecord {
	return &domain.IdempotencyRecord{
		Key:         row.Key,
		Fingerprint: row.Fingerprint,
		Status:      domain.OutcomeStatus(row.Status),
		TransferID:  row.TransferID,
		FailureCode: row.FailureCode,
		CreatedAt:   row.CreatedAt.Time,
	}
}
