package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OutcomeStatus is the recorded state of an idempotency key.
type OutcomeStatus string

const (
	OutcomePending   OutcomeStatus = "pending"
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Failure codes stored with failed outcomes, so a replayed request can
// reconstruct the original error.
const (
	FailureInsufficientFunds = "insufficient_funds"
	FailureAccountNotFound   = "account_not_found"
	FailureSameAccount       = "same_account"
	FailureInvalidAmount     = "invalid_amount"
	FailureInvalidArgument   = "invalid_argument"
)

// IdempotencyRecord maps a client-supplied idempotency key to the outcome of
// the transfer it originally produced. Records are written once and never
// mutated except to attach the final outcome to a pending reservation.
type IdempotencyRecord struct {
	Key         string
	Fingerprint string
	Status      OutcomeStatus
	TransferID  string
	FailureCode string
	CreatedAt   time.Time
}

// ReservationState classifies the result of reserving an idempotency key.
type ReservationState int

const (
	// ReservationFresh means the caller owns executing the transfer.
	ReservationFresh ReservationState = iota
	// ReservationDuplicate means a prior request with the same fingerprint
	// already completed; its outcome is returned verbatim.
	ReservationDuplicate
	// ReservationConflict means the key was reused with a different
	// fingerprint.
	ReservationConflict
	// ReservationInFlight means a request with the same key and fingerprint
	// is still executing.
	ReservationInFlight
)

// Reservation is the result of an atomic idempotency-key reservation.
type Reservation struct {
	State  ReservationState
	Record *IdempotencyRecord
}

// Outcome is the final result attached to a reservation.
type Outcome struct {
	TransferID  string
	FailureCode string
}

// Succeeded reports whether the outcome is a committed transfer.
func (o Outcome) Succeeded() bool {
	return o.FailureCode == ""
}

// SucceededOutcome builds the outcome for a committed transfer.
func SucceededOutcome(transferID string) Outcome {
	return Outcome{TransferID: transferID}
}

// FailedOutcome builds the outcome for a terminal transfer failure.
func FailedOutcome(err error) Outcome {
	return Outcome{FailureCode: FailureCodeForError(err)}
}

// FailureCodeForError maps a terminal transfer error to its stored code.
func FailureCodeForError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientFunds):
		return FailureInsufficientFunds
	case errors.Is(err, ErrAccountNotFound):
		return FailureAccountNotFound
	case errors.Is(err, ErrSameAccount):
		return FailureSameAccount
	case errors.Is(err, ErrInvalidAmount):
		return FailureInvalidAmount
	default:
		return FailureInvalidArgument
	}
}

// ErrorForFailureCode maps a stored failure code back to the domain error it
// was recorded from.
func ErrorForFailureCode(code string) error {
	switch code {
	case FailureInsufficientFunds:
		return ErrInsufficientFunds
	case FailureAccountNotFound:
		return ErrAccountNotFound
	case FailureSameAccount:
		return ErrSameAccount
	case FailureInvalidAmount:
		return ErrInvalidAmount
	default:
		return ErrInvalidArgument
	}
}

// Fingerprint hashes the semantic content of a transfer request. Reusing an
// idempotency key with a different fingerprint is a conflict, never a replay.
func Fingerprint(fromNumber, toNumber string, amount decimal.Decimal, description string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join([]string{
		fromNumber,
		toNumber,
		amount.StringFixed(MoneyScale),
		description,
	}, "|")))

	return hex.EncodeToString(h.Sum(nil))
}
