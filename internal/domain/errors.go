package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNumberTaken = errors.New("account number already in use")
	ErrInvalidArgument    = errors.New("invalid argument")

	// Transfer errors
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferNotFound  = errors.New("transfer not found")

	// Idempotency errors
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different request")
	ErrTransferInFlight    = errors.New("a transfer with this idempotency key is still in progress")

	// Infrastructure errors
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
	// ErrTxAborted marks a commit failure where the database is known to
	// have rolled the transaction back, as opposed to a commit whose
	// outcome is unknown.
	ErrTxAborted = errors.New("transaction aborted")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// IsTerminalTransferError reports whether err is deterministic for a given
// request, meaning its outcome may be recorded against the idempotency key
// and replayed on retry instead of re-executing the transfer.
func IsTerminalTransferError(err error) bool {
	for _, terminal := range []error{
		ErrInsufficientFunds,
		ErrAccountNotFound,
		ErrSameAccount,
		ErrInvalidAmount,
		ErrInvalidArgument,
	} {
		if errors.Is(err, terminal) {
			return true
		}
	}

	return false
}
