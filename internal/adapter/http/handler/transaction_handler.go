package handler

import (
	"context"
	"net/http"

	"corebank/internal/adapter/http/dto"
	"corebank/internal/adapter/http/middleware"
	"corebank/internal/domain"
	"corebank/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Entry, error)
}

// TransactionHandler serves the transaction history of an account.
type TransactionHandler struct {
	entryUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(entryUC TransactionService) *TransactionHandler {
	return &TransactionHandler{entryUC: entryUC}
}

// List lists the ledger entries of one of the caller's accounts, most
// recent first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	number := r.URL.Query().Get("account_number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "account_number is required")
		return
	}

	entries, err := h.entryUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		UserID:        user.ID,
		AccountNumber: number,
		Limit:         parseIntQuery(r, "limit", 0),
		Offset:        parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
