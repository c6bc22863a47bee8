package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"corebank/internal/adapter/http/dto"
	"corebank/internal/adapter/http/middleware"
	"corebank/internal/domain"
	"corebank/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	ExecuteTransfer(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error)
	GetTransfer(ctx context.Context, userID int64, id string) (*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create executes a transfer between two accounts. Retries with the same
// idempotency key return the first outcome.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	result, err := h.transferUC.ExecuteTransfer(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		respondError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.TransferFromResult(result))
}

// Get returns a stored transfer. Only a party to the transfer can see it.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}
