package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"corebank/internal/domain"
	"corebank/internal/usecase"
)

type transferServiceStub struct {
	executeFn func(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error)
	getFn     func(ctx context.Context, userID int64, id string) (*domain.Transfer, error)
}

func (s *transferServiceStub) ExecuteTransfer(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error) {
	return s.executeFn(ctx, input)
}

func (s *transferServiceStub) GetTransfer(ctx context.Context, userID int64, id string) (*domain.Transfer, error) {
	return s.getFn(ctx, userID, id)
}

func transferBody() string {
	return `{
		"from_account_number": "111111111111",
		"to_account_number": "222222222222",
		"amount": "30.00",
		"description": "rent",
		"idempotency_key": "key-1"
	}`
}

func TestTransferHandlerCreate(t *testing.T) {
	stub := &transferServiceStub{
		executeFn: func(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error) {
			if input.UserID != 1 {
				t.Fatalf("expected user id 1, got %d", input.UserID)
			}
			if input.IdempotencyKey != "key-1" {
				t.Fatalf("unexpected idempotency key: %q", input.IdempotencyKey)
			}
			if !input.Amount.Equal(decimal.RequireFromString("30.00")) {
				t.Fatalf("unexpected amount: %s", input.Amount)
			}
			return &usecase.TransferResult{
				TransferID: "01J5TRANSFER0000000000001",
				Status:     domain.TransferStatusCompleted,
				Replayed:   false,
			}, nil
		},
	}
	h := NewTransferHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts/transfer", bytes.NewBufferString(transferBody()))
	rr := httptest.NewRecorder()

	h.Create(rr, withUser(req, 1))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["transfer_id"] != "01J5TRANSFER0000000000001" {
		t.Fatalf("unexpected transfer id: %v", resp["transfer_id"])
	}
	if resp["replayed"] != false {
		t.Fatalf("expected replayed=false, got %v", resp["replayed"])
	}
}

func TestTransferHandlerReplayedReturnsOK(t *testing.T) {
	stub := &transferServiceStub{
		executeFn: func(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error) {
			return &usecase.TransferResult{
				TransferID: "01J5TRANSFER0000000000001",
				Status:     domain.TransferStatusCompleted,
				Replayed:   true,
			}, nil
		},
	}
	h := NewTransferHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts/transfer", bytes.NewBufferString(transferBody()))
	rr := httptest.NewRecorder()

	h.Create(rr, withUser(req, 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for replayed transfer, got %d", rr.Code)
	}
}

func TestTransferHandlerIdempotencyKeyHeader(t *testing.T) {
	stub := &transferServiceStub{
		executeFn: func(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error) {
			if input.IdempotencyKey != "header-key" {
				t.Fatalf("expected header key, got %q", input.IdempotencyKey)
			}
			return &usecase.TransferResult{TransferID: "01J5T", Status: domain.TransferStatusCompleted}, nil
		},
	}
	h := NewTransferHandler(stub)

	body := `{
		"from_account_number": "111111111111",
		"to_account_number": "222222222222",
		"amount": "30.00"
	}`
	req := httptest.NewRequest(http.MethodPost, "/accounts/transfer", bytes.NewBufferString(body))
	req.Header.Set("Idempotency-Key", "header-key")
	rr := httptest.NewRecorder()

	h.Create(rr, withUser(req, 1))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestTransferHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"idempotency conflict", domain.ErrIdempotencyConflict, http.StatusBadRequest},
		{"unknown account", domain.ErrAccountNotFound, http.StatusNotFound},
		{"in flight", domain.ErrTransferInFlight, http.StatusConflict},
		{"storage unavailable", domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &transferServiceStub{
				executeFn: func(ctx context.Context, input usecase.ExecuteTransferInput) (*usecase.TransferResult, error) {
					return nil, tt.err
				},
			}
			h := NewTransferHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/accounts/transfer", bytes.NewBufferString(transferBody()))
			rr := httptest.NewRecorder()

			h.Create(rr, withUser(req, 1))

			if rr.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestTransferHandlerGet(t *testing.T) {
	completedAt := time.Now().UTC()
	stub := &transferServiceStub{
		getFn: func(ctx context.Context, userID int64, id string) (*domain.Transfer, error) {
			if userID != 1 {
				t.Fatalf("expected user id 1, got %d", userID)
			}
			if id != "01J5TRANSFER0000000000001" {
				t.Fatalf("unexpected transfer id: %q", id)
			}
			return &domain.Transfer{
				ID:          id,
				FromNumber:  "111111111111",
				ToNumber:    "222222222222",
				Amount:      decimal.RequireFromString("30.00"),
				Description: "rent",
				Status:      domain.TransferStatusCompleted,
				CompletedAt: &completedAt,
			}, nil
		},
	}
	h := NewTransferHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/transfers/01J5TRANSFER0000000000001", nil)
	req = setChiURLParam(req, "id", "01J5TRANSFER0000000000001")
	rr := httptest.NewRecorder()

	h.Get(rr, withUser(req, 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["transfer_id"] != "01J5TRANSFER0000000000001" {
		t.Fatalf("unexpected transfer id: %v", resp["transfer_id"])
	}
	if resp["from_account_number"] != "111111111111" {
		t.Fatalf("unexpected source account: %v", resp["from_account_number"])
	}
	if resp["status"] != string(domain.TransferStatusCompleted) {
		t.Fatalf("unexpected status: %v", resp["status"])
	}
}

func TestTransferHandlerGetNotFound(t *testing.T) {
	stub := &transferServiceStub{
		getFn: func(ctx context.Context, userID int64, id string) (*domain.Transfer, error) {
			return nil, domain.ErrTransferNotFound
		},
	}
	h := NewTransferHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/transfers/unknown", nil)
	req = setChiURLParam(req, "id", "unknown")
	rr := httptest.NewRecorder()

	h.Get(rr, withUser(req, 1))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestTransferHandlerInvalidBody(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts/transfer", bytes.NewBufferString("{broken"))
	rr := httptest.NewRecorder()

	h.Create(rr, withUser(req, 1))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
