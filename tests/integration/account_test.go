package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"corebank/internal/adapter/http/dto"
	"corebank/tests/testutil"
)

func doAuthenticated(t *testing.T, router http.Handler, token, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestAccountIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	router := newTestServer(t, testDB)
	token := tokenFor(t, 1)

	t.Run("create account with initial deposit", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := doAuthenticated(t, router, token, http.MethodPost, "/accounts", map[string]string{
			"account_name":    "Checking",
			"initial_deposit": "250.00",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.AccountResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(resp.AccountNumber) != 12 {
			t.Fatalf("expected 12-digit account number, got %q", resp.AccountNumber)
		}
		if !resp.Balance.Equal(decimal.RequireFromString("250.00")) {
			t.Fatalf("expected balance 250.00, got %s", resp.Balance)
		}

		// The opening deposit shows up in the transaction history.
		tw := doAuthenticated(t, router, token, http.MethodGet,
			"/accounts/transactions?account_number="+resp.AccountNumber, nil)
		if tw.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", tw.Code, tw.Body.String())
		}

		var entries []dto.EntryResponse
		if err := json.Unmarshal(tw.Body.Bytes(), &entries); err != nil {
			t.Fatalf("failed to parse entries: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 opening entry, got %d", len(entries))
		}
		if entries[0].Direction != "credit" || entries[0].TransferID != "" {
			t.Fatalf("unexpected opening entry: %+v", entries[0])
		}
	})

	t.Run("rejects invalid deposits", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		for _, deposit := range []string{"-1.00", "10.005"} {
			w := doAuthenticated(t, router, token, http.MethodPost, "/accounts", map[string]string{
				"account_name":    "Broken",
				"initial_deposit": deposit,
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("deposit %s: expected 400, got %d", deposit, w.Code)
			}
		}
	})

	t.Run("get and list are scoped to the caller", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		mine := testDB.CreateTestAccount(ctx, 1, "mine", decimal.RequireFromString("10.00"))
		other := testDB.CreateTestAccount(ctx, 2, "other", decimal.RequireFromString("10.00"))

		w := doAuthenticated(t, router, token, http.MethodGet, "/accounts/"+mine.Number, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for own account, got %d: %s", w.Code, w.Body.String())
		}

		w = doAuthenticated(t, router, token, http.MethodGet, "/accounts/"+other.Number, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign account, got %d", w.Code)
		}

		w = doAuthenticated(t, router, token, http.MethodGet, "/accounts", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var accounts []dto.AccountResponse
		if err := json.Unmarshal(w.Body.Bytes(), &accounts); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(accounts) != 1 || accounts[0].AccountNumber != mine.Number {
			t.Fatalf("unexpected account list: %+v", accounts)
		}
	})

	t.Run("transaction history pagination", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccount(ctx, 1, "source", decimal.RequireFromString("1000.00"))
		dest := testDB.CreateTestAccount(ctx, 2, "dest", decimal.Zero)

		for i := 0; i < 5; i++ {
			w := postTransfer(t, router, token, map[string]string{
				"from_account_number": source.Number,
				"to_account_number":   dest.Number,
				"amount":              "1.00",
				"idempotency_key":     fmt.Sprintf("page-%d", i),
			})
			if w.Code != http.StatusCreated {
				t.Fatalf("transfer %d failed: %d %s", i, w.Code, w.Body.String())
			}
		}

		path := fmt.Sprintf("/accounts/transactions?account_number=%s&limit=2&offset=2", source.Number)
		w := doAuthenticated(t, router, token, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var entries []dto.EntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
			t.Fatalf("failed to parse entries: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		for _, e := range entries {
			if e.Direction != "debit" {
				t.Fatalf("expected debit entries for source, got %s", e.Direction)
			}
		}
	})

	t.Run("ledger stays consistent", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := doAuthenticated(t, router, token, http.MethodPost, "/accounts", map[string]string{
			"account_name":    "Checking",
			"initial_deposit": "500.00",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var created dto.AccountResponse
		json.Unmarshal(w.Body.Bytes(), &created)

		dest := testDB.CreateTestAccount(ctx, 2, "dest", decimal.Zero)
		// Seeded accounts bypass the opening-entry path, so give the
		// destination no balance and only move money through transfers.
		postTransfer(t, router, token, map[string]string{
			"from_account_number": created.AccountNumber,
			"to_account_number":   dest.Number,
			"amount":              "123.45",
			"idempotency_key":     "consistency-1",
		})

		cw := doAuthenticated(t, router, token, http.MethodGet, "/ledger/consistency", nil)
		if cw.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", cw.Code, cw.Body.String())
		}

		var report dto.ConsistencyResponse
		if err := json.Unmarshal(cw.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to parse report: %v", err)
		}
		if !report.Consistent {
			t.Fatalf("ledger inconsistent: balances %s, entries %s", report.TotalBalance, report.TotalEntries)
		}
		if !report.TotalBalance.Equal(decimal.RequireFromString("500.00")) {
			t.Fatalf("expected total balance 500.00, got %s", report.TotalBalance)
		}
	})
}
