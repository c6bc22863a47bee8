package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	adaptershttp "corebank/internal/adapter/http"
	"corebank/internal/adapter/http/handler"
	postgresrepo "corebank/internal/adapter/repository/postgres"
	"corebank/internal/infrastructure/auth"
	"corebank/internal/usecase"
	"corebank/tests/testutil"
)

const testSecret = "integration-test-secret"

// newTestServer wires the full HTTP stack against the test database. The
// account cache is left disabled so balance assertions always read postgres.
func newTestServer(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	pool := testDB.Pool
	txManager := postgresrepo.NewTxManager(pool)
	accountRepo := postgresrepo.NewAccountRepository(pool)
	transferRepo := postgresrepo.NewTransferRepository(pool)
	entryRepo := postgresrepo.NewEntryRepository(pool)
	ledgerRepo := postgresrepo.NewLedgerRepository(pool)
	registry := postgresrepo.NewIdempotencyRegistry(pool)
	idGen := postgresrepo.NewULIDGenerator()
	numGen := postgresrepo.NewAccountNumberGenerator()
	retrier := postgresrepo.NewRetrier()

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, numGen, nil, 0, nil)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, entryRepo, registry, idGen, retrier, nil, nil)
	entryUC := usecase.NewEntryUseCase(accountRepo, entryRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		TransactionHandler: handler.NewTransactionHandler(entryUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, nil),
		JWTManager:         auth.NewJWTManager(testSecret),
		Logger:             zerolog.Nop(),
	})
}

// tokenFor signs a bearer token for the given user, the way the external
// identity service would.
func tokenFor(t *testing.T, userID int64) string {
	t.Helper()

	claims := auth.Claims{
		UserID: userID,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return token
}
