package postgres

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/oklog/ulid/v2"

	"corebank/internal/domain"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// AccountNumberGenerator generates random 12-digit account numbers.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

var accountNumberMax = func() *big.Int {
	max := big.NewInt(10)
	return max.Exp(max, big.NewInt(int64(domain.AccountNumberLength)), nil)
}()

// Generate generates a random account number, zero-padded to the full
// length. Uniqueness is enforced by the database, not here.
func (g *AccountNumberGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}

	return fmt.Sprintf("%0*d", domain.AccountNumberLength, n), nil
}
