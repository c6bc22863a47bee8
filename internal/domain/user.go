package domain

// User is the authenticated caller identity established by the external
// identity provider. The ledger core trusts this identity at the boundary
// and never issues or verifies credentials itself.
type User struct {
	ID    int64
	Email string
}
