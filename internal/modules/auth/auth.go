package auth

import "context"

// Identity is the authenticated caller extracted from a login token.
type Identity struct {
	ID   int64
	Role string // "customer" or "employee"
}

// LoginRequest is the payload for both login endpoints.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service defines authentication business logic.
type Service interface {
	// CustomerLogin verifies customer credentials and returns a signed
	// token together with the customer id.
	CustomerLogin(ctx context.Context, username, password string) (string, int64, error)

	// EmployeeLogin verifies employee credentials and returns a signed
	// token together with the employee id and store id.
	EmployeeLogin(ctx context.Context, username, password string) (string, int64, int64, error)

	// Verify parses and validates a token string.
	Verify(token string) (*Identity, error)
}
