package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Verify fails with domain.ErrInvalidToken for every structural, signature
	// or expiry problem.
	Verify(token string) (*domain.SessionClaims, error)
}

// PasswordVerifier checks and produces password hashes.
type PasswordVerifier interface {
	// Verify never reports why a candidate was rejected. rehashNeeded is only
	// true together with valid and means the stored hash uses the legacy format.
	// err is reserved for comparisons that could not run at all.
	Verify(ctx context.Context, candidate, storedHash string) (valid, rehashNeeded bool, err error)
	Hash(ctx context.Context, plaintext string) (string, error)
	// CompareDecoy spends the same work as a real comparison. Used when there
	// is no stored hash to compare against.
	CompareDecoy(ctx context.Context, candidate string)
}
