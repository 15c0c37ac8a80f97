package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate resolves a raw bearer token to a live user, re-reading the
	// store so role changes and deactivation apply immediately.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Refresh(ctx context.Context, user *domain.User) (string, error)
	Logout(ctx context.Context, user *domain.User) error
}
