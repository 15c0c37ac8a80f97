//go:build dev

package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// DevService backs the development-only debug endpoints. It is compiled only
// with the dev build tag.
type DevService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}
