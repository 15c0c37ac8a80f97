package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// ListUsersFilter carries pagination for the user directory.
type ListUsersFilter struct {
	Page  int // 1-based
	Limit int
}

// UserRepository is the credential store. Lookups return deactivated users
// too, with Lifecycle set, so callers can tell "gone" from "deactivated".
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// UpdateRole sets role and partner reference together. A nil partnerID clears it.
	UpdateRole(ctx context.Context, id string, role domain.Role, partnerID *string) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
