package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// ListUsersResult is returned by the user directory.
type ListUsersResult struct {
	Items      []*domain.User
	Pagination Pagination
}

type UserService interface {
	List(ctx context.Context, page, limit int) (*ListUsersResult, error)
}
