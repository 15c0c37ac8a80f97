package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/core/ports"
)

// UserService serves the admin user directory.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.users.List(ctx, ports.ListUsersFilter{Page: page, Limit: limit})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return &ports.ListUsersResult{Items: items, Pagination: newPagination(page, limit, total)}, nil
}
