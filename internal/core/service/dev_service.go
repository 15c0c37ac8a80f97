//go:build dev

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

const debugUsersLimit = 20

// DevService implements the development escape hatches.
type DevService struct {
	users     ports.UserRepository
	passwords ports.PasswordVerifier
	logger    zerolog.Logger
}

func NewDevService(users ports.UserRepository, passwords ports.PasswordVerifier, logger zerolog.Logger) *DevService {
	return &DevService{users: users, passwords: passwords, logger: logger}
}

// ListUsers returns the first users in the store, deactivated ones included.
func (s *DevService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, _, err := s.users.List(ctx, ports.ListUsersFilter{Page: 1, Limit: debugUsersLimit})
	return users, err
}

// ResetPassword stores a fresh current-format hash for the active user with email.
func (s *DevService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if !user.Active() {
		return domain.ErrUserNotFound
	}

	hash, err := s.passwords.Hash(ctx, newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	s.logger.Warn().Str("user_id", user.ID).Msg("password reset through dev endpoint")
	return nil
}
