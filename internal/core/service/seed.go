package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

// SeedAdmin describes the superadmin account created on startup.
type SeedAdmin struct {
	Email    string
	Username string
	Password string
}

// SeedSuperadmin creates the configured superadmin if no account uses its
// email yet. An existing account is left untouched whatever its role.
// It reports whether a user was created.
func SeedSuperadmin(ctx context.Context, users ports.UserRepository, passwords ports.PasswordVerifier, seed SeedAdmin, logger zerolog.Logger) (bool, error) {
	email := domain.NormalizeEmail(seed.Email)
	if email == "" {
		return false, nil
	}
	if seed.Password == "" {
		return false, errors.New("seed superadmin: password is empty")
	}

	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domain.RoleSuperadmin || !existing.Active() {
			logger.Warn().
				Str("user_id", existing.ID).
				Str("role", existing.Role.String()).
				Bool("active", existing.Active()).
				Msg("seed email belongs to an existing account, skipping")
		}
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, fmt.Errorf("seed superadmin: lookup: %w", err)
	}

	hash, err := passwords.Hash(ctx, seed.Password)
	if err != nil {
		return false, fmt.Errorf("seed superadmin: %w", err)
	}

	username := strings.TrimSpace(seed.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperadmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("seed superadmin: %w", err)
	}

	logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("superadmin seeded")
	return true, nil
}
