package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
	"github.com/mitrahub/auth-api/internal/metrics"
)

// AuthService implements login, token refresh, profile and the token-to-user
// resolution used by the access control gate.
type AuthService struct {
	users     ports.UserRepository
	passwords ports.PasswordVerifier
	tokens    ports.TokenService
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, passwords ports.PasswordVerifier, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, passwords: passwords, tokens: tokens, logger: logger}
}

// Login authenticates an administrator by email and password. Unknown,
// deactivated and mismatched accounts all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if err != nil || !user.Active() {
		s.passwords.CompareDecoy(ctx, password)
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	valid, rehashNeeded, err := s.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if rehashNeeded {
		s.migrateHash(ctx, user, password)
	}

	if !user.Role.IsAdmin() {
		s.logger.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("login refused for non-admin role")
		metrics.LoginAttemptsTotal.WithLabelValues("forbidden").Inc()
		return nil, domain.ErrAdminRequired
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("login succeeded")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// migrateHash re-hashes a password that matched a legacy hash. Failures are
// logged and swallowed; the login itself already succeeded.
func (s *AuthService) migrateHash(ctx context.Context, user *domain.User, password string) {
	hash, err := s.passwords.Hash(ctx, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("legacy password rehash failed")
		metrics.PasswordRehashTotal.WithLabelValues("failed").Inc()
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("legacy password rehash not persisted")
		metrics.PasswordRehashTotal.WithLabelValues("failed").Inc()
		return
	}
	user.PasswordHash = hash
	metrics.PasswordRehashTotal.WithLabelValues("migrated").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("legacy password hash migrated")
}

// Authenticate verifies token and reloads its subject from the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.GateRejectionsTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.GateRejectionsTotal.WithLabelValues("subject_not_found").Inc()
		return nil, domain.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	if !user.Active() {
		metrics.GateRejectionsTotal.WithLabelValues("deactivated").Inc()
		return nil, domain.ErrAccountDeactivated
	}
	return user, nil
}

// Profile returns the current state of the user.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Refresh issues a new token from the gate-resolved user. Earlier tokens stay
// valid until they expire.
func (s *AuthService) Refresh(_ context.Context, user *domain.User) (string, error) {
	return s.tokens.Issue(user)
}

// Logout acknowledges the request. Tokens are stateless, so nothing is revoked.
func (s *AuthService) Logout(_ context.Context, user *domain.User) error {
	s.logger.Info().Str("user_id", user.ID).Msg("logout")
	return nil
}
