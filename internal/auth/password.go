// Package auth holds the credential primitives: bcrypt password verification
// with legacy hash migration, and HS256 session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	legacyPrefix  = "$2y$"
	currentPrefix = "$2a$"

	decoyPassword = "mitra-decoy-password"
)

// Executor runs fn, possibly on another goroutine, and waits for it.
// *queue.Pool satisfies it.
type Executor interface {
	Run(ctx context.Context, fn func()) error
}

// PasswordConfig configures the BcryptVerifier.
type PasswordConfig struct {
	Cost int
}

// BcryptVerifier implements ports.PasswordVerifier on bcrypt. Hashes tagged
// $2y$ are accepted and reported as needing a rehash; new hashes use $2a$.
type BcryptVerifier struct {
	cost  int
	exec  Executor
	decoy []byte
	log   zerolog.Logger
}

// NewBcryptVerifier builds a verifier. A nil exec runs bcrypt on the calling
// goroutine.
func NewBcryptVerifier(cfg PasswordConfig, exec Executor, log zerolog.Logger) (*BcryptVerifier, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	decoy, err := bcrypt.GenerateFromPassword([]byte(decoyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("generate decoy hash: %w", err)
	}

	return &BcryptVerifier{cost: cost, exec: exec, decoy: decoy, log: log}, nil
}

// Verify compares candidate against storedHash.
func (v *BcryptVerifier) Verify(ctx context.Context, candidate, storedHash string) (valid, rehashNeeded bool, err error) {
	hash, legacy := normalizeHash(storedHash)
	if hash == "" {
		v.CompareDecoy(ctx, candidate)
		return false, false, nil
	}

	var cmpErr error
	if err := v.run(ctx, func() {
		cmpErr = bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	}); err != nil {
		v.log.Warn().Err(err).Msg("password comparison not executed")
		return false, false, fmt.Errorf("compare password: %w", err)
	}

	if cmpErr != nil {
		if !errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword) {
			v.log.Debug().Err(cmpErr).Msg("stored password hash unusable")
		}
		return false, false, nil
	}
	return true, legacy, nil
}

// Hash produces a current-format hash of plaintext.
func (v *BcryptVerifier) Hash(ctx context.Context, plaintext string) (string, error) {
	var (
		out     []byte
		hashErr error
	)
	if err := v.run(ctx, func() {
		out, hashErr = bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	}); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if hashErr != nil {
		return "", fmt.Errorf("hash password: %w", hashErr)
	}
	return string(out), nil
}

// CompareDecoy runs one comparison against a fixed hash and discards the result.
func (v *BcryptVerifier) CompareDecoy(ctx context.Context, candidate string) {
	_ = v.run(ctx, func() {
		_ = bcrypt.CompareHashAndPassword(v.decoy, []byte(candidate))
	})
}

func (v *BcryptVerifier) run(ctx context.Context, fn func()) error {
	if v.exec == nil {
		fn()
		return nil
	}
	return v.exec.Run(ctx, fn)
}

// normalizeHash rewrites a legacy-tagged hash to the current tag. $2b$ and $2a$
// hashes pass through unchanged.
func normalizeHash(stored string) (hash string, legacy bool) {
	if strings.HasPrefix(stored, legacyPrefix) {
		return currentPrefix + stored[len(legacyPrefix):], true
	}
	return stored, false
}
