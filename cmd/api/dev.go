//go:build dev

package main

import (
	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/api"
	"github.com/mitrahub/auth-api/internal/core/ports"
	"github.com/mitrahub/auth-api/internal/core/service"
)

func devDependencies(users ports.UserRepository, passwords ports.PasswordVerifier, log zerolog.Logger) api.DevDependencies {
	return api.DevDependencies{DevService: service.NewDevService(users, passwords, log)}
}
