//go:build !dev

package main

import (
	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/api"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

func devDependencies(ports.UserRepository, ports.PasswordVerifier, zerolog.Logger) api.DevDependencies {
	return api.DevDependencies{}
}
