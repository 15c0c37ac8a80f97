//go:build dev

package api

import (
	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/api/handler"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

// DevDependencies carries the services behind the development-only routes.
type DevDependencies struct {
	DevService ports.DevService
}

func registerDevRoutes(g *echo.Group, deps Dependencies) {
	if deps.Dev.DevService == nil {
		return
	}
	devHandler := handler.NewDevHandler(deps.Dev.DevService)
	g.GET("/debug-users", devHandler.DebugUsers)
	g.POST("/reset-password", devHandler.ResetPassword)
	deps.Log.Warn().Msg("development account routes enabled")
}
