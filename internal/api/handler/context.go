package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/api/middleware"
	"github.com/mitrahub/auth-api/internal/core/domain"
)

// ctxUser returns the user resolved by the Auth middleware. Its absence means
// the route was registered without the gate, which is treated as unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}
