package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/metrics"
)

// RequireRoles lets the request through only when the user resolved by Auth
// holds one of roles. Unknown roles are ignored.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return requireRoles(domain.NewRoleSet(roles...), domain.ErrForbidden)
}

// RequireAdmin is RequireRoles(admin, superadmin).
func RequireAdmin() echo.MiddlewareFunc {
	return requireRoles(domain.AdminRoles, domain.ErrAdminRequired)
}

func requireRoles(allowed domain.RoleSet, denied error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domain.ErrMissingToken
			}
			if !allowed.Contains(user.Role) {
				metrics.GateRejectionsTotal.WithLabelValues("forbidden").Inc()
				return denied
			}
			return next(c)
		}
	}
}
