package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, user *domain.User) (bool, error) {
	t.Helper()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if user != nil {
		c.Set(ContextKeyUser, user)
	}
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestRequireRoles_Allows(t *testing.T) {
	called, err := runWithRole(t, RequireRoles(domain.RoleStaff, domain.RoleMitra), &domain.User{Role: domain.RoleMitra})
	if err != nil || !called {
		t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
	}
}

func TestRequireRoles_Forbids(t *testing.T) {
	called, err := runWithRole(t, RequireRoles(domain.RoleStaff), &domain.User{Role: domain.RoleCustomer})
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_IgnoresUnknownRoles(t *testing.T) {
	_, err := runWithRole(t, RequireRoles(domain.Role("root")), &domain.User{Role: domain.Role("root")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("unknown roles must never grant access, got %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	for role, allowed := range map[domain.Role]bool{
		domain.RoleSuperadmin: true,
		domain.RoleAdmin:      true,
		domain.RoleStaff:      false,
		domain.RoleMitra:      false,
		domain.RoleCustomer:   false,
		domain.RoleDevice:     false,
	} {
		called, err := runWithRole(t, RequireAdmin(), &domain.User{Role: role})
		if called != allowed {
			t.Fatalf("role %s: called=%v want %v", role, called, allowed)
		}
		if !allowed && !errors.Is(err, domain.ErrAdminRequired) {
			t.Fatalf("role %s: expected ErrAdminRequired, got %v", role, err)
		}
		if !allowed && !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: ErrAdminRequired must be a Forbidden", role)
		}
	}
}

func TestRequireRoles_WithoutGate(t *testing.T) {
	called, err := runWithRole(t, RequireAdmin(), nil)
	if called || !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken without a resolved user, got %v", err)
	}
}
