package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

type stubAuthenticator struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return u, nil
}

func runAuth(t *testing.T, authn Authenticator, header string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth(authn)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authn := &stubAuthenticator{users: map[string]*domain.User{"tok": {ID: "u-1", Role: domain.RoleAdmin}}}

	c, called, err := runAuth(t, authn, "Bearer tok")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	u, ok := CurrentUser(c)
	if !ok || u.ID != "u-1" {
		t.Fatalf("user not set: %+v", u)
	}
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	authn := &stubAuthenticator{}
	for _, header := range []string{"", "Token abc", "Bearer", "Bearer ", "bearer tok", "Bearer a b", "Bearer  tok"} {
		_, called, err := runAuth(t, authn, header)
		if called {
			t.Fatalf("header %q: should not reach next", header)
		}
		if !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
	}
	if authn.calls != 0 {
		t.Fatalf("authenticator must not be called for malformed headers")
	}
}

func TestAuthMiddleware_PropagatesAuthenticatorErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidToken, domain.ErrSubjectNotFound, domain.ErrAccountDeactivated} {
		_, called, err := runAuth(t, &stubAuthenticator{err: want}, "Bearer tok")
		if called {
			t.Fatalf("should not reach next")
		}
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestCurrentUser_Absent(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatalf("expected no user")
	}
}
