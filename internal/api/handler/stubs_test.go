package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/api/middleware"
	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, u *domain.User) echo.Context {
	c.Set(middleware.ContextKeyUser, u)
	return c
}

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	profileFn func(ctx context.Context, userID string) (*domain.User, error)
	refreshFn func(ctx context.Context, user *domain.User) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) Refresh(ctx context.Context, user *domain.User) (string, error) {
	return s.refreshFn(ctx, user)
}

func (s *stubAuthService) Logout(context.Context, *domain.User) error { return nil }

type stubPartnerService struct {
	listFn   func(ctx context.Context, in ports.ListPartnersInput) (*ports.ListPartnersResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Partner, error)
	createFn func(ctx context.Context, in ports.CreatePartnerInput) (*domain.Partner, error)
	updateFn func(ctx context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error)
	deleteFn func(ctx context.Context, id string) error
	attachFn func(ctx context.Context, partnerID, userID string) (*domain.User, error)
	detachFn func(ctx context.Context, partnerID, userID string) (*domain.User, error)
}

func (s *stubPartnerService) List(ctx context.Context, in ports.ListPartnersInput) (*ports.ListPartnersResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubPartnerService) Get(ctx context.Context, id string) (*domain.Partner, error) {
	return s.getFn(ctx, id)
}

func (s *stubPartnerService) Create(ctx context.Context, in ports.CreatePartnerInput) (*domain.Partner, error) {
	return s.createFn(ctx, in)
}

func (s *stubPartnerService) Update(ctx context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubPartnerService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubPartnerService) AttachStaff(ctx context.Context, partnerID, userID string) (*domain.User, error) {
	return s.attachFn(ctx, partnerID, userID)
}

func (s *stubPartnerService) DetachStaff(ctx context.Context, partnerID, userID string) (*domain.User, error) {
	return s.detachFn(ctx, partnerID, userID)
}

type stubUserService struct {
	listFn func(ctx context.Context, page, limit int) (*ports.ListUsersResult, error)
}

func (s *stubUserService) List(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	return s.listFn(ctx, page, limit)
}
