package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

type tokenData struct {
	Token string `json:"token"`
}

type profileData struct {
	User domain.PublicUser `json:"user"`
}

type adminTestUser struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

type adminTestResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    adminTestUser `json:"user"`
}

// Login authenticates an administrator and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse{data=loginData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", loginData{Token: res.Token, User: res.User.Public()})
}

// Refresh issues a new token for the authenticated user.
//
// @Summary      Refresh token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=tokenData}
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	token, err := h.authService.Refresh(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Token refreshed successfully", tokenData{Token: token})
}

// Logout acknowledges a logout. Tokens are stateless and stay valid until expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), user); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

// Profile returns the authenticated user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=profileData}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	fresh, err := h.authService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", profileData{User: fresh.Public()})
}

// AdminTest confirms that the caller passed the admin gate.
//
// @Summary      Admin access check
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminTestResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/admin-test [get]
func (h *AuthHandler) AdminTest(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminTestResponse{
		Success: true,
		Message: "Admin access granted!",
		User:    adminTestUser{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role},
	})
}
