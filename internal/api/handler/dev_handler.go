//go:build dev

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/ports"
)

// DevHandler serves the development-only account tooling. It is compiled only
// with the dev build tag and mounted only when ENV=development.
type DevHandler struct {
	devService ports.DevService
}

func NewDevHandler(devService ports.DevService) *DevHandler {
	return &DevHandler{devService: devService}
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type debugUsersData struct {
	Total int            `json:"total"`
	Users []userListItem `json:"users"`
}

func (h *DevHandler) DebugUsers(c echo.Context) error {
	users, err := h.devService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	items := toUserListItems(users)
	return respond(c, http.StatusOK, "", debugUsersData{Total: len(items), Users: items})
}

func (h *DevHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.devService.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Password reset successfully", nil)
}
