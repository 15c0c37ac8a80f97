package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/api/handler"
	"github.com/mitrahub/auth-api/internal/core/domain"
)

type mappedError struct {
	target  error
	code    int
	message string
}

// errorTable is checked in order. ErrAdminRequired wraps ErrForbidden, so it
// has to come first.
var errorTable = []mappedError{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrMissingToken, http.StatusUnauthorized, "Access token required"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{domain.ErrSubjectNotFound, http.StatusUnauthorized, "User not found"},
	{domain.ErrAccountDeactivated, http.StatusUnauthorized, "Account has been deactivated"},
	{domain.ErrAdminRequired, http.StatusForbidden, "Access denied. Admin access required."},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied. Insufficient permissions."},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrPartnerNotFound, http.StatusNotFound, "Partner not found"},
	{domain.ErrPartnerExists, http.StatusConflict, "User already has a partner account"},
	{domain.ErrUserExists, http.StatusConflict, "User already exists"},
	{domain.ErrRoleConflict, http.StatusConflict, "User role does not allow this operation"},
	{domain.ErrInvalidPartnerStatus, http.StatusBadRequest, "Invalid partner status"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{domain.ErrNotPartnerStaff, http.StatusBadRequest, "User is not staff of this partner"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and public message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, handler.ErrorResponse{Message: "Validation failed", Errors: ve.Errors}
	}

	// Echo's own errors (bind failures, unknown routes, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, handler.ErrorResponse{Message: "Endpoint not found", Path: c.Request().URL.Path}
		case http.StatusInternalServerError:
			logUnexpected(log, c, err)
			return he.Code, handler.ErrorResponse{Message: "Internal server error"}
		}
		return he.Code, handler.ErrorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.code, handler.ErrorResponse{Message: m.message}
		}
	}

	logUnexpected(log, c, err)
	return http.StatusInternalServerError, handler.ErrorResponse{Message: "Internal server error"}
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
