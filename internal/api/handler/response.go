package handler

import "github.com/labstack/echo/v4"

// successResponse is the envelope of every successful API response.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed API response.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Path    string       `json:"path,omitempty"`
}

// errorResponse aliases ErrorResponse for the swagger annotations.
type errorResponse = ErrorResponse

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, successResponse{Success: true, Message: message, Data: data})
}
