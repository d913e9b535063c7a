package middleware

import (
	"net/http"

	domainerrors "teeshop/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StatusOf returns the status the error handler will answer err with.
// Middleware runs before the handler writes the response, so the recorded
// status is not yet available when a handler fails.
func StatusOf(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	var statusErr interface{ StatusCode() int }
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode()
	}

	return http.StatusInternalServerError
}
