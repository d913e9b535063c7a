// Package middleware holds the API-specific echo middleware.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"teeshop/internal/delivery/api/response"
	"teeshop/internal/delivery/api/validator"
	deliverycontext "teeshop/internal/delivery/context"
	domainerrors "teeshop/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.ValidationFailed(c, validationErr.Fields)

		return
	}

	var bindErr *validator.BindError
	if errors.As(err, &bindErr) {
		_ = response.Error(c, bindErr.StatusCode(), "INVALID_BODY", "Request body could not be decoded", bindErr.Reason)

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.log(c).Error("Request failed", slog.Any("error", err), slog.String("code", appErr.ErrorCode()))
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.log(c).Error("Request failed", slog.Any("error", err))
			_ = response.InternalServerError(c)

			return
		}

		_ = response.Error(c, httpErr.Code, httpErrorCode(httpErr.Code), message, "")

		return
	}

	// Unknown errors never leak their text to the client.
	m.log(c).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c)
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// httpErrorCode turns a status such as 405 into "METHOD_NOT_ALLOWED".
func httpErrorCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "HTTP_ERROR"
	}

	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
