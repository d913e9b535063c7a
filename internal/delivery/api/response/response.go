// Package response renders the JSON envelopes of the storefront API.
package response

import (
	"net/http"

	deliverycontext "teeshop/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details string `json:"details,omitempty"` // Additional error context (only for 4xx errors)
	Fields  any    `json:"fields,omitempty"`  // Per-field validation failures
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Created returns a 201 response
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// OK returns a 200 response
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

// Error returns an error response. Details are dropped for 5xx and for
// authentication or authorization failures.
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		details = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

// ValidationFailed returns a 400 listing the rejected fields.
func ValidationFailed(c echo.Context, fields any) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: &ErrorInfo{
			Code:    "VALIDATION_FAILED",
			Message: "Input validation failed",
			Fields:  fields,
		},
		Meta: meta(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later", "")
}
