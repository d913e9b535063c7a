package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError is an AppError carrying a per-field error list for 400 responses.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError from the rejected fields.
func NewValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", f.Field, f.Rule))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return ErrValidationFailed.Message()
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return e.Error()
}

// FieldErrors exposes the structured list for response rendering.
func (e *ValidationError) FieldErrors() []FieldError {
	return e.Fields
}
