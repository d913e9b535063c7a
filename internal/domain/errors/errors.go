package errors

import (
	"net/http"

	"teeshop/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError carrying the same business error code, so that
// values produced by WithDetails still satisfy errors.Is against the catalogue.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// Predefined error types
var (
	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrInvalidArgument = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ARGUMENT",
		"Invalid argument",
		"",
	)

	ErrInvalidState = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATE",
		"Operation not allowed in the current state",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"Username is already taken",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"Email is already registered",
		"",
	)

	ErrUserNotRegistered = NewBaseError(
		http.StatusForbidden,
		"USER_NOT_REGISTERED",
		"Signed-in identity has no storefront account yet",
		"",
	)

	// Coupon-related errors
	ErrCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"COUPON_NOT_FOUND",
		"Coupon not found",
		"",
	)

	ErrCouponCodeExists = NewBaseError(
		http.StatusConflict,
		"COUPON_CODE_EXISTS",
		"A coupon with this code already exists",
		"",
	)

	ErrCouponNotRedeemable = NewBaseError(
		http.StatusBadRequest,
		"COUPON_NOT_REDEEMABLE",
		"Coupon is inactive, expired or fully used",
		"",
	)

	ErrUserCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_COUPON_NOT_FOUND",
		"Coupon assignment not found",
		"",
	)

	ErrCouponAlreadyUsed = NewBaseError(
		http.StatusConflict,
		"COUPON_ALREADY_USED",
		"Coupon has already been used",
		"",
	)

	// Payment-related errors
	ErrPaymentVerificationFailed = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_VERIFICATION_FAILED",
		"Payment could not be verified",
		"",
	)

	ErrPaymentGatewayFailed = NewBaseError(
		http.StatusBadGateway,
		"PAYMENT_GATEWAY_FAILED",
		"Payment provider is unavailable",
		"",
	)

	ErrPurchaseNotFound = NewBaseError(
		http.StatusNotFound,
		"PURCHASE_NOT_FOUND",
		"Coupon purchase not found",
		"",
	)

	// Moderation-related errors
	ErrApplicationNotFound = NewBaseError(
		http.StatusNotFound,
		"APPLICATION_NOT_FOUND",
		"Creator application not found",
		"",
	)

	ErrApplicationExists = NewBaseError(
		http.StatusConflict,
		"APPLICATION_EXISTS",
		"An application already exists for this user",
		"",
	)

	ErrApplicationDecided = NewBaseError(
		http.StatusBadRequest,
		"APPLICATION_ALREADY_DECIDED",
		"Application has already been decided",
		"",
	)

	ErrDesignNotFound = NewBaseError(
		http.StatusNotFound,
		"DESIGN_NOT_FOUND",
		"Design not found",
		"",
	)

	ErrDesignNotPublic = NewBaseError(
		http.StatusBadRequest,
		"DESIGN_NOT_PUBLIC",
		"Only public designs can be approved",
		"",
	)

	// Catalogue and order errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrDesignNotListed = NewBaseError(
		http.StatusBadRequest,
		"DESIGN_NOT_LISTED",
		"Products require a public, approved design",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrOrderTransition = NewBaseError(
		http.StatusBadRequest,
		"ORDER_STATUS_TRANSITION",
		"Order cannot move to the requested status",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
