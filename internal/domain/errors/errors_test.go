package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	detailed := ErrCouponNotFound.WithDetails("coupon 9")

	assert.True(t, stderrors.Is(detailed, ErrCouponNotFound))
	assert.False(t, stderrors.Is(detailed, ErrUserNotFound))

	wrapped := pkgerrors.Wrap(detailed, "assign coupon")
	assert.True(t, stderrors.Is(wrapped, ErrCouponNotFound))

	var appErr AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "coupon 9", appErr.Details())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "discount_percent", Rule: "max", Param: "100"},
		{Field: "code", Rule: "required"},
	})

	var appErr AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Equal(t, "validation failed: discount_percent:max, code:required", err.Error())
	assert.Len(t, err.FieldErrors(), 2)
}
