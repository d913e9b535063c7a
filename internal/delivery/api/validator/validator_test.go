package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type couponRequest struct {
	Code            string   `json:"code" validate:"required,min=3,max=32"`
	DiscountPercent int      `json:"discountPercent" validate:"required,min=1,max=100"`
	Tags            []string `json:"tags" validate:"omitempty,dive,min=2"`
	Page            int      `query:"page" validate:"omitempty,gte=1"`
	Internal        string   `json:"-"`
}

func TestCustomValidator_Validate(t *testing.T) {
	cv := New()

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, cv.Validate(&couponRequest{Code: "WELCOME5", DiscountPercent: 5}))
	})

	t.Run("reports every failing field by wire name", func(t *testing.T) {
		err := cv.Validate(&couponRequest{Code: "AB", DiscountPercent: 101, Tags: []string{"x"}, Page: -1})

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, 400, vErr.StatusCode())

		byField := make(map[string]FieldError, len(vErr.Fields))
		for _, f := range vErr.Fields {
			byField[f.Field] = f
		}

		require.Len(t, byField, 4)
		assert.Equal(t, FieldError{Field: "code", Rule: "min", Param: "3", Message: "must be at least 3"}, byField["code"])
		assert.Equal(t, "max", byField["discountPercent"].Rule)
		assert.Equal(t, "min", byField["tags[0]"].Rule)
		assert.Equal(t, "must be greater than or equal to 1", byField["page"].Message)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := cv.Validate(&couponRequest{DiscountPercent: 10})

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "is required", vErr.Fields[0].Message)
		assert.Contains(t, vErr.Error(), "code: is required")
	})
}
