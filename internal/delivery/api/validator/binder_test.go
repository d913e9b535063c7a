package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redeemRequest struct {
	ID      int64 `param:"id"`
	OrderID int64 `json:"orderId"`
}

type listRequest struct {
	UserID int64 `query:"userId"`
}

func bindContext(method, target, contentType, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}

	return e.NewContext(req, httptest.NewRecorder())
}

func TestStrictBinder_Bind(t *testing.T) {
	binder := NewStrictBinder()

	t.Run("path params and body", func(t *testing.T) {
		c := bindContext(http.MethodPost, "/api/user-coupons/4/use", echo.MIMEApplicationJSON, `{"orderId": 9}`)
		c.SetParamNames("id")
		c.SetParamValues("4")

		var req redeemRequest
		require.NoError(t, binder.Bind(&req, c))
		assert.Equal(t, redeemRequest{ID: 4, OrderID: 9}, req)
	})

	t.Run("query params on GET", func(t *testing.T) {
		var req listRequest
		require.NoError(t, binder.Bind(&req, bindContext(http.MethodGet, "/api/designs?userId=12", "", "")))
		assert.Equal(t, int64(12), req.UserID)
	})

	t.Run("empty body", func(t *testing.T) {
		var req redeemRequest
		require.NoError(t, binder.Bind(&req, bindContext(http.MethodPost, "/", echo.MIMEApplicationJSON, "")))
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"unknown field", echo.MIMEApplicationJSON, `{"orderId": 1, "admin": true}`, http.StatusBadRequest},
		{"wrong type", echo.MIMEApplicationJSON, `{"orderId": "one"}`, http.StatusBadRequest},
		{"trailing document", echo.MIMEApplicationJSON, `{"orderId": 1}{"orderId": 2}`, http.StatusBadRequest},
		{"form body", echo.MIMEApplicationForm, `orderId=1`, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req redeemRequest
			err := binder.Bind(&req, bindContext(http.MethodPost, "/", tt.contentType, tt.body))

			var bindErr *BindError
			require.True(t, errors.As(err, &bindErr), "got %v", err)
			assert.Equal(t, tt.wantStatus, bindErr.StatusCode())
		})
	}
}
