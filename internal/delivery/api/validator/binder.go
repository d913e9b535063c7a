package validator

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BindError reports a body that could not be decoded into the request type.
type BindError struct {
	Reason string
	status int
}

func (e *BindError) Error() string {
	return "invalid request body: " + e.Reason
}

// StatusCode reports the HTTP status the error maps to.
func (e *BindError) StatusCode() int {
	if e.status == 0 {
		return http.StatusBadRequest
	}

	return e.status
}

// StrictBinder binds path and query parameters like echo's default binder,
// but decodes JSON bodies with unknown fields rejected.
type StrictBinder struct {
	echo.DefaultBinder
}

// NewStrictBinder returns a binder for echo.Echo.Binder.
func NewStrictBinder() *StrictBinder {
	return &StrictBinder{}
}

// Bind implements echo.Binder.
func (b *StrictBinder) Bind(i any, c echo.Context) error {
	if err := b.BindPathParams(c, i); err != nil {
		return errors.WithStack(err)
	}

	req := c.Request()
	switch req.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		return errors.WithStack(b.BindQueryParams(c, i))
	}

	if req.ContentLength == 0 || req.Body == nil {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
	if mediaType != echo.MIMEApplicationJSON {
		return &BindError{Reason: "content type must be application/json", status: http.StatusUnsupportedMediaType}
	}

	return decodeStrict(req.Body, i)
}

func decodeStrict(body io.Reader, i any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &BindError{Reason: "body too large", status: http.StatusRequestEntityTooLarge}
		}

		return &BindError{Reason: err.Error(), status: http.StatusBadRequest}
	}

	if dec.More() {
		return &BindError{Reason: "body must contain a single JSON object", status: http.StatusBadRequest}
	}

	return nil
}
