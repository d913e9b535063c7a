package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/service"
	mockService "teeshop/internal/mocks/service"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubUsers resolves callers from a fixed map keyed by identity subject.
type stubUsers struct {
	usecase.UserUsecase
	bySubject map[string]*entity.User
}

func (s *stubUsers) FindByExternalAuthID(_ context.Context, subject string) (*entity.User, error) {
	if user, ok := s.bySubject[subject]; ok {
		return user, nil
	}

	return nil, errors.WithStack(domainerrors.ErrUserNotFound)
}

func newAuthMiddleware(t *testing.T, users map[string]*entity.User) (*AuthMiddleware, *mockService.MockIdentityVerifier) {
	verifier := mockService.NewMockIdentityVerifier(t)

	return NewAuthMiddleware(AuthMiddlewareParams{
		Verifier: verifier,
		Users:    &stubUsers{bySubject: users},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), verifier
}

func runAuth(m echo.MiddlewareFunc, header string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	err := m(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)

	return c, err
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	jane := &entity.User{ID: 7, Username: "jane", Role: entity.RoleUser}

	t.Run("missing header", func(t *testing.T) {
		m, _ := newAuthMiddleware(t, nil)
		_, err := runAuth(m.Authenticate, "")
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("not a bearer token", func(t *testing.T) {
		m, _ := newAuthMiddleware(t, nil)
		_, err := runAuth(m.Authenticate, "Basic abc")
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("rejected token", func(t *testing.T) {
		m, verifier := newAuthMiddleware(t, nil)
		verifier.EXPECT().VerifyToken(mock.Anything, "bad").Return(nil, service.ErrInvalidIdentityToken)

		_, err := runAuth(m.Authenticate, "Bearer bad")
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("registered caller", func(t *testing.T) {
		m, verifier := newAuthMiddleware(t, map[string]*entity.User{"uid-jane": jane})
		verifier.EXPECT().VerifyToken(mock.Anything, "good").Return(&service.Identity{Subject: "uid-jane"}, nil)

		c, err := runAuth(m.Authenticate, "Bearer good")
		require.NoError(t, err)
		assert.Equal(t, "uid-jane", deliverycontext.GetIdentity(c).Subject)
		assert.Equal(t, jane, deliverycontext.GetCaller(c))
	})

	t.Run("identity without account", func(t *testing.T) {
		m, verifier := newAuthMiddleware(t, nil)
		verifier.EXPECT().VerifyToken(mock.Anything, "fresh").Return(&service.Identity{Subject: "uid-new"}, nil)

		c, err := runAuth(m.Authenticate, "Bearer fresh")
		require.NoError(t, err)
		assert.NotNil(t, deliverycontext.GetIdentity(c))
		assert.Nil(t, deliverycontext.GetCaller(c))
	})
}

func TestAuthMiddleware_RoleGates(t *testing.T) {
	m, _ := newAuthMiddleware(t, nil)

	tests := []struct {
		name   string
		caller *entity.User
		gate   echo.MiddlewareFunc
		want   error
	}{
		{"user gate without account", nil, m.RequireUser, domainerrors.ErrUserNotRegistered},
		{"user gate with account", &entity.User{ID: 1, Role: entity.RoleUser}, m.RequireUser, nil},
		{"admin gate for user", &entity.User{ID: 1, Role: entity.RoleUser}, m.RequireAdmin, domainerrors.ErrForbidden},
		{"admin gate for admin", &entity.User{ID: 2, Role: entity.RoleAdmin}, m.RequireAdmin, nil},
		{"seller gate for creator", &entity.User{ID: 3, Role: entity.RoleCreator}, m.RequireRole(entity.RoleCreator, entity.RoleAdmin), nil},
		{"seller gate for user", &entity.User{ID: 1, Role: entity.RoleUser}, m.RequireRole(entity.RoleCreator, entity.RoleAdmin), domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if tt.caller != nil {
				deliverycontext.SetCaller(c, tt.caller)
			}

			err := tt.gate(func(echo.Context) error { return nil })(c)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}
