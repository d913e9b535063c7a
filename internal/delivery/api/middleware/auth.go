package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Verifier service.IdentityVerifier
	Users    usecase.UserUsecase
	Logger   *slog.Logger
}

// AuthMiddleware authenticates bearer tokens and gates routes by role.
type AuthMiddleware struct {
	verifier service.IdentityVerifier
	users    usecase.UserUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: params.Verifier,
		users:    params.Users,
		logger:   params.Logger,
	}
}

// Authenticate verifies the bearer token and resolves the storefront user
// behind it. Identities without an account pass through with no caller set,
// so that they can reach the sync endpoint.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return errors.WithStack(domainerrors.ErrUnauthorized.WithDetails("authorization header is missing"))
		}

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			return errors.WithStack(domainerrors.ErrUnauthorized.WithDetails("authorization must be a bearer token"))
		}

		ctx := c.Request().Context()
		identity, err := m.verifier.VerifyToken(ctx, strings.TrimSpace(token))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Token rejected", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrUnauthorized, "invalid or expired token")
		}
		deliverycontext.SetIdentity(c, identity)

		user, err := m.users.FindByExternalAuthID(ctx, identity.Subject)
		switch {
		case err == nil:
			deliverycontext.SetCaller(c, user)
		case !errors.Is(err, domainerrors.ErrUserNotFound):
			return errors.Wrap(err, "failed to resolve caller")
		}

		return next(c)
	}
}

// RequireUser rejects identities that have not synced an account yet.
// It must be used after Authenticate.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetCaller(c) == nil {
			return errors.WithStack(domainerrors.ErrUserNotRegistered)
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's role.
// It must be used after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := deliverycontext.GetCaller(c)
			if caller == nil {
				return errors.WithStack(domainerrors.ErrUserNotRegistered)
			}
			if !allowed.Contains(caller.Role) {
				return errors.WithStack(domainerrors.ErrForbidden.WithDetails(
					"requires role " + strings.Join(allowed.ToStrings(), " or "),
				))
			}

			return next(c)
		}
	}
}

// RequireAdmin is RequireRole(admin).
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)(next)
}
