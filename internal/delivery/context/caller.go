package context

import (
	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	keyIdentity ContextKey = "identity"
	keyCaller   ContextKey = "caller"
)

// SetIdentity stores the verified identity of the bearer token.
func SetIdentity(c echo.Context, identity *service.Identity) {
	c.Set(string(keyIdentity), identity)
}

// GetIdentity returns the verified identity, or nil for anonymous requests.
func GetIdentity(c echo.Context) *service.Identity {
	identity, _ := c.Get(string(keyIdentity)).(*service.Identity)

	return identity
}

// SetCaller stores the storefront user behind the request.
func SetCaller(c echo.Context, user *entity.User) {
	c.Set(string(keyCaller), user)
}

// GetCaller returns the storefront user behind the request, or nil when the
// identity has no account yet.
func GetCaller(c echo.Context) *entity.User {
	user, _ := c.Get(string(keyCaller)).(*entity.User)

	return user
}
