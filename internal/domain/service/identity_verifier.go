package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrInvalidIdentityToken is returned when a bearer token cannot be verified.
var ErrInvalidIdentityToken = errors.New("invalid identity token")

// Identity is what the external identity provider vouches for.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	DisplayName   string
	Picture       string
}

// IdentityVerifier verifies bearer tokens issued by the identity provider.
type IdentityVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
