// Package auth provides concrete implementations of the identity verifier.
package auth

import (
	"context"
	"time"

	"teeshop/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// IdentityClaims is the HS256 token payload accepted by the jwt provider. It
// mirrors the fields an external identity provider vouches for.
type IdentityClaims struct {
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies self-issued HS256 tokens. It stands in for the
// external identity provider in local and test environments.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier is the constructor for JWTVerifier.
func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &JWTVerifier{secret: []byte(secret)}, nil
}

// VerifyToken checks the signature and expiry and returns the identity.
func (v *JWTVerifier) VerifyToken(_ context.Context, token string) (*service.Identity, error) {
	claims := &IdentityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(service.ErrInvalidIdentityToken, errString(err))
	}

	if claims.Subject == "" {
		return nil, errors.Wrap(service.ErrInvalidIdentityToken, "missing subject")
	}

	return &service.Identity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		DisplayName:   claims.Name,
		Picture:       claims.Picture,
	}, nil
}

// IssueToken signs a token for identity valid for ttl.
func (v *JWTVerifier) IssueToken(identity *service.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
		Name:          identity.DisplayName,
		Picture:       identity.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

func errString(err error) string {
	if err == nil {
		return "token not valid"
	}

	return err.Error()
}
