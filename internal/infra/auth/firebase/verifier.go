// Package firebase verifies Firebase Authentication ID tokens.
package firebase

import (
	"context"
	"log/slog"

	"teeshop/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type verifier struct {
	client *auth.Client
	logger *slog.Logger
}

// NewVerifier creates a Firebase-backed IdentityVerifier. An empty
// credentialsPath falls back to application default credentials.
func NewVerifier(ctx context.Context, projectID, credentialsPath string, logger *slog.Logger) (service.IdentityVerifier, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &verifier{client: client, logger: logger}, nil
}

// VerifyToken validates a Firebase ID token and extracts the identity claims.
func (v *verifier) VerifyToken(ctx context.Context, token string) (*service.Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		v.logger.DebugContext(ctx, "Firebase token rejected", slog.Any("error", err))

		return nil, errors.Wrap(service.ErrInvalidIdentityToken, err.Error())
	}

	return identityFromClaims(decoded.UID, decoded.Claims), nil
}

func identityFromClaims(uid string, claims map[string]any) *service.Identity {
	identity := &service.Identity{Subject: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.Picture = picture
	}

	return identity
}
