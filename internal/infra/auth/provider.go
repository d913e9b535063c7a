package auth

import (
	"context"
	"log/slog"
	"strings"

	"teeshop/config"
	"teeshop/internal/domain/service"
	"teeshop/internal/infra/auth/firebase"

	"github.com/pkg/errors"
)

const (
	ProviderFirebase = "firebase"
	ProviderJWT      = "jwt"
)

// NewIdentityVerifier creates the verifier selected by auth.provider.
func NewIdentityVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	provider := ProviderJWT
	if cfg.Auth != nil && cfg.Auth.Provider != "" {
		provider = strings.ToLower(cfg.Auth.Provider)
	}

	switch provider {
	case ProviderFirebase:
		if cfg.Firebase == nil {
			return nil, errors.New("firebase config is required for the firebase auth provider")
		}
		logger.Info("Using Firebase identity verifier", slog.String("projectId", cfg.Firebase.ProjectID))

		return firebase.NewVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath, logger)
	case ProviderJWT:
		logger.Warn("Using self-signed JWT identity verifier, not for production")

		var secret string
		if cfg.Auth != nil {
			secret = cfg.Auth.JWTSecret
		}

		return NewJWTVerifier(secret)
	default:
		return nil, errors.Errorf("unsupported auth provider: %s", provider)
	}
}
