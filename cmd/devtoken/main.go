// Command devtoken signs identity tokens accepted by the jwt auth provider,
// for calling the API locally without an external identity provider.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"teeshop/config"
	"teeshop/internal/domain/service"
	"teeshop/internal/infra/auth"

	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("sub", "", "Identity subject (required)")
	email := flag.String("email", "", "Email claim")
	name := flag.String("name", "", "Display name claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	secret := flag.String("secret", "", "Signing secret (defaults to auth.jwtSecret from config)")
	flag.Parse()

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	if *secret == "" {
		cfg, err := config.New()
		if err != nil {
			slog.Error("Failed to load config", slog.Any("error", err))
			os.Exit(1)
		}
		if cfg.Auth != nil {
			*secret = cfg.Auth.JWTSecret
		}
	}

	verifier, err := auth.NewJWTVerifier(*secret)
	if err != nil {
		slog.Error("Failed to create verifier", slog.Any("error", err))
		os.Exit(1)
	}

	token, err := verifier.IssueToken(&service.Identity{
		Subject:       *subject,
		Email:         *email,
		EmailVerified: *email != "",
		DisplayName:   *name,
	}, *ttl)
	if err != nil {
		slog.Error("Failed to issue token", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(token)
}
