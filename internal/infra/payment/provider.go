package payment

import (
	"log/slog"
	"strings"

	"teeshop/config"
	"teeshop/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	ProviderRazorpay = "razorpay"
	ProviderSandbox  = "sandbox"

	defaultRazorpayBaseURL = "https://api.razorpay.com/v1"
)

// NewPaymentGateway creates the gateway selected by payment.provider.
func NewPaymentGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	pc := cfg.Payment
	if pc == nil {
		return nil, errors.New("payment config is required")
	}

	provider := strings.ToLower(pc.Provider)
	switch provider {
	case ProviderRazorpay:
		baseURL := pc.BaseURL
		if baseURL == "" {
			baseURL = defaultRazorpayBaseURL
		}
		logger.Info("Using Razorpay payment gateway", slog.String("base_url", baseURL))

		return NewRazorpayGateway(baseURL, pc.KeyID, pc.KeySecret, pc.Timeout, logger)
	case ProviderSandbox, "":
		if pc.KeySecret == "" {
			return nil, errors.New("payment key secret is required for the sandbox gateway")
		}
		logger.Warn("Using sandbox payment gateway, payments are not real")

		return NewSandboxGateway(pc.KeyID, pc.KeySecret, logger), nil
	default:
		return nil, errors.Errorf("unsupported payment provider: %s", pc.Provider)
	}
}
