package payment

import (
	"context"
	"log/slog"

	"teeshop/internal/domain/service"

	"github.com/segmentio/ksuid"
)

// sandboxGateway issues orders locally and verifies signatures made with Sign
// and the configured secret. It never moves money.
type sandboxGateway struct {
	keyID     string
	keySecret string
	logger    *slog.Logger
}

// NewSandboxGateway creates an offline gateway for development and tests.
func NewSandboxGateway(keyID, keySecret string, logger *slog.Logger) service.PaymentGateway {
	return &sandboxGateway{keyID: keyID, keySecret: keySecret, logger: logger}
}

func (g *sandboxGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, _ map[string]string) (*service.PaymentOrder, error) {
	order := &service.PaymentOrder{
		OrderID:  "order_" + ksuid.New().String(),
		Amount:   amount,
		Currency: currency,
		KeyID:    g.keyID,
		Receipt:  receipt,
	}

	g.logger.DebugContext(ctx, "[SandboxPayment] Order created",
		slog.String("order_id", order.OrderID),
		slog.Int64("amount", amount),
	)

	return order, nil
}

func (g *sandboxGateway) VerifyPayment(_ context.Context, confirmation *service.PaymentConfirmation) error {
	if !verifySignature(g.keySecret, confirmation.OrderID, confirmation.PaymentID, confirmation.Signature) {
		return service.ErrPaymentSignatureMismatch
	}

	return nil
}
