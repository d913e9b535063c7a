package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"teeshop/internal/domain/service"

	"github.com/pkg/errors"
)

const maxErrorBodyBytes = 4 << 10

type razorpayGateway struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// NewRazorpayGateway creates a gateway talking to the Razorpay Orders API.
func NewRazorpayGateway(baseURL, keyID, keySecret string, timeout time.Duration, logger *slog.Logger) (service.PaymentGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay key id and secret must be provided")
	}

	return &razorpayGateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// CreateOrder registers an order with the gateway.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*service.PaymentOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "razorpay create order request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		g.logger.WarnContext(ctx, "Razorpay rejected order creation",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(detail)),
		)

		return nil, errors.Errorf("razorpay create order returned status %d", resp.StatusCode)
	}

	var created createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, errors.Wrap(err, "failed to decode razorpay order")
	}
	if created.ID == "" {
		return nil, errors.New("razorpay order response has no id")
	}

	return &service.PaymentOrder{
		OrderID:  created.ID,
		Amount:   created.Amount,
		Currency: created.Currency,
		KeyID:    g.keyID,
		Receipt:  created.Receipt,
	}, nil
}

// VerifyPayment checks the checkout callback signature against the key secret.
func (g *razorpayGateway) VerifyPayment(_ context.Context, confirmation *service.PaymentConfirmation) error {
	if !verifySignature(g.keySecret, confirmation.OrderID, confirmation.PaymentID, confirmation.Signature) {
		return service.ErrPaymentSignatureMismatch
	}

	return nil
}
