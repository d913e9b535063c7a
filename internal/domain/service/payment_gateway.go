package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrPaymentSignatureMismatch is returned when a payment callback signature does not verify.
var ErrPaymentSignatureMismatch = errors.New("payment signature mismatch")

// PaymentOrder is the gateway-side order the client completes payment against.
// Amount is in the currency's minor unit.
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
	Receipt  string `json:"receipt,omitempty"`
}

// PaymentConfirmation is the signed payload the client relays after paying.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	// CreateOrder registers a payment order for amount (minor units).
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*PaymentOrder, error)

	// VerifyPayment checks the confirmation signature, returning
	// ErrPaymentSignatureMismatch when it does not match.
	VerifyPayment(ctx context.Context, confirmation *PaymentConfirmation) error
}
