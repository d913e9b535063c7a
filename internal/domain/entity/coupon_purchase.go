package entity

import "time"

// PurchaseStatus tracks a paid coupon purchase through the payment gateway.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
)

// CouponPurchase records one gateway order for a coupon. GatewayOrderID is
// unique, which is what makes the payment callback idempotent.
type CouponPurchase struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"userId"`
	DiscountPercent int            `json:"discountPercent"`
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	GatewayOrderID  string         `json:"gatewayOrderId"`
	PaymentID       *string        `json:"paymentId,omitempty"`
	Status          PurchaseStatus `json:"status"`
	UserCouponID    *int64         `json:"userCouponId,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
}
