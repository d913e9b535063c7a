// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/service"
)

// --- Input DTOs ---

// CreateCouponInput defines the data required to create a coupon.
type CreateCouponInput struct {
	Code            string
	DiscountPercent int
	MaxUses         int
	ExpiresAt       time.Time
	CreatedBy       int64
}

// PurchaseCouponInput requests a payment order for a coupon of the given tier.
// Amount is optional; when set it must match the tier price.
type PurchaseCouponInput struct {
	UserID          int64
	DiscountPercent int
	Amount          *int64
}

// CompletePurchaseInput is the signed payment callback relayed by the client.
type CompletePurchaseInput struct {
	PaymentID       string
	OrderID         string
	Signature       string
	UserID          int64
	DiscountPercent int
}

// --- Output DTOs ---

// PurchaseResult is the coupon minted for a completed purchase. Replayed is
// true when the callback had already been processed.
type PurchaseResult struct {
	Purchase   *entity.CouponPurchase
	UserCoupon *entity.UserCoupon
	Coupon     *entity.Coupon
	Replayed   bool
}

// CouponUsecase manages coupon lifecycle and assignment.
type CouponUsecase interface {
	CreateCoupon(ctx context.Context, input CreateCouponInput) (*entity.Coupon, error)
	GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error)
	ListCoupons(ctx context.Context) ([]*entity.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*entity.Coupon, error)
	DeactivateCoupon(ctx context.Context, id int64) (*entity.Coupon, error)

	// CouponQRCode renders the coupon code as a PNG.
	CouponQRCode(ctx context.Context, id int64) ([]byte, error)

	AssignCouponToUser(ctx context.Context, userID, couponID int64) (*entity.UserCoupon, error)
	GetUserCoupon(ctx context.Context, id int64) (*entity.UserCoupon, error)
	ListUserCoupons(ctx context.Context, userID int64) ([]*entity.UserCouponWithCoupon, error)

	// RedeemUserCoupon marks the assignment used against orderID and consumes
	// one use of its coupon, as one unit.
	RedeemUserCoupon(ctx context.Context, userCouponID, orderID int64) (*entity.UserCoupon, error)
}

// PurchaseUsecase sells single-use coupons through the payment gateway.
type PurchaseUsecase interface {
	// PurchaseCoupon prices the tier and opens a gateway order. No coupon
	// exists until CompletePurchase succeeds.
	PurchaseCoupon(ctx context.Context, input PurchaseCouponInput) (*service.PaymentOrder, error)

	// CompletePurchase verifies the payment and mints one coupon assigned to
	// the buyer. Repeated callbacks for the same gateway order return the
	// first result.
	CompletePurchase(ctx context.Context, input CompletePurchaseInput) (*PurchaseResult, error)
}
