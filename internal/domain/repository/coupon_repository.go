package repository

import (
	"context"
	"time"

	"teeshop/internal/domain/entity"
)

// CouponRepository persists coupons. Codes are unique case-insensitively and
// the store rejects a duplicate with ErrDuplicateCouponCode, which makes the
// uniqueness check and the insert a single step.
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindByID(ctx context.Context, id int64) (*entity.Coupon, error)

	// FindByIDForUpdate reads a coupon and, inside a transaction, locks it until commit.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Coupon, error)

	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	List(ctx context.Context) ([]*entity.Coupon, error)

	// UpdateUsage writes CurrentUses and IsActive.
	UpdateUsage(ctx context.Context, coupon *entity.Coupon) error

	// Deactivate sets IsActive to false.
	Deactivate(ctx context.Context, id int64) error
}

// UserCouponRepository persists coupon assignments.
type UserCouponRepository interface {
	Create(ctx context.Context, uc *entity.UserCoupon) error
	FindByID(ctx context.Context, id int64) (*entity.UserCoupon, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.UserCoupon, error)

	// MarkUsed sets UsedAt and OrderID only if the assignment is still unused,
	// returning ErrUserCouponAlreadyUsed otherwise.
	MarkUsed(ctx context.Context, id, orderID int64, usedAt time.Time) error
}

// CouponPurchaseRepository persists paid coupon purchases keyed by gateway order id.
type CouponPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.CouponPurchase) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.CouponPurchase, error)

	// FindByGatewayOrderIDForUpdate reads a purchase and, inside a transaction, locks it until commit.
	FindByGatewayOrderIDForUpdate(ctx context.Context, gatewayOrderID string) (*entity.CouponPurchase, error)

	// Complete marks a purchase as completed with the minted assignment.
	Complete(ctx context.Context, id int64, paymentID string, userCouponID int64, completedAt time.Time) error
}
