package impl

import (
	"context"
	"time"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"

	"github.com/pkg/errors"
)

// loadRedeemable reads an unused assignment and locks its coupon. It must run
// inside a transaction; the lock is what serializes concurrent redemptions of
// the same coupon.
func loadRedeemable(ctx context.Context, factory repository.RepositoryFactory, userCouponID int64, now time.Time) (*entity.UserCoupon, *entity.Coupon, error) {
	uc, err := factory.NewUserCouponRepository().FindByID(ctx, userCouponID)
	if err != nil {
		return nil, nil, translate(err, "failed to find user coupon")
	}
	if uc.IsUsed() {
		return nil, nil, errors.Wrapf(domainerrors.ErrCouponAlreadyUsed, "user coupon %d", uc.ID)
	}

	coupon, err := factory.NewCouponRepository().FindByIDForUpdate(ctx, uc.CouponID)
	if err != nil {
		return nil, nil, translate(err, "failed to lock coupon")
	}
	if !coupon.IsRedeemableAt(now) {
		return nil, nil, couponNotRedeemable(coupon, now)
	}

	return uc, coupon, nil
}

// applyRedemption consumes one use of coupon and marks uc used against orderID.
// The caller's transaction makes the two writes one unit.
func applyRedemption(ctx context.Context, factory repository.RepositoryFactory, uc *entity.UserCoupon, coupon *entity.Coupon, orderID int64, now time.Time) error {
	if !coupon.Redeem() {
		return couponNotRedeemable(coupon, now)
	}

	if err := factory.NewUserCouponRepository().MarkUsed(ctx, uc.ID, orderID, now); err != nil {
		return translate(err, "failed to mark user coupon used")
	}
	uc.MarkUsed(orderID, now)

	if err := factory.NewCouponRepository().UpdateUsage(ctx, coupon); err != nil {
		return translate(err, "failed to update coupon usage")
	}

	return nil
}

func couponNotRedeemable(coupon *entity.Coupon, now time.Time) error {
	return errors.WithStack(domainerrors.ErrCouponNotRedeemable.WithDetails(
		"coupon " + coupon.Code + " is " + string(coupon.StateAt(now)),
	))
}
