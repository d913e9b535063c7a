package entity

import "time"

// UserCoupon assigns a Coupon to a User. UsedAt and OrderID are set together
// exactly once, when the assignment is redeemed.
type UserCoupon struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	CouponID  int64      `json:"couponId"`
	CreatedAt time.Time  `json:"createdAt"`
	UsedAt    *time.Time `json:"usedAt"`
	OrderID   *int64     `json:"orderId"`
}

// IsUsed reports whether the assignment has been redeemed.
func (uc *UserCoupon) IsUsed() bool {
	return uc.UsedAt != nil
}

// MarkUsed records the redemption against an order.
func (uc *UserCoupon) MarkUsed(orderID int64, at time.Time) {
	uc.UsedAt = &at
	uc.OrderID = &orderID
}

// UserCouponWithCoupon is a UserCoupon joined with its Coupon.
type UserCouponWithCoupon struct {
	UserCoupon
	Coupon *Coupon `json:"coupon"`
}
