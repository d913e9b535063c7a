package entity

import (
	"strings"
	"time"
)

const (
	MinDiscountPercent = 1
	MaxDiscountPercent = 100
)

// CouponState is the lifecycle state derived from a coupon's fields.
type CouponState string

const (
	CouponActive      CouponState = "active"
	CouponExhausted   CouponState = "exhausted"
	CouponExpired     CouponState = "expired"
	CouponDeactivated CouponState = "deactivated"
)

// Coupon is a discount code with a usage cap and an expiry.
//
// CurrentUses never exceeds MaxUses, and IsActive is false once they are equal.
// Both are maintained by Redeem; callers never set IsActive directly except to
// deactivate.
type Coupon struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	MaxUses         int       `json:"maxUses"`
	CurrentUses     int       `json:"currentUses"`
	ExpiresAt       time.Time `json:"expiresAt"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       int64     `json:"createdBy"`
	IsActive        bool      `json:"isActive"`
}

// NormalizeCouponCode returns the key used for case-insensitive code lookups.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExhausted reports whether every use has been consumed.
func (c *Coupon) IsExhausted() bool {
	return c.CurrentUses >= c.MaxUses
}

// IsExpiredAt reports whether the coupon has expired at the given instant.
func (c *Coupon) IsExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// StateAt derives the lifecycle state at the given instant.
func (c *Coupon) StateAt(now time.Time) CouponState {
	switch {
	case c.IsExhausted():
		return CouponExhausted
	case c.IsExpiredAt(now):
		return CouponExpired
	case !c.IsActive:
		return CouponDeactivated
	default:
		return CouponActive
	}
}

// IsRedeemableAt reports whether one more use may be taken at now.
func (c *Coupon) IsRedeemableAt(now time.Time) bool {
	return c.StateAt(now) == CouponActive
}

// Redeem consumes one use and deactivates the coupon when the cap is hit.
// It returns false without changing anything if the coupon is exhausted.
func (c *Coupon) Redeem() bool {
	if c.IsExhausted() {
		return false
	}
	c.CurrentUses++
	if c.CurrentUses == c.MaxUses {
		c.IsActive = false
	}

	return true
}
