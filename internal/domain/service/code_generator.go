// Package service declares the external collaborators the use cases depend on.
package service

// CouponCodeGenerator produces random coupon codes.
type CouponCodeGenerator interface {
	Generate() string
}
