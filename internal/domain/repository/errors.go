// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "github.com/pkg/errors"

// Persistence-level errors shared by every store implementation.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateUsername     = errors.New("username already exists")
	ErrDuplicateEmail        = errors.New("email already exists")
	ErrDuplicateExternalAuth = errors.New("external auth id already linked")

	ErrApplicationNotFound  = errors.New("creator application not found")
	ErrDuplicateApplication = errors.New("creator application already exists for user")

	ErrDesignNotFound  = errors.New("design not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrDuplicateCouponCode = errors.New("coupon code already exists")

	ErrUserCouponNotFound    = errors.New("user coupon not found")
	ErrUserCouponAlreadyUsed = errors.New("user coupon already used")

	ErrPurchaseNotFound  = errors.New("coupon purchase not found")
	ErrDuplicatePurchase = errors.New("coupon purchase already exists for gateway order")
)
