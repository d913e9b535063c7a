package model

import "time"

// CouponModel mirrors the 'coupons' table. CodeKey is the normalized code and
// carries the unique index.
type CouponModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Code            string    `gorm:"type:varchar(64);not null"`
	CodeKey         string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	DiscountPercent int       `gorm:"not null;check:discount_percent BETWEEN 1 AND 100"`
	MaxUses         int       `gorm:"not null;check:max_uses > 0"`
	CurrentUses     int       `gorm:"not null;default:0;check:current_uses <= max_uses"`
	ExpiresAt       time.Time `gorm:"not null"`
	CreatedBy       int64     `gorm:"not null"`
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CouponModel) TableName() string {
	return "coupons"
}

// UserCouponModel mirrors the 'user_coupons' table.
type UserCouponModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	UserID    int64      `gorm:"index;not null"`
	CouponID  int64      `gorm:"index;not null"`
	UsedAt    *time.Time
	OrderID   *int64
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserCouponModel) TableName() string {
	return "user_coupons"
}

// CouponPurchaseModel mirrors the 'coupon_purchases' table.
type CouponPurchaseModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	UserID          int64   `gorm:"index;not null"`
	DiscountPercent int     `gorm:"not null"`
	Amount          int64   `gorm:"not null"`
	Currency        string  `gorm:"type:varchar(3);not null"`
	GatewayOrderID  string  `gorm:"type:varchar(64);uniqueIndex;not null"`
	PaymentID       *string `gorm:"type:varchar(64)"`
	Status          string  `gorm:"type:varchar(16);not null;default:pending"`
	UserCouponID    *int64
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// TableName explicitly sets the table name for GORM.
func (CouponPurchaseModel) TableName() string {
	return "coupon_purchases"
}

// All lists every model for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&CreatorApplicationModel{},
		&DesignModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
		&CouponModel{},
		&UserCouponModel{},
		&CouponPurchaseModel{},
	}
}
