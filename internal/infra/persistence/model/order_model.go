package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	UserID          int64           `gorm:"index;not null"`
	Status          string          `gorm:"type:varchar(16);not null;default:pending"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingAddress string          `gorm:"type:text;not null"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null"`
	CreatedAt       time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"index;not null"`
	ProductID int64           `gorm:"not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	Color     string          `gorm:"type:varchar(30)"`
	Size      string          `gorm:"type:varchar(10)"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
