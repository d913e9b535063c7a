package usecase

import (
	"context"

	"teeshop/internal/domain/entity"
)

// OrderItemInput is one requested product line.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	Color     string
	Size      string
}

// CreateOrderInput defines a new order. UserCouponID, when set, applies that
// coupon's discount and redeems it against the new order.
type CreateOrderInput struct {
	UserID          int64
	Items           []OrderItemInput
	ShippingAddress string
	PaymentMethod   string
	UserCouponID    *int64
}

// OrderDetails is an order with its items and, if one was applied, the
// redeemed coupon assignment.
type OrderDetails struct {
	Order      *entity.Order
	Items      []*entity.OrderItem
	UserCoupon *entity.UserCoupon
}

// OrderUsecase manages customer orders.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDetails, error)
	GetOrder(ctx context.Context, id int64) (*OrderDetails, error)
	ListUserOrders(ctx context.Context, userID int64) ([]*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error)
}
