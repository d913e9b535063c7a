package impl

import (
	"context"
	"testing"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_CreateOrder_PricesFromCatalogue(t *testing.T) {
	f := newMemoryFixture()
	creator := f.createUser(t, "artist", entity.RoleCreator)
	customer := f.createUser(t, "customer", entity.RoleUser)
	product := f.createListedProduct(t, creator, "19.99")
	srv := f.orderService()
	ctx := context.Background()

	details, err := srv.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID:          customer.ID,
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 3, Color: "black", Size: "M"}},
		ShippingAddress: "221B Baker Street",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, details.Order.Status)
	assert.True(t, decimal.RequireFromString("59.97").Equal(details.Order.Total))
	require.Len(t, details.Items, 1)
	assert.Equal(t, details.Order.ID, details.Items[0].OrderID)
	assert.Nil(t, details.UserCoupon)

	got, err := srv.GetOrder(ctx, details.Order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	orders, err := srv.ListUserOrders(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	f := newMemoryFixture()
	creator := f.createUser(t, "artist", entity.RoleCreator)
	customer := f.createUser(t, "customer", entity.RoleUser)
	product := f.createListedProduct(t, creator, "10.00")
	srv := f.orderService()
	ctx := context.Background()

	base := usecase.CreateOrderInput{UserID: customer.ID, ShippingAddress: "1 Main St", PaymentMethod: "card"}

	tests := []struct {
		name   string
		items  []usecase.OrderItemInput
		target error
	}{
		{"no items", nil, domainerrors.ErrInvalidArgument},
		{"zero quantity", []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 0, Color: "black", Size: "M"}}, domainerrors.ErrInvalidArgument},
		{"color not offered", []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1, Color: "pink", Size: "M"}}, domainerrors.ErrInvalidArgument},
		{"unknown product", []usecase.OrderItemInput{{ProductID: 404, Quantity: 1}}, domainerrors.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			input.Items = tt.items
			_, err := srv.CreateOrder(ctx, input)
			assert.True(t, errors.Is(err, tt.target))
		})
	}

	orders, err := srv.ListUserOrders(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrder_WithCoupon(t *testing.T) {
	f := newMemoryFixture()
	admin := f.createUser(t, "admin", entity.RoleAdmin)
	creator := f.createUser(t, "artist", entity.RoleCreator)
	customer := f.createUser(t, "customer", entity.RoleUser)
	product := f.createListedProduct(t, creator, "20.00")
	coupons := f.couponService()
	srv := f.orderService()
	ctx := context.Background()

	coupon := f.createCoupon(t, "QUARTER", 25, 1, admin.ID)
	uc, err := coupons.AssignCouponToUser(ctx, customer.ID, coupon.ID)
	require.NoError(t, err)

	details, err := srv.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID:          customer.ID,
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2, Color: "white", Size: "L"}},
		ShippingAddress: "1 Main St",
		PaymentMethod:   "upi",
		UserCouponID:    &uc.ID,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("30.00").Equal(details.Order.Total))
	require.NotNil(t, details.UserCoupon)
	require.NotNil(t, details.UserCoupon.OrderID)
	assert.Equal(t, details.Order.ID, *details.UserCoupon.OrderID)

	after, err := coupons.GetCoupon(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentUses)
	assert.False(t, after.IsActive)
	assert.Len(t, f.publisher.ofType(service.EventCouponRedeemed), 1)

	// the same assignment cannot discount a second order
	_, err = srv.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID:          customer.ID,
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1, Color: "white", Size: "L"}},
		ShippingAddress: "1 Main St",
		UserCouponID:    &uc.ID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrCouponAlreadyUsed))

	orders, err := srv.ListUserOrders(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_CreateOrder_FullDiscountIsFree(t *testing.T) {
	f := newMemoryFixture()
	admin := f.createUser(t, "admin", entity.RoleAdmin)
	creator := f.createUser(t, "artist", entity.RoleCreator)
	customer := f.createUser(t, "customer", entity.RoleUser)
	product := f.createListedProduct(t, creator, "24.50")
	coupons := f.couponService()
	srv := f.orderService()
	ctx := context.Background()

	coupon := f.createCoupon(t, "ONTHEHOUSE", 100, 1, admin.ID)
	uc, err := coupons.AssignCouponToUser(ctx, customer.ID, coupon.ID)
	require.NoError(t, err)

	details, err := srv.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID:          customer.ID,
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2, Color: "black", Size: "M"}},
		ShippingAddress: "1 Main St",
		UserCouponID:    &uc.ID,
	})
	require.NoError(t, err)
	assert.True(t, details.Order.Total.IsZero(), "total %s", details.Order.Total)
	require.NotNil(t, details.UserCoupon.UsedAt)

	after, err := coupons.GetCoupon(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentUses)
}

func TestOrderService_CreateOrder_ForeignCouponRollsBack(t *testing.T) {
	f := newMemoryFixture()
	admin := f.createUser(t, "admin", entity.RoleAdmin)
	creator := f.createUser(t, "artist", entity.RoleCreator)
	owner := f.createUser(t, "owner", entity.RoleUser)
	thief := f.createUser(t, "thief", entity.RoleUser)
	product := f.createListedProduct(t, creator, "20.00")
	coupons := f.couponService()
	srv := f.orderService()
	ctx := context.Background()

	coupon := f.createCoupon(t, "MINE", 10, 1, admin.ID)
	uc, err := coupons.AssignCouponToUser(ctx, owner.ID, coupon.ID)
	require.NoError(t, err)

	_, err = srv.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID:          thief.ID,
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1, Color: "black", Size: "M"}},
		ShippingAddress: "1 Main St",
		UserCouponID:    &uc.ID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	orders, err := srv.ListUserOrders(ctx, thief.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	unused, err := coupons.GetUserCoupon(ctx, uc.ID)
	require.NoError(t, err)
	assert.False(t, unused.IsUsed())
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newMemoryFixture()
	customer := f.createUser(t, "customer", entity.RoleUser)
	srv := f.orderService()
	ctx := context.Background()
	order := f.createOrder(t, customer.ID)

	for _, next := range []entity.OrderStatus{entity.OrderPaid, entity.OrderProcessing, entity.OrderShipped} {
		updated, err := srv.UpdateOrderStatus(ctx, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	_, err := srv.UpdateOrderStatus(ctx, order.ID, entity.OrderCancelled)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderTransition))

	_, err = srv.UpdateOrderStatus(ctx, order.ID, entity.OrderStatus("lost"))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	_, err = srv.UpdateOrderStatus(ctx, 404, entity.OrderPaid)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
