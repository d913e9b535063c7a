package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderPending.CanTransitionTo(OrderPaid))
	assert.True(t, OrderPending.CanTransitionTo(OrderCancelled))
	assert.True(t, OrderPaid.CanTransitionTo(OrderProcessing))
	assert.True(t, OrderShipped.CanTransitionTo(OrderDelivered))

	assert.False(t, OrderShipped.CanTransitionTo(OrderCancelled))
	assert.False(t, OrderDelivered.CanTransitionTo(OrderPending))
	assert.False(t, OrderCancelled.CanTransitionTo(OrderPaid))
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := &OrderItem{Quantity: 3, Price: decimal.RequireFromString("19.99")}
	assert.True(t, decimal.RequireFromString("59.97").Equal(item.LineTotal()))
}
