package repository

import (
	"context"

	"teeshop/internal/domain/entity"
)

// OrderRepository persists orders together with their items.
type OrderRepository interface {
	// Create persists the order and its items, filling in IDs and item OrderIDs.
	Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error

	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	FindItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
}
