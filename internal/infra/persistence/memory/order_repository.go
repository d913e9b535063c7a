package memory

import (
	"context"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type orderRepository struct {
	store *Store
	scope *txScope
}

// NewOrderRepository returns an OrderRepository backed by the store.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

// Create inserts the order and then its items. Outside a transaction a failed
// item insert leaves the order behind; callers wanting atomicity use the
// transaction manager.
func (repo *orderRepository) Create(_ context.Context, order *entity.Order, items []*entity.OrderItem) error {
	now := repo.store.now()
	if err := repo.store.orders.insert(repo.scope, order, now, nil); err != nil {
		return err
	}

	for _, item := range items {
		item.OrderID = order.ID
		if err := repo.store.orderItems.insert(repo.scope, item, now, nil); err != nil {
			return err
		}
	}

	return nil
}

func (repo *orderRepository) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	order, ok := repo.store.orders.get(id)
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (repo *orderRepository) FindItems(_ context.Context, orderID int64) ([]*entity.OrderItem, error) {
	return repo.store.orderItems.list(func(i *entity.OrderItem) bool { return i.OrderID == orderID }), nil
}

func (repo *orderRepository) ListByUser(_ context.Context, userID int64) ([]*entity.Order, error) {
	return repo.store.orders.list(func(o *entity.Order) bool { return o.UserID == userID }), nil
}

func (repo *orderRepository) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus) error {
	found, err := repo.store.orders.update(repo.scope, id, func(stored *entity.Order) error {
		stored.Status = status

		return nil
	})
	if !found {
		return repository.ErrOrderNotFound
	}

	return err
}
