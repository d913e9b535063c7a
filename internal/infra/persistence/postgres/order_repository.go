package postgres

import (
	"context"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order with its items through GORM's association save.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error {
	orderM := fromOrderDomain(order, items)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for i, item := range items {
		item.ID = orderM.Items[i].ID
		item.OrderID = orderM.ID
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	var rows []model.OrderItemModel
	if err := repo.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find order items")
	}

	items := make([]*entity.OrderItem, 0, len(rows))
	for i := range rows {
		items = append(items, toOrderItemDomain(&rows[i]))
	}

	return items, nil
}

func (repo *orderRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	var rows []model.OrderModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, toOrderDomain(&rows[i]))
	}

	return orders, nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}
