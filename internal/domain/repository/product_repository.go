package repository

import (
	"context"

	"teeshop/internal/domain/entity"
)

// ProductFilter narrows a product listing. Zero-valued fields match everything.
type ProductFilter struct {
	CreatorID int64
	DesignID  int64
	Category  string
}

// ProductRepository persists products.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
