package repository

import (
	"context"

	"teeshop/internal/domain/entity"
)

// DesignRepository persists designs.
type DesignRepository interface {
	Create(ctx context.Context, design *entity.Design) error
	FindByID(ctx context.Context, id int64) (*entity.Design, error)

	// List returns the designs matching filter in creation order.
	List(ctx context.Context, filter entity.DesignFilter) ([]*entity.Design, error)

	// Update overwrites the mutable fields of an existing design.
	Update(ctx context.Context, design *entity.Design) error
}
