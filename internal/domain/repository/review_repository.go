package repository

import (
	"context"

	"teeshop/internal/domain/entity"
)

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Review, error)
}
