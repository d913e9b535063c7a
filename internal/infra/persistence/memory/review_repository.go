package memory

import (
	"context"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository returns a ReviewRepository backed by the store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (repo *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	return repo.store.reviews.insert(nil, review, repo.store.now(), nil)
}

func (repo *reviewRepository) ListByProduct(_ context.Context, productID int64) ([]*entity.Review, error) {
	return repo.store.reviews.list(func(r *entity.Review) bool { return r.ProductID == productID }), nil
}
