package memory

import (
	"context"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type productRepository struct {
	store *Store
	scope *txScope
}

// NewProductRepository returns a ProductRepository backed by the store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{store: store}
}

func (repo *productRepository) Create(_ context.Context, product *entity.Product) error {
	return repo.store.products.insert(repo.scope, product, repo.store.now(), nil)
}

func (repo *productRepository) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	product, ok := repo.store.products.get(id)
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func (repo *productRepository) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return repo.store.products.list(func(p *entity.Product) bool {
		if filter.CreatorID != 0 && p.CreatorID != filter.CreatorID {
			return false
		}
		if filter.DesignID != 0 && p.DesignID != filter.DesignID {
			return false
		}
		if filter.Category != "" && p.Category != filter.Category {
			return false
		}

		return true
	}), nil
}
