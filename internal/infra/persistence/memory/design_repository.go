package memory

import (
	"context"
	"slices"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type designRepository struct {
	store *Store
	scope *txScope
}

// NewDesignRepository returns a DesignRepository backed by the store.
func NewDesignRepository(store *Store) repository.DesignRepository {
	return &designRepository{store: store}
}

func (repo *designRepository) Create(_ context.Context, design *entity.Design) error {
	return repo.store.designs.insert(repo.scope, design, repo.store.now(), nil)
}

func (repo *designRepository) FindByID(_ context.Context, id int64) (*entity.Design, error) {
	design, ok := repo.store.designs.get(id)
	if !ok {
		return nil, repository.ErrDesignNotFound
	}

	return design, nil
}

func (repo *designRepository) List(_ context.Context, filter entity.DesignFilter) ([]*entity.Design, error) {
	return repo.store.designs.list(filter.Match), nil
}

func (repo *designRepository) Update(_ context.Context, design *entity.Design) error {
	found, err := repo.store.designs.update(repo.scope, design.ID, func(stored *entity.Design) error {
		stored.Title = design.Title
		stored.Description = design.Description
		stored.ImageURL = design.ImageURL
		stored.Categories = slices.Clone(design.Categories)
		stored.IsPublic = design.IsPublic
		stored.IsApproved = design.IsApproved
		stored.CanvasJSON = slices.Clone(design.CanvasJSON)

		return nil
	})
	if !found {
		return repository.ErrDesignNotFound
	}

	return err
}
