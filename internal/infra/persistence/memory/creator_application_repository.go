package memory

import (
	"context"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type creatorApplicationRepository struct {
	store *Store
	scope *txScope
}

// NewCreatorApplicationRepository returns a CreatorApplicationRepository backed by the store.
func NewCreatorApplicationRepository(store *Store) repository.CreatorApplicationRepository {
	return &creatorApplicationRepository{store: store}
}

// Create rejects a second application for the same user whatever the status
// of the first one.
func (repo *creatorApplicationRepository) Create(_ context.Context, app *entity.CreatorApplication) error {
	return repo.store.applications.insert(repo.scope, app, repo.store.now(), func(existing *entity.CreatorApplication) error {
		if existing.UserID == app.UserID {
			return repository.ErrDuplicateApplication
		}

		return nil
	})
}

func (repo *creatorApplicationRepository) FindByID(_ context.Context, id int64) (*entity.CreatorApplication, error) {
	app, ok := repo.store.applications.get(id)
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}

	return app, nil
}

func (repo *creatorApplicationRepository) FindByUserID(_ context.Context, userID int64) (*entity.CreatorApplication, error) {
	app, ok := repo.store.applications.find(func(a *entity.CreatorApplication) bool { return a.UserID == userID })
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}

	return app, nil
}

func (repo *creatorApplicationRepository) List(_ context.Context) ([]*entity.CreatorApplication, error) {
	return repo.store.applications.list(nil), nil
}

func (repo *creatorApplicationRepository) UpdateStatus(_ context.Context, id int64, status entity.ApplicationStatus) error {
	found, err := repo.store.applications.update(repo.scope, id, func(stored *entity.CreatorApplication) error {
		stored.Status = status

		return nil
	})
	if !found {
		return repository.ErrApplicationNotFound
	}

	return err
}
