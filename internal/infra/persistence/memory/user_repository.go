package memory

import (
	"context"
	"strings"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type userRepository struct {
	store *Store
	scope *txScope
}

// NewUserRepository returns a UserRepository backed by the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	return repo.store.users.insert(repo.scope, user, repo.store.now(), func(existing *entity.User) error {
		return userConflict(existing, user)
	})
}

func userConflict(existing, user *entity.User) error {
	switch {
	case existing.ID == user.ID:
		return nil
	case strings.EqualFold(existing.Username, user.Username):
		return repository.ErrDuplicateUsername
	case strings.EqualFold(existing.Email, user.Email):
		return repository.ErrDuplicateEmail
	case existing.ExternalAuthID == user.ExternalAuthID:
		return repository.ErrDuplicateExternalAuth
	default:
		return nil
	}
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := repo.store.users.get(id)
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (repo *userRepository) FindByExternalAuthID(_ context.Context, externalAuthID string) (*entity.User, error) {
	return repo.findOne(func(u *entity.User) bool { return u.ExternalAuthID == externalAuthID })
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return repo.findOne(func(u *entity.User) bool { return strings.EqualFold(u.Username, username) })
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return repo.findOne(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (repo *userRepository) findOne(pred func(*entity.User) bool) (*entity.User, error) {
	user, ok := repo.store.users.find(pred)
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

// Update overwrites username, email and profile fields. Uniqueness is checked
// against every other user.
func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	for _, other := range repo.store.users.list(func(u *entity.User) bool { return u.ID != user.ID }) {
		if err := userConflict(other, user); err != nil {
			return err
		}
	}

	found, err := repo.store.users.update(repo.scope, user.ID, func(stored *entity.User) error {
		stored.Username = user.Username
		stored.Email = user.Email
		stored.DisplayName = user.DisplayName
		stored.Bio = user.Bio
		stored.Avatar = user.Avatar

		return nil
	})
	if !found {
		return repository.ErrUserNotFound
	}

	return err
}

func (repo *userRepository) UpdateRole(_ context.Context, id int64, role entity.Role) error {
	found, err := repo.store.users.update(repo.scope, id, func(stored *entity.User) error {
		stored.Role = role

		return nil
	})
	if !found {
		return repository.ErrUserNotFound
	}

	return err
}
