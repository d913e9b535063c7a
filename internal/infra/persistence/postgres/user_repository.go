package postgres

import (
	"context"
	"strings"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// userConflictError maps a unique violation on users to the matching sentinel.
func userConflictError(err error) error {
	switch {
	case violatesConstraint(err, "username_key"):
		return repository.ErrDuplicateUsername
	case violatesConstraint(err, "email_key"):
		return repository.ErrDuplicateEmail
	case violatesConstraint(err, "external_auth_id"):
		return repository.ErrDuplicateExternalAuth
	default:
		return nil
	}
}

// Create persists a new user and fills in the generated ID and CreatedAt.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if conflict := userConflictError(err); conflict != nil {
			return conflict
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *userRepository) FindByExternalAuthID(ctx context.Context, externalAuthID string) (*entity.User, error) {
	return repo.findOne(ctx, "external_auth_id = ?", externalAuthID)
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "username_key = ?", normalizeKey(username))
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email_key = ?", normalizeKey(email))
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&userM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Update overwrites username, email and profile fields.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"username":     userM.Username,
			"username_key": userM.UsernameKey,
			"email":        userM.Email,
			"email_key":    userM.EmailKey,
			"display_name": userM.DisplayName,
			"bio":          userM.Bio,
			"avatar":       userM.Avatar,
		})
	if result.Error != nil {
		if conflict := userConflictError(result.Error); conflict != nil {
			return conflict
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) UpdateRole(ctx context.Context, id int64, role entity.Role) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("role", string(role))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
