package postgres

import (
	"context"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type creatorApplicationRepository struct {
	db *gorm.DB
}

// NewCreatorApplicationRepository is the constructor for creatorApplicationRepository.
func NewCreatorApplicationRepository(db *gorm.DB) repository.CreatorApplicationRepository {
	return &creatorApplicationRepository{db: db}
}

// Create relies on the unique index on user_id to enforce one application per user.
func (repo *creatorApplicationRepository) Create(ctx context.Context, app *entity.CreatorApplication) error {
	appM := fromApplicationDomain(app)

	if err := repo.db.WithContext(ctx).Create(appM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateApplication
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create creator application")
	}

	app.ID = appM.ID
	app.CreatedAt = appM.CreatedAt

	return nil
}

func (repo *creatorApplicationRepository) FindByID(ctx context.Context, id int64) (*entity.CreatorApplication, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *creatorApplicationRepository) FindByUserID(ctx context.Context, userID int64) (*entity.CreatorApplication, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *creatorApplicationRepository) findOne(ctx context.Context, query string, arg any) (*entity.CreatorApplication, error) {
	var appM model.CreatorApplicationModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&appM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find creator application")
	}

	return toApplicationDomain(&appM), nil
}

func (repo *creatorApplicationRepository) List(ctx context.Context) ([]*entity.CreatorApplication, error) {
	var rows []model.CreatorApplicationModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list creator applications")
	}

	apps := make([]*entity.CreatorApplication, 0, len(rows))
	for i := range rows {
		apps = append(apps, toApplicationDomain(&rows[i]))
	}

	return apps, nil
}

func (repo *creatorApplicationRepository) UpdateStatus(ctx context.Context, id int64, status entity.ApplicationStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CreatorApplicationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update creator application")
	}
	if result.RowsAffected == 0 {
		return repository.ErrApplicationNotFound
	}

	return nil
}
