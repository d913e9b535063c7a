package postgres

import (
	"context"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type designRepository struct {
	db *gorm.DB
}

// NewDesignRepository is the constructor for designRepository.
func NewDesignRepository(db *gorm.DB) repository.DesignRepository {
	return &designRepository{db: db}
}

func (repo *designRepository) Create(ctx context.Context, design *entity.Design) error {
	designM := fromDesignDomain(design)

	if err := repo.db.WithContext(ctx).Create(designM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create design")
	}

	design.ID = designM.ID
	design.CreatedAt = designM.CreatedAt

	return nil
}

func (repo *designRepository) FindByID(ctx context.Context, id int64) (*entity.Design, error) {
	var designM model.DesignModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&designM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrDesignNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find design")
	}

	return toDesignDomain(&designM), nil
}

// List translates the filter into SQL. The approved filter means listed,
// that is public and approved.
func (repo *designRepository) List(ctx context.Context, filter entity.DesignFilter) ([]*entity.Design, error) {
	query := repo.db.WithContext(ctx).Model(&model.DesignModel{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Public != nil {
		query = query.Where("is_public = ?", *filter.Public)
	}
	if filter.Approved != nil {
		if *filter.Approved {
			query = query.Where("is_public = ? AND is_approved = ?", true, true)
		} else {
			query = query.Where("NOT (is_public = ? AND is_approved = ?)", true, true)
		}
	}

	var rows []model.DesignModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list designs")
	}

	designs := make([]*entity.Design, 0, len(rows))
	for i := range rows {
		designs = append(designs, toDesignDomain(&rows[i]))
	}

	return designs, nil
}

func (repo *designRepository) Update(ctx context.Context, design *entity.Design) error {
	designM := fromDesignDomain(design)

	result := repo.db.WithContext(ctx).
		Model(&model.DesignModel{}).
		Where("id = ?", design.ID).
		Updates(map[string]any{
			"title":       designM.Title,
			"description": designM.Description,
			"image_url":   designM.ImageURL,
			"categories":  designM.Categories,
			"is_public":   designM.IsPublic,
			"is_approved": designM.IsApproved,
			"canvas_json": designM.CanvasJSON,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update design")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDesignNotFound
	}

	return nil
}
