package postgres

import (
	"context"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := &model.ReviewModel{
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

func (repo *reviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	var rows []model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, toReviewDomain(&rows[i]))
	}

	return reviews, nil
}
