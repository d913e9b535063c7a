package usecase

import (
	"context"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// CreateProductInput defines a product listing. SellerID is the caller; the
// product's creator is the design owner.
type CreateProductInput struct {
	SellerID int64
	Name     string
	Price    decimal.Decimal
	DesignID int64
	Colors   []string
	Sizes    []string
	Category string
	ImageURL string
}

// CreateReviewInput defines a product review.
type CreateReviewInput struct {
	UserID    int64
	ProductID int64
	Rating    int
	Comment   *string
}

// ProductUsecase manages sellable products.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error)
}

// ReviewUsecase manages product reviews.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*entity.Review, error)
	ListProductReviews(ctx context.Context, productID int64) ([]*entity.Review, error)
}
