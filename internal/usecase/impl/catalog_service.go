package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements ProductUsecase and ReviewUsecase.
type catalogService struct {
	users    repository.UserRepository
	designs  repository.DesignRepository
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for the catalog services, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Users    repository.UserRepository
	Designs  repository.DesignRepository
	Products repository.ProductRepository
	Reviews  repository.ReviewRepository
	Logger   *slog.Logger
}

// CatalogServices exposes the catalog service under both use case interfaces.
type CatalogServices struct {
	fx.Out

	Products usecase.ProductUsecase
	Reviews  usecase.ReviewUsecase
}

// NewCatalogServices is the constructor for catalogService.
func NewCatalogServices(params CatalogServiceParams) CatalogServices {
	srv := &catalogService{
		users:    params.Users,
		designs:  params.Designs,
		products: params.Products,
		reviews:  params.Reviews,
		logger:   params.Logger,
	}

	return CatalogServices{Products: srv, Reviews: srv}
}

// CreateProduct lists a product for a public, approved design. Creators may
// only sell their own designs; admins may list any.
func (srv *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if !input.Price.IsPositive() {
		return nil, invalidArgument("price must be positive")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalidArgument("name is required")
	}

	seller, err := srv.users.FindByID(ctx, input.SellerID)
	if err != nil {
		return nil, translate(err, "failed to find seller")
	}
	if !seller.CanSell() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only creators can list products")
	}

	design, err := srv.designs.FindByID(ctx, input.DesignID)
	if err != nil {
		return nil, translate(err, "failed to find design")
	}
	if design.UserID != seller.ID && !seller.IsAdmin() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "design belongs to another creator")
	}
	if !design.IsListed() {
		return nil, errors.Wrapf(domainerrors.ErrDesignNotListed, "design %d", design.ID)
	}

	product := &entity.Product{
		Name:      strings.TrimSpace(input.Name),
		Price:     input.Price,
		DesignID:  design.ID,
		CreatorID: design.UserID,
		Colors:    input.Colors,
		Sizes:     input.Sizes,
		Category:  input.Category,
		ImageURL:  input.ImageURL,
	}
	if product.ImageURL == "" {
		product.ImageURL = design.ImageURL
	}
	if err := srv.products.Create(ctx, product); err != nil {
		return nil, translate(err, "failed to create product")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Product created",
		slog.Int64("productID", product.ID),
		slog.Int64("designID", product.DesignID),
	)

	return product, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.products.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get product")
	}

	return product, nil
}

func (srv *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := srv.products.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "failed to list products")
	}

	return products, nil
}

func (srv *catalogService) CreateReview(ctx context.Context, input usecase.CreateReviewInput) (*entity.Review, error) {
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, invalidArgument("rating must be between %d and %d", entity.MinRating, entity.MaxRating)
	}

	if _, err := srv.products.FindByID(ctx, input.ProductID); err != nil {
		return nil, translate(err, "failed to find product")
	}
	if _, err := srv.users.FindByID(ctx, input.UserID); err != nil {
		return nil, translate(err, "failed to find reviewer")
	}

	review := &entity.Review{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := srv.reviews.Create(ctx, review); err != nil {
		return nil, translate(err, "failed to create review")
	}

	return review, nil
}

func (srv *catalogService) ListProductReviews(ctx context.Context, productID int64) ([]*entity.Review, error) {
	if _, err := srv.products.FindByID(ctx, productID); err != nil {
		return nil, translate(err, "failed to find product")
	}

	reviews, err := srv.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, translate(err, "failed to list reviews")
	}

	return reviews, nil
}
