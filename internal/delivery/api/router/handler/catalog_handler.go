package handler

import (
	"log/slog"
	"strings"

	"teeshop/internal/delivery/api/response"
	"teeshop/internal/domain/repository"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	ReviewUC  usecase.ReviewUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves products and their reviews.
type CatalogHandler struct {
	productUC usecase.ProductUsecase
	reviewUC  usecase.ReviewUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		productUC: params.ProductUC,
		reviewUC:  params.ReviewUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest is the body of POST /api/products. Price is a decimal
// string or number; positivity is checked by the catalogue.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
	DesignID int64           `json:"designId" validate:"required,gt=0"`
	Colors   []string        `json:"colors" validate:"omitempty,max=20,dive,required,max=30"`
	Sizes    []string        `json:"sizes" validate:"omitempty,max=20,dive,required,max=10"`
	Category string          `json:"category" validate:"required,max=50"`
	ImageURL string          `json:"imageUrl" validate:"omitempty,url"`
}

// CreateReviewRequest is the body of POST /api/products/:id/reviews.
type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// CreateProduct lists a product for one of the caller's approved designs.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		SellerID: caller.ID,
		Name:     req.Name,
		Price:    req.Price,
		DesignID: req.DesignID,
		Colors:   req.Colors,
		Sizes:    req.Sizes,
		Category: strings.TrimSpace(req.Category),
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, product)
}

// ListProducts filters by creatorId, designId and category.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var filter repository.ProductFilter

	creatorID, err := queryInt64(c, "creatorId")
	if err != nil {
		return err
	}
	if creatorID != nil {
		filter.CreatorID = *creatorID
	}

	designID, err := queryInt64(c, "designId")
	if err != nil {
		return err
	}
	if designID != nil {
		filter.DesignID = *designID
	}
	filter.Category = strings.TrimSpace(c.QueryParam("category"))

	products, err := h.productUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, products)
}

// GetProduct returns one product.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, product)
}

// CreateReview rates a product as the caller.
func (h *CatalogHandler) CreateReview(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), usecase.CreateReviewInput{
		UserID:    caller.ID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, review)
}

// ListReviews returns the reviews of a product.
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.ListProductReviews(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, reviews)
}
