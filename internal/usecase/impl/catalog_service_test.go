package impl

import (
	"context"
	"testing"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	f := newMemoryFixture()
	creator := f.createUser(t, "artist", entity.RoleCreator)
	rival := f.createUser(t, "rival", entity.RoleCreator)
	customer := f.createUser(t, "customer", entity.RoleUser)
	admin := f.createUser(t, "admin", entity.RoleAdmin)
	srv := f.catalogService()
	ctx := context.Background()

	listed := &entity.Design{UserID: creator.ID, Title: "Wave", ImageURL: "https://img/wave.png", Categories: []string{"sea"}, IsPublic: true, IsApproved: true}
	pending := &entity.Design{UserID: creator.ID, Title: "Draft", ImageURL: "https://img/draft.png", Categories: []string{"sea"}, IsPublic: true}
	require.NoError(t, f.designs.Create(ctx, listed))
	require.NoError(t, f.designs.Create(ctx, pending))

	input := usecase.CreateProductInput{
		SellerID: creator.ID,
		Name:     "Wave Tee",
		Price:    decimal.RequireFromString("24.50"),
		DesignID: listed.ID,
		Category: "tshirt",
	}

	product, err := srv.CreateProduct(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, creator.ID, product.CreatorID)
	assert.Equal(t, listed.ImageURL, product.ImageURL)

	byAdmin := input
	byAdmin.SellerID = admin.ID
	adminProduct, err := srv.CreateProduct(ctx, byAdmin)
	require.NoError(t, err)
	assert.Equal(t, creator.ID, adminProduct.CreatorID)

	tests := []struct {
		name   string
		mutate func(*usecase.CreateProductInput)
		target error
	}{
		{"zero price", func(in *usecase.CreateProductInput) { in.Price = decimal.Zero }, domainerrors.ErrInvalidArgument},
		{"customer cannot sell", func(in *usecase.CreateProductInput) { in.SellerID = customer.ID }, domainerrors.ErrForbidden},
		{"foreign design", func(in *usecase.CreateProductInput) { in.SellerID = rival.ID }, domainerrors.ErrForbidden},
		{"unapproved design", func(in *usecase.CreateProductInput) { in.DesignID = pending.ID }, domainerrors.ErrDesignNotListed},
		{"missing design", func(in *usecase.CreateProductInput) { in.DesignID = 404 }, domainerrors.ErrDesignNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input
			tt.mutate(&in)
			_, err := srv.CreateProduct(ctx, in)
			assert.True(t, errors.Is(err, tt.target))
		})
	}

	products, err := srv.ListProducts(ctx, repository.ProductFilter{CreatorID: creator.ID})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogService_Reviews(t *testing.T) {
	f := newMemoryFixture()
	creator := f.createUser(t, "artist", entity.RoleCreator)
	customer := f.createUser(t, "customer", entity.RoleUser)
	product := f.createListedProduct(t, creator, "15.00")
	srv := f.catalogService()
	ctx := context.Background()

	comment := "soft fabric"
	review, err := srv.CreateReview(ctx, usecase.CreateReviewInput{UserID: customer.ID, ProductID: product.ID, Rating: 5, Comment: &comment})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)

	_, err = srv.CreateReview(ctx, usecase.CreateReviewInput{UserID: customer.ID, ProductID: product.ID, Rating: 6})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	_, err = srv.CreateReview(ctx, usecase.CreateReviewInput{UserID: customer.ID, ProductID: 404, Rating: 3})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	reviews, err := srv.ListProductReviews(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "soft fabric", *reviews[0].Comment)

	_, err = srv.ListProductReviews(ctx, 404)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}
