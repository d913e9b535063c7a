package repository

import (
	"context"

	"teeshop/internal/domain/entity"
)

// CreatorApplicationRepository persists creator applications. At most one
// application exists per user.
type CreatorApplicationRepository interface {
	Create(ctx context.Context, app *entity.CreatorApplication) error
	FindByID(ctx context.Context, id int64) (*entity.CreatorApplication, error)
	FindByUserID(ctx context.Context, userID int64) (*entity.CreatorApplication, error)
	List(ctx context.Context) ([]*entity.CreatorApplication, error)

	// UpdateStatus sets the status of an existing application.
	UpdateStatus(ctx context.Context, id int64, status entity.ApplicationStatus) error
}
