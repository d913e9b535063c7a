package usecase

import (
	"context"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/service"
)

// SyncUserInput links a verified identity to a storefront account.
// Username falls back to the local part of the identity email.
type SyncUserInput struct {
	Identity *service.Identity
	Username string
}

// SyncUserOutput returns the account and whether it was just created.
type SyncUserOutput struct {
	User    *entity.User
	Created bool
}

// UserUsecase defines the interface for user-related business operations.
type UserUsecase interface {
	SyncUser(ctx context.Context, input SyncUserInput) (*SyncUserOutput, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)

	// FindByExternalAuthID resolves a verified identity to its account.
	FindByExternalAuthID(ctx context.Context, externalAuthID string) (*entity.User, error)

	UpdateProfile(ctx context.Context, id int64, update entity.UserProfileUpdate) (*entity.User, error)
}
