package repository

import (
	"context"

	"teeshop/internal/domain/entity"
)

// UserRepository defines the standard operations for user persistence.
// Username and email are unique case-insensitively.
type UserRepository interface {
	// Create persists a new user and fills in its ID and CreatedAt.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByExternalAuthID retrieves the user linked to an identity-provider subject.
	FindByExternalAuthID(ctx context.Context, externalAuthID string) (*entity.User, error)

	// FindByUsername retrieves a user by username, ignoring case.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a user by email, ignoring case.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update overwrites the mutable fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, id int64, role entity.Role) error
}
