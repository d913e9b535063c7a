package impl

import (
	"context"
	"testing"

	"teeshop/config"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(f *memoryFixture, adminIDs ...string) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager: f.txManager,
		UserRepo:  f.users,
		Config:    &config.Config{Auth: &config.AuthConfig{AdminExternalIDs: adminIDs}},
		Logger:    f.logger,
	})
}

func TestUserService_SyncUser_CreatesThenRefreshes(t *testing.T) {
	f := newMemoryFixture()
	srv := newTestUserService(f)
	ctx := context.Background()

	identity := &service.Identity{Subject: "firebase-uid-1", Email: "Jane.Doe@Example.com", DisplayName: "Jane"}

	out, err := srv.SyncUser(ctx, usecase.SyncUserInput{Identity: identity})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "jane.doe", out.User.Username)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	require.NotNil(t, out.User.DisplayName)
	assert.Equal(t, "Jane", *out.User.DisplayName)

	identity.Email = "jane@example.org"
	identity.Picture = "https://img.example.com/jane.png"
	again, err := srv.SyncUser(ctx, usecase.SyncUserInput{Identity: identity})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, out.User.ID, again.User.ID)
	assert.Equal(t, "jane@example.org", again.User.Email)
	require.NotNil(t, again.User.Avatar)

	found, err := srv.FindByExternalAuthID(ctx, "firebase-uid-1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.org", found.Email)
}

func TestUserService_SyncUser_Conflicts(t *testing.T) {
	f := newMemoryFixture()
	srv := newTestUserService(f)
	ctx := context.Background()

	_, err := srv.SyncUser(ctx, usecase.SyncUserInput{
		Identity: &service.Identity{Subject: "a", Email: "a@example.com"},
		Username: "Shirts",
	})
	require.NoError(t, err)

	_, err = srv.SyncUser(ctx, usecase.SyncUserInput{
		Identity: &service.Identity{Subject: "b", Email: "b@example.com"},
		Username: "shirts",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	_, err = srv.SyncUser(ctx, usecase.SyncUserInput{
		Identity: &service.Identity{Subject: "c", Email: "A@EXAMPLE.COM"},
		Username: "other",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))

	_, err = srv.SyncUser(ctx, usecase.SyncUserInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	_, err = srv.SyncUser(ctx, usecase.SyncUserInput{Identity: &service.Identity{Subject: "d"}})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))
}

func TestUserService_SyncUser_BootstrapAdmin(t *testing.T) {
	f := newMemoryFixture()
	ctx := context.Background()

	existing := f.createUser(t, "ops", entity.RoleUser)

	srv := newTestUserService(f, "root-uid", existing.ExternalAuthID)

	created, err := srv.SyncUser(ctx, usecase.SyncUserInput{Identity: &service.Identity{Subject: "root-uid", Email: "root@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, created.User.Role)

	promoted, err := srv.SyncUser(ctx, usecase.SyncUserInput{Identity: &service.Identity{Subject: existing.ExternalAuthID, Email: existing.Email}})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.User.Role)

	stored, err := f.users.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newMemoryFixture()
	srv := newTestUserService(f)
	ctx := context.Background()
	user := f.createUser(t, "jane", entity.RoleUser)

	bio := "prints things"
	updated, err := srv.UpdateProfile(ctx, user.ID, entity.UserProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	assert.Nil(t, updated.DisplayName)

	got, err := srv.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, bio, *got.Bio)

	_, err = srv.UpdateProfile(ctx, 404, entity.UserProfileUpdate{Bio: &bio})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
