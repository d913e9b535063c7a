package impl

import (
	"context"
	"testing"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationInput(userID int64) usecase.SubmitApplicationInput {
	return usecase.SubmitApplicationInput{
		UserID:    userID,
		Portfolio: "https://portfolio.example.com",
		Sample:    "https://cdn.example.com/sample.png",
		Reason:    "I draw shirts",
	}
}

func TestApplicationService_SubmitApplication(t *testing.T) {
	f := newMemoryFixture()
	applicant := f.createUser(t, "artist", entity.RoleUser)
	srv := f.applicationService()
	ctx := context.Background()

	app, err := srv.SubmitApplication(ctx, applicationInput(applicant.ID))
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, app.Status)
	assert.Equal(t, applicant.ID, app.UserID)

	_, err = srv.SubmitApplication(ctx, applicationInput(applicant.ID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrApplicationExists))

	_, err = srv.SubmitApplication(ctx, applicationInput(404))
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	apps, err := srv.ListApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplicationService_DecideApplication_ApprovePromotes(t *testing.T) {
	f := newMemoryFixture()
	applicant := f.createUser(t, "artist", entity.RoleUser)
	srv := f.applicationService()
	ctx := context.Background()

	app, err := srv.SubmitApplication(ctx, applicationInput(applicant.ID))
	require.NoError(t, err)

	decided, err := srv.DecideApplication(ctx, app.ID, entity.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, decided.Status)

	stored, err := srv.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, stored.Status)

	user, err := f.users.FindByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCreator, user.Role)

	_, err = srv.DecideApplication(ctx, app.ID, entity.ApplicationRejected)
	assert.True(t, errors.Is(err, domainerrors.ErrApplicationDecided))

	events := f.publisher.ofType(service.EventApplicationDecided)
	require.Len(t, events, 1)
	assert.Equal(t, "approved", events[0].Attributes["status"])
	assert.Equal(t, 1, f.metrics.decisions["application:approved"])
}

func TestApplicationService_DecideApplication_RejectionIsPermanent(t *testing.T) {
	f := newMemoryFixture()
	applicant := f.createUser(t, "artist", entity.RoleUser)
	srv := f.applicationService()
	ctx := context.Background()

	app, err := srv.SubmitApplication(ctx, applicationInput(applicant.ID))
	require.NoError(t, err)

	_, err = srv.DecideApplication(ctx, app.ID, entity.ApplicationRejected)
	require.NoError(t, err)

	user, err := f.users.FindByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)

	_, err = srv.SubmitApplication(ctx, applicationInput(applicant.ID))
	assert.True(t, errors.Is(err, domainerrors.ErrApplicationExists))
}

func TestApplicationService_DecideApplication_Rejections(t *testing.T) {
	f := newMemoryFixture()
	srv := f.applicationService()
	ctx := context.Background()

	_, err := srv.DecideApplication(ctx, 1, entity.ApplicationPending)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	_, err = srv.DecideApplication(ctx, 404, entity.ApplicationApproved)
	assert.True(t, errors.Is(err, domainerrors.ErrApplicationNotFound))
}

func TestApplicationService_DecideApplication_AdminKeepsRole(t *testing.T) {
	f := newMemoryFixture()
	admin := f.createUser(t, "boss", entity.RoleAdmin)
	srv := f.applicationService()
	ctx := context.Background()

	app, err := srv.SubmitApplication(ctx, applicationInput(admin.ID))
	require.NoError(t, err)
	_, err = srv.DecideApplication(ctx, app.ID, entity.ApplicationApproved)
	require.NoError(t, err)

	user, err := f.users.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

// failingPromotion makes role updates fail inside transactions.
type failingPromotion struct {
	repository.TransactionManager
}

func (tm failingPromotion) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return tm.TransactionManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return fn(failingPromotionFactory{factory})
	})
}

type failingPromotionFactory struct {
	repository.RepositoryFactory
}

func (f failingPromotionFactory) NewUserRepository() repository.UserRepository {
	return failingRoleRepo{f.RepositoryFactory.NewUserRepository()}
}

type failingRoleRepo struct {
	repository.UserRepository
}

func (failingRoleRepo) UpdateRole(context.Context, int64, entity.Role) error {
	return errors.New("disk full")
}

func TestApplicationService_DecideApplication_RollsBackOnPromotionFailure(t *testing.T) {
	f := newMemoryFixture()
	applicant := f.createUser(t, "artist", entity.RoleUser)
	ctx := context.Background()

	app, err := f.applicationService().SubmitApplication(ctx, applicationInput(applicant.ID))
	require.NoError(t, err)

	srv := f.applicationService()
	srv.txManager = failingPromotion{f.txManager}

	_, err = srv.DecideApplication(ctx, app.ID, entity.ApplicationApproved)
	require.Error(t, err)

	stored, err := f.apps.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, stored.Status)

	user, err := f.users.FindByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Empty(t, f.publisher.ofType(service.EventApplicationDecided))
}
