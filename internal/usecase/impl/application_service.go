package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const moderationKindApplication = "application"

// applicationService implements the ApplicationUsecase interface.
type applicationService struct {
	txManager    repository.TransactionManager
	applications repository.CreatorApplicationRepository
	metrics      service.BusinessMetrics
	events       *eventPublisher
	logger       *slog.Logger
}

// ApplicationServiceParams holds dependencies for ApplicationService, injected by Fx.
type ApplicationServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Applications repository.CreatorApplicationRepository
	Publisher    service.EventPublisher
	Metrics      service.BusinessMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewApplicationService is the constructor for applicationService.
func NewApplicationService(params ApplicationServiceParams) usecase.ApplicationUsecase {
	return &applicationService{
		txManager:    params.TxManager,
		applications: params.Applications,
		metrics:      metricsOrNoop(params.Metrics),
		events:       &eventPublisher{publisher: params.Publisher, logger: params.Logger, now: time.Now},
		logger:       params.Logger,
	}
}

func (srv *applicationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitApplication files a pending application. A user gets one
// application ever, whatever became of an earlier one.
func (srv *applicationService) SubmitApplication(ctx context.Context, input usecase.SubmitApplicationInput) (*entity.CreatorApplication, error) {
	var app *entity.CreatorApplication

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewUserRepository().FindByID(ctx, input.UserID); err != nil {
			return translate(err, "failed to find applicant")
		}

		appRepo := repoFactory.NewCreatorApplicationRepository()

		existing, err := appRepo.FindByUserID(ctx, input.UserID)
		switch {
		case err == nil:
			return errors.Wrapf(domainerrors.ErrApplicationExists, "application %d is %s", existing.ID, existing.Status)
		case !errors.Is(err, repository.ErrApplicationNotFound):
			return translate(err, "failed to check existing application")
		}

		app = &entity.CreatorApplication{
			UserID:    input.UserID,
			Status:    entity.ApplicationPending,
			Portfolio: input.Portfolio,
			Sample:    input.Sample,
			Reason:    input.Reason,
		}
		if err := appRepo.Create(ctx, app); err != nil {
			return translate(err, "failed to create application")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit creator application")
	}

	srv.log(ctx).Info("Creator application submitted", slog.Int64("applicationID", app.ID), slog.Int64("userID", app.UserID))

	return app, nil
}

func (srv *applicationService) ListApplications(ctx context.Context) ([]*entity.CreatorApplication, error) {
	apps, err := srv.applications.List(ctx)
	if err != nil {
		return nil, translate(err, "failed to list applications")
	}

	return apps, nil
}

func (srv *applicationService) GetApplication(ctx context.Context, id int64) (*entity.CreatorApplication, error) {
	app, err := srv.applications.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get application")
	}

	return app, nil
}

// DecideApplication records the admin decision. Approval and the applicant's
// promotion to creator commit together.
func (srv *applicationService) DecideApplication(ctx context.Context, id int64, status entity.ApplicationStatus) (*entity.CreatorApplication, error) {
	if !status.IsDecision() {
		return nil, invalidArgument("status must be %q or %q", entity.ApplicationApproved, entity.ApplicationRejected)
	}

	var app *entity.CreatorApplication

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		appRepo := repoFactory.NewCreatorApplicationRepository()

		found, err := appRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, "failed to find application")
		}
		if !found.IsPending() {
			return errors.Wrapf(domainerrors.ErrApplicationDecided, "application %d is %s", found.ID, found.Status)
		}

		if err := appRepo.UpdateStatus(ctx, id, status); err != nil {
			return translate(err, "failed to update application status")
		}
		found.Status = status

		if status == entity.ApplicationApproved {
			userRepo := repoFactory.NewUserRepository()

			user, err := userRepo.FindByID(ctx, found.UserID)
			if err != nil {
				return translate(err, "failed to find applicant")
			}
			// admins keep their role
			if user.Role == entity.RoleUser {
				if err := userRepo.UpdateRole(ctx, user.ID, entity.RoleCreator); err != nil {
					return translate(err, "failed to promote applicant")
				}
			}
		}
		app = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to decide creator application")
	}

	srv.metrics.ModerationDecided(moderationKindApplication, string(status))
	srv.log(ctx).Info("Creator application decided",
		slog.Int64("applicationID", app.ID),
		slog.Int64("userID", app.UserID),
		slog.String("status", string(status)),
	)
	srv.events.publish(ctx, &service.DomainEvent{
		Type:       service.EventApplicationDecided,
		SubjectID:  app.ID,
		UserID:     app.UserID,
		Attributes: map[string]string{"status": string(status)},
	})

	return app, nil
}
