package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"teeshop/config"
	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	adminIDs  []string
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var adminIDs []string
	if params.Config != nil && params.Config.Auth != nil {
		adminIDs = params.Config.Auth.AdminExternalIDs
	}

	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		adminIDs:  adminIDs,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) isBootstrapAdmin(externalAuthID string) bool {
	return slices.Contains(srv.adminIDs, externalAuthID)
}

// usernameFromEmail derives a default username from the email local part.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")

	return strings.ToLower(strings.TrimSpace(local))
}

// SyncUser creates the account for a verified identity on first sign-in and
// refreshes email and missing profile fields afterwards.
func (srv *userService) SyncUser(ctx context.Context, input usecase.SyncUserInput) (*usecase.SyncUserOutput, error) {
	identity := input.Identity
	if identity == nil || identity.Subject == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "verified identity required")
	}

	output := &usecase.SyncUserOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByExternalAuthID(ctx, identity.Subject)
		switch {
		case err == nil:
			output.User = user

			return srv.refresh(ctx, userRepo, user, input)
		case !errors.Is(err, repository.ErrUserNotFound):
			return translate(err, "failed to find user by identity")
		}

		email := strings.TrimSpace(identity.Email)
		if email == "" {
			return invalidArgument("identity has no email")
		}
		username := strings.TrimSpace(input.Username)
		if username == "" {
			username = usernameFromEmail(email)
		}
		if username == "" {
			return invalidArgument("username is required")
		}

		user = &entity.User{
			ExternalAuthID: identity.Subject,
			Username:       username,
			Email:          email,
			Role:           entity.RoleUser,
		}
		if srv.isBootstrapAdmin(identity.Subject) {
			user.Role = entity.RoleAdmin
		}
		if identity.DisplayName != "" {
			user.DisplayName = &identity.DisplayName
		}
		if identity.Picture != "" {
			user.Avatar = &identity.Picture
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return translate(err, "failed to create user")
		}
		output.User, output.Created = user, true

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sync user")
	}

	if output.Created {
		srv.log(ctx).Info("User registered",
			slog.Int64("userID", output.User.ID),
			slog.String("role", output.User.Role.String()),
		)
	}

	return output, nil
}

func (srv *userService) refresh(ctx context.Context, userRepo repository.UserRepository, user *entity.User, input usecase.SyncUserInput) error {
	identity := input.Identity
	changed := false

	if email := strings.TrimSpace(identity.Email); email != "" && !strings.EqualFold(email, user.Email) {
		user.Email = email
		changed = true
	}
	if user.DisplayName == nil && identity.DisplayName != "" {
		user.DisplayName = &identity.DisplayName
		changed = true
	}
	if user.Avatar == nil && identity.Picture != "" {
		user.Avatar = &identity.Picture
		changed = true
	}

	if changed {
		if err := userRepo.Update(ctx, user); err != nil {
			return translate(err, "failed to refresh user")
		}
	}

	if srv.isBootstrapAdmin(identity.Subject) && user.Role != entity.RoleAdmin {
		if err := userRepo.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return translate(err, "failed to grant admin role")
		}
		user.Role = entity.RoleAdmin
		srv.log(ctx).Info("Admin role granted", slog.Int64("userID", user.ID))
	}

	return nil
}

func (srv *userService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get user")
	}

	return user, nil
}

func (srv *userService) FindByExternalAuthID(ctx context.Context, externalAuthID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByExternalAuthID(ctx, externalAuthID)
	if err != nil {
		return nil, translate(err, "failed to find user by identity")
	}

	return user, nil
}

// UpdateProfile edits display name, bio and avatar.
func (srv *userService) UpdateProfile(ctx context.Context, id int64, update entity.UserProfileUpdate) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		found, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, "failed to find user")
		}

		if update.DisplayName != nil {
			found.DisplayName = update.DisplayName
		}
		if update.Bio != nil {
			found.Bio = update.Bio
		}
		if update.Avatar != nil {
			found.Avatar = update.Avatar
		}

		if err := userRepo.Update(ctx, found); err != nil {
			return translate(err, "failed to update user profile")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user profile")
	}

	return user, nil
}
