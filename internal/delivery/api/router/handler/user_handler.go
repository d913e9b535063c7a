package handler

import (
	"log/slog"
	"net/http"

	"teeshop/internal/delivery/api/response"
	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// SyncUserRequest is the body of POST /api/users/sync.
type SyncUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=32,alphanum"`
}

// UpdateProfileRequest is the body of PATCH /api/users/:id.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
	Avatar      *string `json:"avatar" validate:"omitempty,url"`
}

// SyncUser creates or refreshes the account of the verified identity.
func (h *UserHandler) SyncUser(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var req SyncUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.userUC.SyncUser(c.Request().Context(), usecase.SyncUserInput{
		Identity: identity,
		Username: req.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}

	return response.Success(c, status, output.User)
}

// GetMe returns the signed-in user.
func (h *UserHandler) GetMe(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), caller.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user)
}

// GetUser returns a user profile.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user)
}

// UpdateProfile edits the profile of the caller, or of anyone for admins.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := authorizeUser(c, id); err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), id, entity.UserProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user)
}
