package handler

import (
	"encoding/json"
	"log/slog"

	"teeshop/internal/delivery/api/response"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ModerationHandlerParams holds dependencies for ModerationHandler, injected by Fx.
type ModerationHandlerParams struct {
	fx.In

	ApplicationUC usecase.ApplicationUsecase
	DesignUC      usecase.DesignUsecase
	Logger        *slog.Logger
}

// ModerationHandler serves creator applications and designs.
type ModerationHandler struct {
	applicationUC usecase.ApplicationUsecase
	designUC      usecase.DesignUsecase
	logger        *slog.Logger
}

// NewModerationHandler is the constructor for ModerationHandler.
func NewModerationHandler(params ModerationHandlerParams) *ModerationHandler {
	return &ModerationHandler{
		applicationUC: params.ApplicationUC,
		designUC:      params.DesignUC,
		logger:        params.Logger,
	}
}

// ApplyRequest is the body of POST /api/creator/apply.
type ApplyRequest struct {
	UserID    int64  `json:"userId" validate:"omitempty,gt=0"`
	Portfolio string `json:"portfolio" validate:"required,max=2048"`
	Sample    string `json:"sample" validate:"required,max=2048"`
	Reason    string `json:"reason" validate:"required,max=4000"`
}

// DecideApplicationRequest is the body of PATCH /api/creator/applications/:id.
type DecideApplicationRequest struct {
	Status entity.ApplicationStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// SubmitDesignRequest is the body of POST /api/designs.
type SubmitDesignRequest struct {
	UserID      int64           `json:"userId" validate:"omitempty,gt=0"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=4000"`
	ImageURL    string          `json:"imageUrl" validate:"required,url"`
	Categories  []string        `json:"categories" validate:"required,min=1,max=10,dive,required,max=50"`
	IsPublic    bool            `json:"isPublic"`
	CanvasJSON  json.RawMessage `json:"canvasJson"`
}

// UpdateDesignRequest is the body of PATCH /api/designs/:id. Owners edit
// content; IsApproved is a moderation decision reserved to admins.
type UpdateDesignRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=4000"`
	ImageURL    *string         `json:"imageUrl" validate:"omitempty,url"`
	Categories  []string        `json:"categories" validate:"omitempty,max=10,dive,required,max=50"`
	IsPublic    *bool           `json:"isPublic"`
	CanvasJSON  json.RawMessage `json:"canvasJson"`
	IsApproved  *bool           `json:"isApproved"`
}

func (r *UpdateDesignRequest) hasContent() bool {
	return r.Title != nil || r.Description != nil || r.ImageURL != nil ||
		r.Categories != nil || r.IsPublic != nil || r.CanvasJSON != nil
}

// Apply submits a creator application.
func (h *ModerationHandler) Apply(c echo.Context) error {
	var req ApplyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := userIDOrCaller(c, req.UserID)
	if err != nil {
		return err
	}

	app, err := h.applicationUC.SubmitApplication(c.Request().Context(), usecase.SubmitApplicationInput{
		UserID:    userID,
		Portfolio: req.Portfolio,
		Sample:    req.Sample,
		Reason:    req.Reason,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, app)
}

// ListApplications returns every application.
func (h *ModerationHandler) ListApplications(c echo.Context) error {
	apps, err := h.applicationUC.ListApplications(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, apps)
}

// GetApplication returns one application to its applicant or an admin.
func (h *ModerationHandler) GetApplication(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.applicationUC.GetApplication(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := authorizeUser(c, app.UserID); err != nil {
		return err
	}

	return response.OK(c, app)
}

// DecideApplication approves or rejects a pending application.
func (h *ModerationHandler) DecideApplication(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req DecideApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.applicationUC.DecideApplication(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, app)
}

// SubmitDesign stores a new design awaiting moderation.
func (h *ModerationHandler) SubmitDesign(c echo.Context) error {
	var req SubmitDesignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := userIDOrCaller(c, req.UserID)
	if err != nil {
		return err
	}

	design, err := h.designUC.SubmitDesign(c.Request().Context(), usecase.SubmitDesignInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Categories:  req.Categories,
		IsPublic:    req.IsPublic,
		CanvasJSON:  req.CanvasJSON,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, design)
}

// ListDesigns filters designs by userId, public and approved. Outside their
// own designs, non-admin callers only see the approved public gallery.
func (h *ModerationHandler) ListDesigns(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var filter entity.DesignFilter
	if filter.UserID, err = queryInt64(c, "userId"); err != nil {
		return err
	}
	if filter.Public, err = queryBool(c, "public"); err != nil {
		return err
	}
	if filter.Approved, err = queryBool(c, "approved"); err != nil {
		return err
	}

	ownDesigns := filter.UserID != nil && *filter.UserID == caller.ID
	if !caller.IsAdmin() && !ownDesigns {
		listed := true
		filter.Public, filter.Approved = &listed, &listed
	}

	designs, err := h.designUC.ListDesigns(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, designs)
}

// GetDesign returns a design. Unlisted designs are visible to their owner
// and admins only.
func (h *ModerationHandler) GetDesign(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	design, err := h.designUC.GetDesign(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if !design.IsListed() {
		if _, err := authorizeUser(c, design.UserID); err != nil {
			return err
		}
	}

	return response.OK(c, design)
}

// UpdateDesign applies owner edits and, for admins, the approval decision.
// Both land together or not at all.
func (h *ModerationHandler) UpdateDesign(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateDesignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !req.hasContent() && req.IsApproved == nil {
		return errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails("no fields to update"))
	}

	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	if req.IsApproved != nil && !caller.IsAdmin() {
		return errors.WithStack(domainerrors.ErrForbidden.WithDetails("only admins decide designs"))
	}

	ctx := c.Request().Context()

	design, err := h.designUC.GetDesign(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	if req.hasContent() {
		if _, err := authorizeUser(c, design.UserID); err != nil {
			return err
		}
	}

	design, err = h.designUC.ReviseDesign(ctx, id, entity.DesignUpdate{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Categories:  req.Categories,
		IsPublic:    req.IsPublic,
		CanvasJSON:  req.CanvasJSON,
	}, req.IsApproved)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, design)
}
