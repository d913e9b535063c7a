package usecase

import (
	"context"
	"encoding/json"

	"teeshop/internal/domain/entity"
)

// SubmitApplicationInput defines a creator application.
type SubmitApplicationInput struct {
	UserID    int64
	Portfolio string
	Sample    string
	Reason    string
}

// SubmitDesignInput defines a new design.
type SubmitDesignInput struct {
	UserID      int64
	Title       string
	Description *string
	ImageURL    string
	Categories  []string
	IsPublic    bool
	CanvasJSON  json.RawMessage
}

// ApplicationUsecase handles creator applications.
type ApplicationUsecase interface {
	SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*entity.CreatorApplication, error)
	ListApplications(ctx context.Context) ([]*entity.CreatorApplication, error)
	GetApplication(ctx context.Context, id int64) (*entity.CreatorApplication, error)

	// DecideApplication approves or rejects a pending application. Approval
	// promotes the applicant to creator in the same transaction.
	DecideApplication(ctx context.Context, id int64, status entity.ApplicationStatus) (*entity.CreatorApplication, error)
}

// DesignUsecase handles design submission and storefront approval.
type DesignUsecase interface {
	SubmitDesign(ctx context.Context, input SubmitDesignInput) (*entity.Design, error)
	GetDesign(ctx context.Context, id int64) (*entity.Design, error)
	ListDesigns(ctx context.Context, filter entity.DesignFilter) ([]*entity.Design, error)
	UpdateDesign(ctx context.Context, id int64, update entity.DesignUpdate) (*entity.Design, error)
	DecideDesign(ctx context.Context, id int64, approved bool) (*entity.Design, error)
	// ReviseDesign applies edits and an optional approval decision atomically.
	ReviseDesign(ctx context.Context, id int64, update entity.DesignUpdate, approved *bool) (*entity.Design, error)
}
