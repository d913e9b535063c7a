package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
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

const moderationKindDesign = "design"

// designService implements the DesignUsecase interface.
type designService struct {
	txManager repository.TransactionManager
	designs   repository.DesignRepository
	users     repository.UserRepository
	metrics   service.BusinessMetrics
	events    *eventPublisher
	logger    *slog.Logger
}

// DesignServiceParams holds dependencies for DesignService, injected by Fx.
type DesignServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Designs   repository.DesignRepository
	Users     repository.UserRepository
	Publisher service.EventPublisher
	Metrics   service.BusinessMetrics `optional:"true"`
	Logger    *slog.Logger
}

// NewDesignService is the constructor for designService.
func NewDesignService(params DesignServiceParams) usecase.DesignUsecase {
	return &designService{
		txManager: params.TxManager,
		designs:   params.Designs,
		users:     params.Users,
		metrics:   metricsOrNoop(params.Metrics),
		events:    &eventPublisher{publisher: params.Publisher, logger: params.Logger, now: time.Now},
		logger:    params.Logger,
	}
}

func (srv *designService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// cleanCategories trims entries and drops blanks and duplicates, keeping order.
func cleanCategories(categories []string) []string {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(cleaned, c) {
			cleaned = append(cleaned, c)
		}
	}

	return cleaned
}

func validCanvas(canvas json.RawMessage) bool {
	return len(canvas) == 0 || json.Valid(canvas)
}

// SubmitDesign stores a new design. It always starts unapproved.
func (srv *designService) SubmitDesign(ctx context.Context, input usecase.SubmitDesignInput) (*entity.Design, error) {
	categories := cleanCategories(input.Categories)
	if len(categories) == 0 {
		return nil, invalidArgument("categories must not be empty")
	}
	if !validCanvas(input.CanvasJSON) {
		return nil, invalidArgument("canvasJson must be valid JSON")
	}

	if _, err := srv.users.FindByID(ctx, input.UserID); err != nil {
		return nil, translate(err, "failed to find design owner")
	}

	design := &entity.Design{
		UserID:      input.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Categories:  categories,
		IsPublic:    input.IsPublic,
		IsApproved:  false,
		CanvasJSON:  input.CanvasJSON,
	}
	if err := srv.designs.Create(ctx, design); err != nil {
		return nil, translate(err, "failed to create design")
	}

	srv.log(ctx).Info("Design submitted", slog.Int64("designID", design.ID), slog.Int64("userID", design.UserID))

	return design, nil
}

func (srv *designService) GetDesign(ctx context.Context, id int64) (*entity.Design, error) {
	design, err := srv.designs.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get design")
	}

	return design, nil
}

func (srv *designService) ListDesigns(ctx context.Context, filter entity.DesignFilter) ([]*entity.Design, error) {
	designs, err := srv.designs.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "failed to list designs")
	}

	return designs, nil
}

// UpdateDesign applies owner edits. Making a design private or changing its
// artwork withdraws its approval.
func (srv *designService) UpdateDesign(ctx context.Context, id int64, update entity.DesignUpdate) (*entity.Design, error) {
	return srv.ReviseDesign(ctx, id, update, nil)
}

// DecideDesign approves or rejects a design for the storefront. Only public
// designs can be approved.
func (srv *designService) DecideDesign(ctx context.Context, id int64, approved bool) (*entity.Design, error) {
	return srv.ReviseDesign(ctx, id, entity.DesignUpdate{}, &approved)
}

// ReviseDesign applies edits and, when approved is set, the moderation
// decision in one transaction. The decision sees the edited design, and
// nothing is written if either step fails.
func (srv *designService) ReviseDesign(ctx context.Context, id int64, update entity.DesignUpdate, approved *bool) (*entity.Design, error) {
	if update.Categories != nil {
		update.Categories = cleanCategories(update.Categories)
		if len(update.Categories) == 0 {
			return nil, invalidArgument("categories must not be empty")
		}
	}
	if !validCanvas(update.CanvasJSON) {
		return nil, invalidArgument("canvasJson must be valid JSON")
	}

	var design *entity.Design

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		designRepo := repoFactory.NewDesignRepository()

		found, err := designRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, "failed to find design")
		}

		found.Apply(update)

		if approved != nil {
			if *approved && !found.IsPublic {
				return errors.Wrapf(domainerrors.ErrDesignNotPublic, "design %d is private", found.ID)
			}
			found.IsApproved = *approved
		}

		if err := designRepo.Update(ctx, found); err != nil {
			return translate(err, "failed to update design")
		}
		design = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to revise design")
	}

	if approved != nil {
		srv.recordDecision(ctx, design, *approved)
	}

	return design, nil
}

func (srv *designService) recordDecision(ctx context.Context, design *entity.Design, approved bool) {
	decision := "rejected"
	if approved {
		decision = "approved"
	}
	srv.metrics.ModerationDecided(moderationKindDesign, decision)
	srv.log(ctx).Info("Design decided", slog.Int64("designID", design.ID), slog.String("decision", decision))
	srv.events.publish(ctx, &service.DomainEvent{
		Type:       service.EventDesignDecided,
		SubjectID:  design.ID,
		UserID:     design.UserID,
		Attributes: map[string]string{"decision": decision},
	})
}
