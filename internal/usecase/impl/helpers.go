// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "teeshop/internal/delivery/context"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/domain/service"

	"github.com/pkg/errors"
)

// repositoryErrors maps persistence sentinels to the errors clients see.
var repositoryErrors = []struct {
	from error
	to   *domainerrors.BaseError
}{
	{repository.ErrUserNotFound, domainerrors.ErrUserNotFound},
	{repository.ErrDuplicateUsername, domainerrors.ErrUsernameTaken},
	{repository.ErrDuplicateEmail, domainerrors.ErrEmailTaken},
	{repository.ErrDuplicateExternalAuth, domainerrors.ErrConflict},
	{repository.ErrApplicationNotFound, domainerrors.ErrApplicationNotFound},
	{repository.ErrDuplicateApplication, domainerrors.ErrApplicationExists},
	{repository.ErrDesignNotFound, domainerrors.ErrDesignNotFound},
	{repository.ErrProductNotFound, domainerrors.ErrProductNotFound},
	{repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound},
	{repository.ErrCouponNotFound, domainerrors.ErrCouponNotFound},
	{repository.ErrDuplicateCouponCode, domainerrors.ErrCouponCodeExists},
	{repository.ErrUserCouponNotFound, domainerrors.ErrUserCouponNotFound},
	{repository.ErrUserCouponAlreadyUsed, domainerrors.ErrCouponAlreadyUsed},
	{repository.ErrPurchaseNotFound, domainerrors.ErrPurchaseNotFound},
	{repository.ErrDuplicatePurchase, domainerrors.ErrConflict},
}

// translate wraps err with action, replacing a repository sentinel by its
// AppError. Errors that already carry an AppError pass through unchanged.
func translate(err error, action string) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	for _, m := range repositoryErrors {
		if errors.Is(err, m.from) {
			return errors.Wrap(m.to, action)
		}
	}

	return errors.Wrap(err, action)
}

func invalidArgument(format string, args ...any) error {
	return errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails(fmt.Sprintf(format, args...)))
}

func invalidState(format string, args ...any) error {
	return errors.WithStack(domainerrors.ErrInvalidState.WithDetails(fmt.Sprintf(format, args...)))
}

// outcomeOf classifies an operation result for business metrics.
func outcomeOf(err error) string {
	if err == nil {
		return service.OutcomeSuccess
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
		return service.OutcomeRejected
	}

	return service.OutcomeError
}

// eventPublisher publishes domain events once their transaction has
// committed. A failed publish is logged and never fails the operation.
type eventPublisher struct {
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func (p *eventPublisher) publish(ctx context.Context, event *service.DomainEvent) {
	if p.publisher == nil {
		return
	}

	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	if err := p.publisher.PublishEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, p.logger).Warn("Failed to publish domain event",
			slog.String("type", event.Type),
			slog.Int64("subject_id", event.SubjectID),
			slog.Any("error", err),
		)
	}
}

// noopMetrics is used when no metrics sink is wired.
type noopMetrics struct{}

func (noopMetrics) CouponRedeemed(string)            {}
func (noopMetrics) CouponPurchased(string)           {}
func (noopMetrics) ModerationDecided(string, string) {}

func metricsOrNoop(m service.BusinessMetrics) service.BusinessMetrics {
	if m == nil {
		return noopMetrics{}
	}

	return m
}
