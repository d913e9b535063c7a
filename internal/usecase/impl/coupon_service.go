package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// couponService implements the CouponUsecase interface.
type couponService struct {
	txManager   repository.TransactionManager
	coupons     repository.CouponRepository
	userCoupons repository.UserCouponRepository
	users       repository.UserRepository
	qrCode      service.QRCodeService
	metrics     service.BusinessMetrics
	events      *eventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// CouponServiceParams holds dependencies for CouponService, injected by Fx.
type CouponServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	Coupons     repository.CouponRepository
	UserCoupons repository.UserCouponRepository
	Users       repository.UserRepository
	QRCode      service.QRCodeService
	Publisher   service.EventPublisher
	Metrics     service.BusinessMetrics `optional:"true"`
	Logger      *slog.Logger
}

// NewCouponService is the constructor for couponService.
func NewCouponService(params CouponServiceParams) usecase.CouponUsecase {
	return &couponService{
		txManager:   params.TxManager,
		coupons:     params.Coupons,
		userCoupons: params.UserCoupons,
		users:       params.Users,
		qrCode:      params.QRCode,
		metrics:     metricsOrNoop(params.Metrics),
		events:      &eventPublisher{publisher: params.Publisher, logger: params.Logger, now: time.Now},
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCoupon validates and stores a new active coupon. Code uniqueness is
// enforced by the store on insert.
func (srv *couponService) CreateCoupon(ctx context.Context, input usecase.CreateCouponInput) (*entity.Coupon, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, invalidArgument("code is required")
	}
	if input.DiscountPercent < entity.MinDiscountPercent || input.DiscountPercent > entity.MaxDiscountPercent {
		return nil, invalidArgument("discountPercent must be between %d and %d", entity.MinDiscountPercent, entity.MaxDiscountPercent)
	}
	if input.MaxUses < 1 {
		return nil, invalidArgument("maxUses must be at least 1")
	}
	if !input.ExpiresAt.After(srv.now()) {
		return nil, invalidArgument("expiresAt must be in the future")
	}

	if _, err := srv.users.FindByID(ctx, input.CreatedBy); err != nil {
		return nil, translate(err, "failed to find coupon creator")
	}

	coupon := &entity.Coupon{
		Code:            code,
		DiscountPercent: input.DiscountPercent,
		MaxUses:         input.MaxUses,
		ExpiresAt:       input.ExpiresAt.UTC(),
		CreatedBy:       input.CreatedBy,
		IsActive:        true,
	}
	if err := srv.coupons.Create(ctx, coupon); err != nil {
		return nil, translate(err, "failed to create coupon")
	}

	srv.log(ctx).Info("Coupon created", slog.Int64("couponID", coupon.ID), slog.String("code", coupon.Code))

	return coupon, nil
}

func (srv *couponService) GetCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	coupon, err := srv.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get coupon")
	}

	return coupon, nil
}

func (srv *couponService) ListCoupons(ctx context.Context) ([]*entity.Coupon, error) {
	coupons, err := srv.coupons.List(ctx)
	if err != nil {
		return nil, translate(err, "failed to list coupons")
	}

	return coupons, nil
}

// GetCouponByCode looks a coupon up ignoring case.
func (srv *couponService) GetCouponByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return nil, invalidArgument("code is required")
	}

	coupon, err := srv.coupons.FindByCode(ctx, code)
	if err != nil {
		return nil, translate(err, "failed to get coupon by code")
	}

	return coupon, nil
}

// DeactivateCoupon takes a coupon out of circulation. Deactivating an
// inactive coupon is a no-op.
func (srv *couponService) DeactivateCoupon(ctx context.Context, id int64) (*entity.Coupon, error) {
	var coupon *entity.Coupon

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		couponRepo := repoFactory.NewCouponRepository()

		found, err := couponRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return translate(err, "failed to find coupon")
		}
		coupon = found

		if !coupon.IsActive {
			return nil
		}
		if err := couponRepo.Deactivate(ctx, id); err != nil {
			return translate(err, "failed to deactivate coupon")
		}
		coupon.IsActive = false

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to deactivate coupon")
	}

	srv.log(ctx).Info("Coupon deactivated", slog.Int64("couponID", id))

	return coupon, nil
}

func (srv *couponService) CouponQRCode(ctx context.Context, id int64) ([]byte, error) {
	coupon, err := srv.GetCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateCouponQR(coupon.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render coupon QR code")
	}

	return png, nil
}

// AssignCouponToUser gives a user one redeemable assignment of a coupon. The
// coupon must be redeemable right now.
func (srv *couponService) AssignCouponToUser(ctx context.Context, userID, couponID int64) (*entity.UserCoupon, error) {
	var assignment *entity.UserCoupon

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		coupon, err := repoFactory.NewCouponRepository().FindByIDForUpdate(ctx, couponID)
		if err != nil {
			return translate(err, "failed to find coupon")
		}

		if _, err := repoFactory.NewUserRepository().FindByID(ctx, userID); err != nil {
			return translate(err, "failed to find user")
		}

		if now := srv.now(); !coupon.IsRedeemableAt(now) {
			return couponNotRedeemable(coupon, now)
		}

		assignment = &entity.UserCoupon{UserID: userID, CouponID: couponID}
		if err := repoFactory.NewUserCouponRepository().Create(ctx, assignment); err != nil {
			return translate(err, "failed to create user coupon")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to assign coupon")
	}

	srv.log(ctx).Info("Coupon assigned",
		slog.Int64("couponID", couponID),
		slog.Int64("userID", userID),
		slog.Int64("userCouponID", assignment.ID),
	)

	return assignment, nil
}

func (srv *couponService) GetUserCoupon(ctx context.Context, id int64) (*entity.UserCoupon, error) {
	uc, err := srv.userCoupons.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get user coupon")
	}

	return uc, nil
}

// ListUserCoupons returns a user's assignments joined with their coupons.
func (srv *couponService) ListUserCoupons(ctx context.Context, userID int64) ([]*entity.UserCouponWithCoupon, error) {
	if _, err := srv.users.FindByID(ctx, userID); err != nil {
		return nil, translate(err, "failed to find user")
	}

	assignments, err := srv.userCoupons.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "failed to list user coupons")
	}

	coupons := make(map[int64]*entity.Coupon)
	result := make([]*entity.UserCouponWithCoupon, 0, len(assignments))
	for _, uc := range assignments {
		coupon, ok := coupons[uc.CouponID]
		if !ok {
			coupon, err = srv.coupons.FindByID(ctx, uc.CouponID)
			if err != nil {
				return nil, translate(err, "failed to find coupon "+strconv.FormatInt(uc.CouponID, 10))
			}
			coupons[uc.CouponID] = coupon
		}
		result = append(result, &entity.UserCouponWithCoupon{UserCoupon: *uc, Coupon: coupon})
	}

	return result, nil
}

// RedeemUserCoupon redeems an assignment against an order of the same user.
func (srv *couponService) RedeemUserCoupon(ctx context.Context, userCouponID, orderID int64) (*entity.UserCoupon, error) {
	var (
		redeemed *entity.UserCoupon
		coupon   *entity.Coupon
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		now := srv.now()

		uc, c, err := loadRedeemable(ctx, repoFactory, userCouponID, now)
		if err != nil {
			return err
		}

		order, err := repoFactory.NewOrderRepository().FindByID(ctx, orderID)
		if err != nil {
			return translate(err, "failed to find order")
		}
		if order.UserID != uc.UserID {
			return invalidArgument("order %d does not belong to the coupon holder", orderID)
		}

		if err := applyRedemption(ctx, repoFactory, uc, c, orderID, now); err != nil {
			return err
		}
		redeemed, coupon = uc, c

		return nil
	})
	srv.metrics.CouponRedeemed(outcomeOf(err))
	if err != nil {
		return nil, errors.Wrap(err, "failed to redeem user coupon")
	}

	srv.log(ctx).Info("Coupon redeemed",
		slog.Int64("userCouponID", redeemed.ID),
		slog.Int64("couponID", coupon.ID),
		slog.Int64("orderID", orderID),
		slog.Int("currentUses", coupon.CurrentUses),
	)
	srv.events.publish(ctx, redeemedEvent(redeemed, coupon))

	return redeemed, nil
}

func redeemedEvent(uc *entity.UserCoupon, coupon *entity.Coupon) *service.DomainEvent {
	attrs := map[string]string{
		"coupon_id":    strconv.FormatInt(coupon.ID, 10),
		"current_uses": strconv.Itoa(coupon.CurrentUses),
		"exhausted":    strconv.FormatBool(coupon.IsExhausted()),
	}
	if uc.OrderID != nil {
		attrs["order_id"] = strconv.FormatInt(*uc.OrderID, 10)
	}

	return &service.DomainEvent{
		Type:       service.EventCouponRedeemed,
		SubjectID:  uc.ID,
		UserID:     uc.UserID,
		Attributes: attrs,
	}
}
