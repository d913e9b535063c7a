package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"teeshop/config"
	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	minorUnitsPerMajor = 100
	maxCodeAttempts    = 5
)

// purchaseService implements the PurchaseUsecase interface.
type purchaseService struct {
	txManager     repository.TransactionManager
	users         repository.UserRepository
	purchases     repository.CouponPurchaseRepository
	gateway       service.PaymentGateway
	codeGenerator service.CouponCodeGenerator
	metrics       service.BusinessMetrics
	events        *eventPublisher
	logger        *slog.Logger
	now           func() time.Time

	priceTiers   map[int]int64
	defaultPrice int64
	currency     string
	validity     time.Duration
}

// PurchaseServiceParams holds dependencies for PurchaseService, injected by Fx.
type PurchaseServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	Users         repository.UserRepository
	Purchases     repository.CouponPurchaseRepository
	Gateway       service.PaymentGateway
	CodeGenerator service.CouponCodeGenerator
	Publisher     service.EventPublisher
	Metrics       service.BusinessMetrics `optional:"true"`
	Config        *config.Config
	Logger        *slog.Logger
}

// NewPurchaseService is the constructor for purchaseService. It fails on a
// malformed price table.
func NewPurchaseService(params PurchaseServiceParams) (usecase.PurchaseUsecase, error) {
	if params.Config == nil || params.Config.Coupon == nil || params.Config.Payment == nil {
		return nil, errors.New("coupon and payment configuration are required")
	}
	couponCfg := params.Config.Coupon

	tiers := make(map[int]int64, len(couponCfg.PriceTiers))
	for key, price := range couponCfg.PriceTiers {
		percent, err := strconv.Atoi(key)
		if err != nil || percent < entity.MinDiscountPercent || percent > entity.MaxDiscountPercent {
			return nil, errors.Errorf("invalid coupon price tier %q", key)
		}
		if price <= 0 {
			return nil, errors.Errorf("coupon price tier %q must be positive", key)
		}
		tiers[percent] = price
	}

	return &purchaseService{
		txManager:     params.TxManager,
		users:         params.Users,
		purchases:     params.Purchases,
		gateway:       params.Gateway,
		codeGenerator: params.CodeGenerator,
		metrics:       metricsOrNoop(params.Metrics),
		events:        &eventPublisher{publisher: params.Publisher, logger: params.Logger, now: time.Now},
		logger:        params.Logger,
		now:           time.Now,
		priceTiers:    tiers,
		defaultPrice:  couponCfg.DefaultPrice,
		currency:      params.Config.Payment.Currency,
		validity:      couponCfg.PurchaseValidity,
	}, nil
}

func (srv *purchaseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// priceFor returns the tier price in major units.
func (srv *purchaseService) priceFor(discountPercent int) int64 {
	if price, ok := srv.priceTiers[discountPercent]; ok {
		return price
	}

	return srv.defaultPrice
}

// PurchaseCoupon opens a gateway order for the tier price and records it as
// a pending purchase.
func (srv *purchaseService) PurchaseCoupon(ctx context.Context, input usecase.PurchaseCouponInput) (*service.PaymentOrder, error) {
	if input.DiscountPercent < entity.MinDiscountPercent || input.DiscountPercent > entity.MaxDiscountPercent {
		return nil, invalidArgument("discountPercent must be between %d and %d", entity.MinDiscountPercent, entity.MaxDiscountPercent)
	}

	price := srv.priceFor(input.DiscountPercent)
	if input.Amount != nil && *input.Amount != price {
		return nil, invalidArgument("amount %d does not match the %d%% coupon price %d", *input.Amount, input.DiscountPercent, price)
	}

	if _, err := srv.users.FindByID(ctx, input.UserID); err != nil {
		return nil, translate(err, "failed to find user")
	}

	now := srv.now()
	receipt := fmt.Sprintf("cpn-%d-%d", input.UserID, now.UnixMilli())
	notes := map[string]string{
		"user_id":          strconv.FormatInt(input.UserID, 10),
		"discount_percent": strconv.Itoa(input.DiscountPercent),
	}

	order, err := srv.gateway.CreateOrder(ctx, price*minorUnitsPerMajor, srv.currency, receipt, notes)
	if err != nil {
		srv.log(ctx).Error("Payment order creation failed", slog.Int64("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayFailed, err.Error())
	}

	purchase := &entity.CouponPurchase{
		UserID:          input.UserID,
		DiscountPercent: input.DiscountPercent,
		Amount:          price,
		Currency:        order.Currency,
		GatewayOrderID:  order.OrderID,
		Status:          entity.PurchasePending,
	}
	if err := srv.purchases.Create(ctx, purchase); err != nil {
		// The gateway order stays payable but its callback cannot mint;
		// the log line is what reconciliation works from.
		srv.log(ctx).Error("Gateway order opened but purchase not recorded",
			slog.String("gatewayOrderID", order.OrderID),
			slog.Int64("userID", input.UserID),
			slog.Int("discountPercent", input.DiscountPercent),
			slog.Int64("amount", order.Amount),
			slog.Any("error", err),
		)

		return nil, translate(err, "failed to record coupon purchase")
	}

	srv.log(ctx).Info("Coupon purchase started",
		slog.Int64("purchaseID", purchase.ID),
		slog.String("gatewayOrderID", order.OrderID),
		slog.Int64("amount", order.Amount),
	)

	return order, nil
}

// CompletePurchase verifies the payment signature and mints the coupon. The
// purchase row is locked for the whole transaction, so a duplicate callback
// either waits and replays the stored result or sees it already completed.
func (srv *purchaseService) CompletePurchase(ctx context.Context, input usecase.CompletePurchaseInput) (*usecase.PurchaseResult, error) {
	err := srv.gateway.VerifyPayment(ctx, &service.PaymentConfirmation{
		OrderID:   input.OrderID,
		PaymentID: input.PaymentID,
		Signature: input.Signature,
	})
	if err != nil {
		if errors.Is(err, service.ErrPaymentSignatureMismatch) {
			srv.metrics.CouponPurchased(service.OutcomeRejected)
			srv.log(ctx).Warn("Payment signature rejected", slog.String("gatewayOrderID", input.OrderID))

			return nil, errors.Wrap(domainerrors.ErrPaymentVerificationFailed, "signature mismatch")
		}
		srv.metrics.CouponPurchased(service.OutcomeError)

		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayFailed, err.Error())
	}

	result := &usecase.PurchaseResult{}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		purchaseRepo := repoFactory.NewCouponPurchaseRepository()
		couponRepo := repoFactory.NewCouponRepository()
		userCouponRepo := repoFactory.NewUserCouponRepository()

		purchase, err := purchaseRepo.FindByGatewayOrderIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return translate(err, "failed to find coupon purchase")
		}
		if purchase.UserID != input.UserID || purchase.DiscountPercent != input.DiscountPercent {
			return invalidArgument("payment callback does not match purchase %s", input.OrderID)
		}
		result.Purchase = purchase

		if purchase.Status == entity.PurchaseCompleted && purchase.UserCouponID != nil {
			uc, err := userCouponRepo.FindByID(ctx, *purchase.UserCouponID)
			if err != nil {
				return translate(err, "failed to find purchased user coupon")
			}
			coupon, err := couponRepo.FindByID(ctx, uc.CouponID)
			if err != nil {
				return translate(err, "failed to find purchased coupon")
			}
			result.UserCoupon, result.Coupon, result.Replayed = uc, coupon, true

			return nil
		}

		now := srv.now()
		code, err := srv.uniqueCode(ctx, couponRepo)
		if err != nil {
			return err
		}

		coupon := &entity.Coupon{
			Code:            code,
			DiscountPercent: purchase.DiscountPercent,
			MaxUses:         1,
			ExpiresAt:       now.Add(srv.validity).UTC(),
			CreatedBy:       purchase.UserID,
			IsActive:        true,
		}
		if err := couponRepo.Create(ctx, coupon); err != nil {
			return translate(err, "failed to create purchased coupon")
		}

		uc := &entity.UserCoupon{UserID: purchase.UserID, CouponID: coupon.ID}
		if err := userCouponRepo.Create(ctx, uc); err != nil {
			return translate(err, "failed to assign purchased coupon")
		}

		if err := purchaseRepo.Complete(ctx, purchase.ID, input.PaymentID, uc.ID, now); err != nil {
			return translate(err, "failed to complete coupon purchase")
		}
		purchase.Status = entity.PurchaseCompleted
		purchase.PaymentID = &input.PaymentID
		purchase.UserCouponID = &uc.ID
		purchase.CompletedAt = &now

		result.UserCoupon, result.Coupon = uc, coupon

		return nil
	})
	if err != nil {
		srv.metrics.CouponPurchased(outcomeOf(err))

		return nil, errors.Wrap(err, "failed to complete coupon purchase")
	}

	if result.Replayed {
		srv.log(ctx).Info("Duplicate payment callback replayed", slog.String("gatewayOrderID", input.OrderID))

		return result, nil
	}

	srv.metrics.CouponPurchased(service.OutcomeSuccess)
	srv.log(ctx).Info("Coupon purchased",
		slog.Int64("purchaseID", result.Purchase.ID),
		slog.Int64("couponID", result.Coupon.ID),
		slog.Int64("userCouponID", result.UserCoupon.ID),
	)
	srv.events.publish(ctx, &service.DomainEvent{
		Type:      service.EventCouponPurchased,
		SubjectID: result.Coupon.ID,
		UserID:    result.Purchase.UserID,
		Attributes: map[string]string{
			"gateway_order_id": input.OrderID,
			"payment_id":       input.PaymentID,
			"discount_percent": strconv.Itoa(result.Coupon.DiscountPercent),
			"user_coupon_id":   strconv.FormatInt(result.UserCoupon.ID, 10),
		},
	})

	return result, nil
}

// uniqueCode draws codes until one is unused. Create still rejects a code
// taken concurrently.
func (srv *purchaseService) uniqueCode(ctx context.Context, coupons repository.CouponRepository) (string, error) {
	for range maxCodeAttempts {
		code := srv.codeGenerator.Generate()

		_, err := coupons.FindByCode(ctx, code)
		if errors.Is(err, repository.ErrCouponNotFound) {
			return code, nil
		}
		if err != nil {
			return "", translate(err, "failed to check coupon code")
		}
	}

	return "", errors.Wrap(domainerrors.ErrInternalError, "could not generate a unique coupon code")
}
