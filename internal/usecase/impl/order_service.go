package impl

import (
	"context"
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
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var hundred = decimal.NewFromInt(100)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orders    repository.OrderRepository
	users     repository.UserRepository
	metrics   service.BusinessMetrics
	events    *eventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Orders    repository.OrderRepository
	Users     repository.UserRepository
	Publisher service.EventPublisher
	Metrics   service.BusinessMetrics `optional:"true"`
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orders:    params.Orders,
		users:     params.Users,
		metrics:   metricsOrNoop(params.Metrics),
		events:    &eventPublisher{publisher: params.Publisher, logger: params.Logger, now: time.Now},
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateOrderInput(input usecase.CreateOrderInput) error {
	if len(input.Items) == 0 {
		return invalidArgument("order must contain at least one item")
	}
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return invalidArgument("items[%d].quantity must be positive", i)
		}
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return invalidArgument("shippingAddress is required")
	}

	return nil
}

// discounted applies a percentage discount, rounded to cents.
func discounted(total decimal.Decimal, percent int) decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromInt(int64(percent))).Div(hundred)

	return total.Mul(factor).Round(2)
}

// CreateOrder prices the items from the catalogue and, when a coupon is
// given, redeems it against the new order in the same transaction.
func (srv *orderService) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*usecase.OrderDetails, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	details := &usecase.OrderDetails{}
	var coupon *entity.Coupon

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		now := srv.now()

		if _, err := repoFactory.NewUserRepository().FindByID(ctx, input.UserID); err != nil {
			return translate(err, "failed to find customer")
		}

		productRepo := repoFactory.NewProductRepository()
		items := make([]*entity.OrderItem, 0, len(input.Items))
		total := decimal.Zero

		for i, in := range input.Items {
			product, err := productRepo.FindByID(ctx, in.ProductID)
			if err != nil {
				return translate(err, "failed to find product")
			}
			if len(product.Colors) > 0 && !slices.Contains(product.Colors, in.Color) {
				return invalidArgument("items[%d].color %q is not offered", i, in.Color)
			}
			if len(product.Sizes) > 0 && !slices.Contains(product.Sizes, in.Size) {
				return invalidArgument("items[%d].size %q is not offered", i, in.Size)
			}

			item := &entity.OrderItem{
				ProductID: product.ID,
				Quantity:  in.Quantity,
				Color:     in.Color,
				Size:      in.Size,
				Price:     product.Price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		if !total.IsPositive() {
			return invalidArgument("order total must be positive")
		}

		// A full discount makes the order free.
		var uc *entity.UserCoupon
		if input.UserCouponID != nil {
			var err error
			uc, coupon, err = loadRedeemable(ctx, repoFactory, *input.UserCouponID, now)
			if err != nil {
				return err
			}
			if uc.UserID != input.UserID {
				return errors.Wrap(domainerrors.ErrForbidden, "coupon is assigned to another user")
			}
			total = discounted(total, coupon.DiscountPercent)
		}

		order := &entity.Order{
			UserID:          input.UserID,
			Status:          entity.OrderPending,
			Total:           total,
			ShippingAddress: strings.TrimSpace(input.ShippingAddress),
			PaymentMethod:   input.PaymentMethod,
		}
		if err := repoFactory.NewOrderRepository().Create(ctx, order, items); err != nil {
			return translate(err, "failed to create order")
		}

		if uc != nil {
			if err := applyRedemption(ctx, repoFactory, uc, coupon, order.ID, now); err != nil {
				return err
			}
		}

		details.Order, details.Items, details.UserCoupon = order, items, uc

		return nil
	})
	if input.UserCouponID != nil {
		srv.metrics.CouponRedeemed(outcomeOf(err))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created",
		slog.Int64("orderID", details.Order.ID),
		slog.Int64("userID", details.Order.UserID),
		slog.String("total", details.Order.Total.StringFixed(2)),
	)
	if details.UserCoupon != nil {
		srv.events.publish(ctx, redeemedEvent(details.UserCoupon, coupon))
	}

	return details, nil
}

func (srv *orderService) GetOrder(ctx context.Context, id int64) (*usecase.OrderDetails, error) {
	order, err := srv.orders.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get order")
	}

	items, err := srv.orders.FindItems(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to get order items")
	}

	return &usecase.OrderDetails{Order: order, Items: items}, nil
}

func (srv *orderService) ListUserOrders(ctx context.Context, userID int64) ([]*entity.Order, error) {
	if _, err := srv.users.FindByID(ctx, userID); err != nil {
		return nil, translate(err, "failed to find user")
	}

	orders, err := srv.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateOrderStatus moves an order along its fulfilment path.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, invalidArgument("unknown order status %q", status)
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		found, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			return translate(err, "failed to find order")
		}
		if !found.Status.CanTransitionTo(status) {
			return errors.WithStack(domainerrors.ErrOrderTransition.WithDetails(
				string(found.Status) + " -> " + string(status),
			))
		}

		if err := orderRepo.UpdateStatus(ctx, id, status); err != nil {
			return translate(err, "failed to update order status")
		}
		found.Status = status
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status changed", slog.Int64("orderID", id), slog.String("status", string(status)))

	return order, nil
}
