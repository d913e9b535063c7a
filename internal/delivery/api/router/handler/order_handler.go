package handler

import (
	"log/slog"

	"teeshop/internal/delivery/api/response"
	"teeshop/internal/domain/entity"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout and order tracking.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderItemRequest is one line of an order.
type OrderItemRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=100"`
	Color     string `json:"color" validate:"max=30"`
	Size      string `json:"size" validate:"max=10"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
	ShippingAddress string             `json:"shippingAddress" validate:"required,max=500"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required,max=50"`
	UserCouponID    *int64             `json:"userCouponId" validate:"omitempty,gt=0"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required,oneof=pending paid processing shipped delivered cancelled"`
}

// OrderView is an order with its lines and the coupon it consumed.
type OrderView struct {
	*entity.Order
	Items      []*entity.OrderItem `json:"items"`
	UserCoupon *entity.UserCoupon  `json:"userCoupon,omitempty"`
}

func orderView(details *usecase.OrderDetails) OrderView {
	return OrderView{Order: details.Order, Items: details.Items, UserCoupon: details.UserCoupon}
}

// CreateOrder places an order for the caller.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]usecase.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
		}
	}

	details, err := h.orderUC.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		UserID:          caller.ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		UserCouponID:    req.UserCouponID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, orderView(details))
}

// GetOrder returns an order to its customer or an admin.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	details, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := authorizeUser(c, details.Order.UserID); err != nil {
		return err
	}

	return response.OK(c, orderView(details))
}

// ListUserOrders returns the orders of a user.
func (h *OrderHandler) ListUserOrders(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := authorizeUser(c, userID); err != nil {
		return err
	}

	orders, err := h.orderUC.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, orders)
}

// UpdateOrderStatus advances an order's fulfilment status.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, order)
}
