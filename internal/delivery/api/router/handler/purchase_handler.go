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

// PurchaseHandlerParams holds dependencies for PurchaseHandler, injected by Fx.
type PurchaseHandlerParams struct {
	fx.In

	PurchaseUC usecase.PurchaseUsecase
	Logger     *slog.Logger
}

// PurchaseHandler serves the paid coupon flow.
type PurchaseHandler struct {
	purchaseUC usecase.PurchaseUsecase
	logger     *slog.Logger
}

// NewPurchaseHandler is the constructor for PurchaseHandler.
func NewPurchaseHandler(params PurchaseHandlerParams) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUC: params.PurchaseUC,
		logger:     params.Logger,
	}
}

// PurchaseCouponRequest is the body of POST /api/coupons/purchase. Amount is
// optional; when sent it must equal the tier price.
type PurchaseCouponRequest struct {
	UserID          int64  `json:"userId" validate:"omitempty,gt=0"`
	Amount          *int64 `json:"amount" validate:"omitempty,gt=0"`
	DiscountPercent int    `json:"discountPercent" validate:"required,min=1,max=100"`
}

// PurchaseSuccessRequest is the payment callback relayed by the client. The
// gateway fields keep the gateway's snake_case names.
type PurchaseSuccessRequest struct {
	PaymentID       string `json:"payment_id" validate:"required,max=128"`
	OrderID         string `json:"order_id" validate:"required,max=128"`
	Signature       string `json:"signature" validate:"required,max=512"`
	UserID          int64  `json:"userId" validate:"omitempty,gt=0"`
	DiscountPercent int    `json:"discountPercent" validate:"required,min=1,max=100"`
}

// PurchaseResultView is the outcome of a completed purchase.
type PurchaseResultView struct {
	UserCoupon *entity.UserCoupon     `json:"userCoupon"`
	Coupon     *entity.Coupon         `json:"coupon"`
	Purchase   *entity.CouponPurchase `json:"purchase"`
	Replayed   bool                   `json:"replayed"`
}

// PurchaseCoupon opens a gateway order for a coupon of the requested tier.
func (h *PurchaseHandler) PurchaseCoupon(c echo.Context) error {
	var req PurchaseCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := userIDOrCaller(c, req.UserID)
	if err != nil {
		return err
	}

	order, err := h.purchaseUC.PurchaseCoupon(c.Request().Context(), usecase.PurchaseCouponInput{
		UserID:          userID,
		DiscountPercent: req.DiscountPercent,
		Amount:          req.Amount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, order)
}

// PurchaseSuccess verifies the payment and mints the coupon. Replays of the
// same callback return the coupon minted the first time.
func (h *PurchaseHandler) PurchaseSuccess(c echo.Context) error {
	var req PurchaseSuccessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := userIDOrCaller(c, req.UserID)
	if err != nil {
		return err
	}

	result, err := h.purchaseUC.CompletePurchase(c.Request().Context(), usecase.CompletePurchaseInput{
		PaymentID:       req.PaymentID,
		OrderID:         req.OrderID,
		Signature:       req.Signature,
		UserID:          userID,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	view := PurchaseResultView{
		UserCoupon: result.UserCoupon,
		Coupon:     result.Coupon,
		Purchase:   result.Purchase,
		Replayed:   result.Replayed,
	}
	if result.Replayed {
		return response.OK(c, view)
	}

	return response.Created(c, view)
}
