package handler

import (
	"log/slog"
	"net/http"
	"time"

	"teeshop/internal/delivery/api/response"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CouponHandlerParams holds dependencies for CouponHandler, injected by Fx.
type CouponHandlerParams struct {
	fx.In

	CouponUC usecase.CouponUsecase
	Logger   *slog.Logger
}

// CouponHandler serves coupon management and redemption.
type CouponHandler struct {
	couponUC usecase.CouponUsecase
	logger   *slog.Logger
	now      func() time.Time
}

// NewCouponHandler is the constructor for CouponHandler.
func NewCouponHandler(params CouponHandlerParams) *CouponHandler {
	return &CouponHandler{
		couponUC: params.CouponUC,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// CreateCouponRequest is the body of POST /api/coupons.
type CreateCouponRequest struct {
	Code            string    `json:"code" validate:"required,min=3,max=64"`
	DiscountPercent int       `json:"discountPercent" validate:"required,min=1,max=100"`
	MaxUses         int       `json:"maxUses" validate:"required,min=1"`
	ExpiresAt       time.Time `json:"expiresAt" validate:"required"`
}

// AssignCouponRequest is the body of POST /api/coupons/:id/assign. CouponID
// is optional and must match the path when given.
type AssignCouponRequest struct {
	UserID   int64 `json:"userId" validate:"required,gt=0"`
	CouponID int64 `json:"couponId" validate:"omitempty,gt=0"`
}

// RedeemCouponRequest is the body of POST /api/user-coupons/:id/use.
type RedeemCouponRequest struct {
	OrderID int64 `json:"orderId" validate:"required,gt=0"`
}

// CouponView is a coupon with its derived lifecycle state.
type CouponView struct {
	*entity.Coupon
	State entity.CouponState `json:"state"`
}

func (h *CouponHandler) view(coupon *entity.Coupon) CouponView {
	return CouponView{Coupon: coupon, State: coupon.StateAt(h.now())}
}

// CreateCoupon handles coupon creation by an admin.
func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req CreateCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	coupon, err := h.couponUC.CreateCoupon(c.Request().Context(), usecase.CreateCouponInput{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
		CreatedBy:       caller.ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, h.view(coupon))
}

// ListCoupons returns every coupon.
func (h *CouponHandler) ListCoupons(c echo.Context) error {
	coupons, err := h.couponUC.ListCoupons(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]CouponView, len(coupons))
	for i, coupon := range coupons {
		views[i] = h.view(coupon)
	}

	return response.OK(c, views)
}

// GetCoupon returns one coupon by id.
func (h *CouponHandler) GetCoupon(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	coupon, err := h.couponUC.GetCoupon(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, h.view(coupon))
}

// GetCouponByCode looks a coupon up by its code, ignoring case.
func (h *CouponHandler) GetCouponByCode(c echo.Context) error {
	coupon, err := h.couponUC.GetCouponByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, h.view(coupon))
}

// DeactivateCoupon withdraws a coupon.
func (h *CouponHandler) DeactivateCoupon(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	coupon, err := h.couponUC.DeactivateCoupon(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, h.view(coupon))
}

// CouponQRCode renders the coupon code as a PNG.
func (h *CouponHandler) CouponQRCode(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.couponUC.CouponQRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// AssignCoupon hands a coupon to a user.
func (h *CouponHandler) AssignCoupon(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AssignCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.CouponID != 0 && req.CouponID != id {
		return errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails("couponId does not match the path"))
	}

	uc, err := h.couponUC.AssignCouponToUser(c.Request().Context(), req.UserID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, uc)
}

// ListUserCoupons returns a user's assignments joined with their coupons.
func (h *CouponHandler) ListUserCoupons(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := authorizeUser(c, userID); err != nil {
		return err
	}

	coupons, err := h.couponUC.ListUserCoupons(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, coupons)
}

// RedeemUserCoupon uses an assignment against an order.
func (h *CouponHandler) RedeemUserCoupon(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RedeemCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	assignment, err := h.couponUC.GetUserCoupon(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := authorizeUser(c, assignment.UserID); err != nil {
		return err
	}

	redeemed, err := h.couponUC.RedeemUserCoupon(ctx, id, req.OrderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, redeemed)
}
