// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"teeshop/config"
	"teeshop/internal/delivery/api/middleware"
	"teeshop/internal/delivery/api/router/handler"
	"teeshop/internal/domain/entity"
	"teeshop/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	CouponHandler     *handler.CouponHandler
	PurchaseHandler   *handler.PurchaseHandler
	ModerationHandler *handler.ModerationHandler
	CatalogHandler    *handler.CatalogHandler
	OrderHandler      *handler.OrderHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Metrics           *metrics.Metrics `optional:"true"`
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	users      *handler.UserHandler
	coupons    *handler.CouponHandler
	purchases  *handler.PurchaseHandler
	moderation *handler.ModerationHandler
	catalog    *handler.CatalogHandler
	orders     *handler.OrderHandler
	auth       *middleware.AuthMiddleware
	metrics    *metrics.Metrics
	config     *config.Config
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		users:      params.UserHandler,
		coupons:    params.CouponHandler,
		purchases:  params.PurchaseHandler,
		moderation: params.ModerationHandler,
		catalog:    params.CatalogHandler,
		orders:     params.OrderHandler,
		auth:       params.AuthMiddleware,
		metrics:    params.Metrics,
		config:     params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil && r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	// Every /api route needs a verified token. Only sync is reachable by an
	// identity that has no account yet.
	api := e.Group("/api", r.auth.Authenticate)
	api.POST("/users/sync", r.users.SyncUser)

	user := r.auth.RequireUser
	admin := r.auth.RequireAdmin
	seller := r.auth.RequireRole(entity.RoleCreator, entity.RoleAdmin)

	// Users
	api.GET("/users/me", r.users.GetMe, user)
	api.GET("/users/:id", r.users.GetUser, user)
	api.PATCH("/users/:id", r.users.UpdateProfile, user)
	api.GET("/users/:id/coupons", r.coupons.ListUserCoupons, user)
	api.GET("/users/:id/orders", r.orders.ListUserOrders, user)

	// Creator applications
	api.POST("/creator/apply", r.moderation.Apply, user)
	api.GET("/creator/applications", r.moderation.ListApplications, admin)
	api.GET("/creator/applications/:id", r.moderation.GetApplication, user)
	api.PATCH("/creator/applications/:id", r.moderation.DecideApplication, admin)

	// Designs
	api.POST("/designs", r.moderation.SubmitDesign, user)
	api.GET("/designs", r.moderation.ListDesigns, user)
	api.GET("/designs/:id", r.moderation.GetDesign, user)
	api.PATCH("/designs/:id", r.moderation.UpdateDesign, user)

	// Coupons
	api.POST("/coupons", r.coupons.CreateCoupon, admin)
	api.GET("/coupons", r.coupons.ListCoupons, admin)
	api.POST("/coupons/purchase", r.purchases.PurchaseCoupon, user)
	api.POST("/coupons/purchase/success", r.purchases.PurchaseSuccess, user)
	api.GET("/coupons/code/:code", r.coupons.GetCouponByCode, user)
	api.GET("/coupons/:id", r.coupons.GetCoupon, user)
	api.GET("/coupons/:id/qr", r.coupons.CouponQRCode, user)
	api.POST("/coupons/:id/assign", r.coupons.AssignCoupon, admin)
	api.POST("/coupons/:id/deactivate", r.coupons.DeactivateCoupon, admin)
	api.POST("/user-coupons/:id/use", r.coupons.RedeemUserCoupon, user)

	// Catalogue
	api.POST("/products", r.catalog.CreateProduct, seller)
	api.GET("/products", r.catalog.ListProducts, user)
	api.GET("/products/:id", r.catalog.GetProduct, user)
	api.POST("/products/:id/reviews", r.catalog.CreateReview, user)
	api.GET("/products/:id/reviews", r.catalog.ListReviews, user)

	// Orders
	api.POST("/orders", r.orders.CreateOrder, user)
	api.GET("/orders/:id", r.orders.GetOrder, user)
	api.PATCH("/orders/:id/status", r.orders.UpdateOrderStatus, admin)
}
