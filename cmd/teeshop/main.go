package main

import (
	"context"
	"log/slog"
	"os"

	"teeshop/config"
	"teeshop/internal/delivery"
	"teeshop/internal/delivery/api"
	"teeshop/internal/delivery/api/middleware"
	"teeshop/internal/delivery/api/router/handler"
	"teeshop/internal/domain/service"
	"teeshop/internal/infra/auth"
	"teeshop/internal/infra/couponcode"
	logs "teeshop/internal/infra/log"
	"teeshop/internal/infra/metrics"
	"teeshop/internal/infra/payment"
	"teeshop/internal/infra/persistence"
	"teeshop/internal/infra/pubsub"
	"teeshop/internal/infra/qrcode"
	"teeshop/internal/usecase/impl"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const (
	defaultQRCodeSize  = 256
	defaultCodeLength  = 10
	defaultCodePrefix  = "TEE"
	defaultQRCodeLevel = "M"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
		func(m *metrics.Metrics) service.BusinessMetrics { return m },
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.New,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewIdentityVerifier,
			payment.NewPaymentGateway,
			pubsub.NewEventPublisher,
			newQRCodeService,
			newCouponCodeGenerator,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(defaultQRCodeSize, defaultQRCodeLevel)
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func newCouponCodeGenerator(cfg *config.Config) service.CouponCodeGenerator {
	if cfg.Coupon == nil {
		return couponcode.NewGenerator(defaultCodePrefix, defaultCodeLength)
	}

	return couponcode.NewGenerator(cfg.Coupon.CodePrefix, cfg.Coupon.CodeLength)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCouponService,
			impl.NewPurchaseService,
			impl.NewApplicationService,
			impl.NewDesignService,
			impl.NewCatalogServices,
			impl.NewOrderService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewCouponHandler,
			handler.NewPurchaseHandler,
			handler.NewModerationHandler,
			handler.NewCatalogHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
