// Package persistence selects the entity store backend from configuration and
// provides its repositories to the fx graph.
package persistence

import (
	"log/slog"
	"strings"

	"teeshop/config"
	"teeshop/internal/domain/repository"
	"teeshop/internal/errors"
	"teeshop/internal/infra/persistence/memory"
	"teeshop/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is every repository backed by the selected store.
type Repositories struct {
	fx.Out

	TxManager       repository.TransactionManager
	Users           repository.UserRepository
	Applications    repository.CreatorApplicationRepository
	Designs         repository.DesignRepository
	Products        repository.ProductRepository
	Orders          repository.OrderRepository
	Reviews         repository.ReviewRepository
	Coupons         repository.CouponRepository
	UserCoupons     repository.UserCouponRepository
	CouponPurchases repository.CouponPurchaseRepository
}

// New opens the configured store and builds its repositories.
func New(params Params) (Repositories, error) {
	driver := DriverMemory
	if params.Config.Storage != nil && params.Config.Storage.Driver != "" {
		driver = strings.ToLower(params.Config.Storage.Driver)
	}

	switch driver {
	case DriverMemory:
		params.Logger.Info("Using in-memory entity store")

		return NewMemory(memory.NewStore()), nil
	case DriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}
		params.Logger.Info("Using PostgreSQL entity store")

		return Repositories{
			TxManager:       postgres.NewTransactionManager(db),
			Users:           postgres.NewUserRepository(db),
			Applications:    postgres.NewCreatorApplicationRepository(db),
			Designs:         postgres.NewDesignRepository(db),
			Products:        postgres.NewProductRepository(db),
			Orders:          postgres.NewOrderRepository(db),
			Reviews:         postgres.NewReviewRepository(db),
			Coupons:         postgres.NewCouponRepository(db),
			UserCoupons:     postgres.NewUserCouponRepository(db),
			CouponPurchases: postgres.NewCouponPurchaseRepository(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unsupported storage driver: %s", driver)
	}
}

// NewMemory builds repositories over an in-memory store.
func NewMemory(store *memory.Store) Repositories {
	return Repositories{
		TxManager:       memory.NewTransactionManager(store),
		Users:           memory.NewUserRepository(store),
		Applications:    memory.NewCreatorApplicationRepository(store),
		Designs:         memory.NewDesignRepository(store),
		Products:        memory.NewProductRepository(store),
		Orders:          memory.NewOrderRepository(store),
		Reviews:         memory.NewReviewRepository(store),
		Coupons:         memory.NewCouponRepository(store),
		UserCoupons:     memory.NewUserCouponRepository(store),
		CouponPurchases: memory.NewCouponPurchaseRepository(store),
	}
}
