package memory

import (
	"context"

	"teeshop/internal/domain/repository"

	"github.com/pkg/errors"
)

// transactionManager serializes transactions on the store-wide lock. Writes
// made through the factory's repositories are undone if fn fails or panics.
// Execute is not reentrant.
type transactionManager struct {
	store *Store
}

// repositoryFactory hands out repositories bound to one transaction scope.
type repositoryFactory struct {
	store *Store
	scope *txScope
}

// NewTransactionManager is the constructor for transactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn as one atomic unit with respect to other transactions.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	scope := &txScope{}
	factory := &repositoryFactory{store: tm.store, scope: scope}

	defer func() {
		if r := recover(); r != nil {
			scope.rollback()
			panic(r)
		}
	}()

	if err := fn(factory); err != nil {
		scope.rollback()

		return err
	}

	return nil
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewCreatorApplicationRepository() repository.CreatorApplicationRepository {
	return &creatorApplicationRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewDesignRepository() repository.DesignRepository {
	return &designRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewCouponRepository() repository.CouponRepository {
	return &couponRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewUserCouponRepository() repository.UserCouponRepository {
	return &userCouponRepository{store: f.store, scope: f.scope}
}

func (f *repositoryFactory) NewCouponPurchaseRepository() repository.CouponPurchaseRepository {
	return &couponPurchaseRepository{store: f.store, scope: f.scope}
}
