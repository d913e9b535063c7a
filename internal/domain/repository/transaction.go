package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific store.
type TransactionManager interface {
	// Execute runs a function within a transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function must use the factory's repositories.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances that are bound to a specific transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewCreatorApplicationRepository() CreatorApplicationRepository
	NewDesignRepository() DesignRepository
	NewProductRepository() ProductRepository
	NewOrderRepository() OrderRepository
	NewCouponRepository() CouponRepository
	NewUserCouponRepository() UserCouponRepository
	NewCouponPurchaseRepository() CouponPurchaseRepository
}
