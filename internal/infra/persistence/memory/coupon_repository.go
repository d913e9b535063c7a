package memory

import (
	"context"
	"time"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
)

type couponRepository struct {
	store *Store
	scope *txScope
}

// NewCouponRepository returns a CouponRepository backed by the store.
func NewCouponRepository(store *Store) repository.CouponRepository {
	return &couponRepository{store: store}
}

// Create checks code uniqueness and inserts under one table lock.
func (repo *couponRepository) Create(_ context.Context, coupon *entity.Coupon) error {
	key := entity.NormalizeCouponCode(coupon.Code)

	return repo.store.coupons.insert(repo.scope, coupon, repo.store.now(), func(existing *entity.Coupon) error {
		if entity.NormalizeCouponCode(existing.Code) == key {
			return repository.ErrDuplicateCouponCode
		}

		return nil
	})
}

func (repo *couponRepository) FindByID(_ context.Context, id int64) (*entity.Coupon, error) {
	coupon, ok := repo.store.coupons.get(id)
	if !ok {
		return nil, repository.ErrCouponNotFound
	}

	return coupon, nil
}

// FindByIDForUpdate needs no row lock here: transactions already hold the
// store-wide lock.
func (repo *couponRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Coupon, error) {
	return repo.FindByID(ctx, id)
}

func (repo *couponRepository) FindByCode(_ context.Context, code string) (*entity.Coupon, error) {
	key := entity.NormalizeCouponCode(code)
	coupon, ok := repo.store.coupons.find(func(c *entity.Coupon) bool {
		return entity.NormalizeCouponCode(c.Code) == key
	})
	if !ok {
		return nil, repository.ErrCouponNotFound
	}

	return coupon, nil
}

func (repo *couponRepository) List(_ context.Context) ([]*entity.Coupon, error) {
	return repo.store.coupons.list(nil), nil
}

func (repo *couponRepository) UpdateUsage(_ context.Context, coupon *entity.Coupon) error {
	found, err := repo.store.coupons.update(repo.scope, coupon.ID, func(stored *entity.Coupon) error {
		stored.CurrentUses = coupon.CurrentUses
		stored.IsActive = coupon.IsActive

		return nil
	})
	if !found {
		return repository.ErrCouponNotFound
	}

	return err
}

func (repo *couponRepository) Deactivate(_ context.Context, id int64) error {
	found, err := repo.store.coupons.update(repo.scope, id, func(stored *entity.Coupon) error {
		stored.IsActive = false

		return nil
	})
	if !found {
		return repository.ErrCouponNotFound
	}

	return err
}

type userCouponRepository struct {
	store *Store
	scope *txScope
}

// NewUserCouponRepository returns a UserCouponRepository backed by the store.
func NewUserCouponRepository(store *Store) repository.UserCouponRepository {
	return &userCouponRepository{store: store}
}

func (repo *userCouponRepository) Create(_ context.Context, uc *entity.UserCoupon) error {
	return repo.store.userCoupons.insert(repo.scope, uc, repo.store.now(), nil)
}

func (repo *userCouponRepository) FindByID(_ context.Context, id int64) (*entity.UserCoupon, error) {
	uc, ok := repo.store.userCoupons.get(id)
	if !ok {
		return nil, repository.ErrUserCouponNotFound
	}

	return uc, nil
}

func (repo *userCouponRepository) ListByUser(_ context.Context, userID int64) ([]*entity.UserCoupon, error) {
	return repo.store.userCoupons.list(func(uc *entity.UserCoupon) bool { return uc.UserID == userID }), nil
}

// MarkUsed is a compare-and-set on UsedAt under the table lock.
func (repo *userCouponRepository) MarkUsed(_ context.Context, id, orderID int64, usedAt time.Time) error {
	found, err := repo.store.userCoupons.update(repo.scope, id, func(stored *entity.UserCoupon) error {
		if stored.IsUsed() {
			return repository.ErrUserCouponAlreadyUsed
		}
		stored.MarkUsed(orderID, usedAt)

		return nil
	})
	if !found {
		return repository.ErrUserCouponNotFound
	}

	return err
}

type couponPurchaseRepository struct {
	store *Store
	scope *txScope
}

// NewCouponPurchaseRepository returns a CouponPurchaseRepository backed by the store.
func NewCouponPurchaseRepository(store *Store) repository.CouponPurchaseRepository {
	return &couponPurchaseRepository{store: store}
}

func (repo *couponPurchaseRepository) Create(_ context.Context, purchase *entity.CouponPurchase) error {
	return repo.store.purchases.insert(repo.scope, purchase, repo.store.now(), func(existing *entity.CouponPurchase) error {
		if existing.GatewayOrderID == purchase.GatewayOrderID {
			return repository.ErrDuplicatePurchase
		}

		return nil
	})
}

func (repo *couponPurchaseRepository) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*entity.CouponPurchase, error) {
	purchase, ok := repo.store.purchases.find(func(p *entity.CouponPurchase) bool {
		return p.GatewayOrderID == gatewayOrderID
	})
	if !ok {
		return nil, repository.ErrPurchaseNotFound
	}

	return purchase, nil
}

func (repo *couponPurchaseRepository) FindByGatewayOrderIDForUpdate(ctx context.Context, gatewayOrderID string) (*entity.CouponPurchase, error) {
	return repo.FindByGatewayOrderID(ctx, gatewayOrderID)
}

func (repo *couponPurchaseRepository) Complete(_ context.Context, id int64, paymentID string, userCouponID int64, completedAt time.Time) error {
	found, err := repo.store.purchases.update(repo.scope, id, func(stored *entity.CouponPurchase) error {
		stored.Status = entity.PurchaseCompleted
		stored.PaymentID = &paymentID
		stored.UserCouponID = &userCouponID
		stored.CompletedAt = &completedAt

		return nil
	})
	if !found {
		return repository.ErrPurchaseNotFound
	}

	return err
}
