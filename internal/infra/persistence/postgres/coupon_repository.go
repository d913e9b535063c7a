package postgres

import (
	"context"
	"time"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/repository"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository is the constructor for couponRepository.
func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

// Create relies on the unique index on code_key, so concurrent creations of
// the same code cannot both succeed.
func (repo *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	couponM := fromCouponDomain(coupon)

	if err := repo.db.WithContext(ctx).Create(couponM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCouponCode
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create coupon")
	}

	coupon.ID = couponM.ID
	coupon.CreatedAt = couponM.CreatedAt

	return nil
}

func (repo *couponRepository) FindByID(ctx context.Context, id int64) (*entity.Coupon, error) {
	return repo.findOne(repo.db.WithContext(ctx), "id = ?", id)
}

func (repo *couponRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Coupon, error) {
	return repo.findOne(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (repo *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return repo.findOne(repo.db.WithContext(ctx), "code_key = ?", entity.NormalizeCouponCode(code))
}

func (repo *couponRepository) findOne(db *gorm.DB, query string, arg any) (*entity.Coupon, error) {
	var couponM model.CouponModel
	if err := db.Where(query, arg).First(&couponM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrCouponNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find coupon")
	}

	return toCouponDomain(&couponM), nil
}

func (repo *couponRepository) List(ctx context.Context) ([]*entity.Coupon, error) {
	var rows []model.CouponModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list coupons")
	}

	coupons := make([]*entity.Coupon, 0, len(rows))
	for i := range rows {
		coupons = append(coupons, toCouponDomain(&rows[i]))
	}

	return coupons, nil
}

func (repo *couponRepository) UpdateUsage(ctx context.Context, coupon *entity.Coupon) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CouponModel{}).
		Where("id = ?", coupon.ID).
		Updates(map[string]any{
			"current_uses": coupon.CurrentUses,
			"is_active":    coupon.IsActive,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update coupon usage")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

func (repo *couponRepository) Deactivate(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CouponModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to deactivate coupon")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

type userCouponRepository struct {
	db *gorm.DB
}

// NewUserCouponRepository is the constructor for userCouponRepository.
func NewUserCouponRepository(db *gorm.DB) repository.UserCouponRepository {
	return &userCouponRepository{db: db}
}

func (repo *userCouponRepository) Create(ctx context.Context, uc *entity.UserCoupon) error {
	ucM := &model.UserCouponModel{
		UserID:   uc.UserID,
		CouponID: uc.CouponID,
	}

	if err := repo.db.WithContext(ctx).Create(ucM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user coupon")
	}

	uc.ID = ucM.ID
	uc.CreatedAt = ucM.CreatedAt

	return nil
}

func (repo *userCouponRepository) FindByID(ctx context.Context, id int64) (*entity.UserCoupon, error) {
	var ucM model.UserCouponModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&ucM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrUserCouponNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user coupon")
	}

	return toUserCouponDomain(&ucM), nil
}

func (repo *userCouponRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.UserCoupon, error) {
	var rows []model.UserCouponModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list user coupons")
	}

	ucs := make([]*entity.UserCoupon, 0, len(rows))
	for i := range rows {
		ucs = append(ucs, toUserCouponDomain(&rows[i]))
	}

	return ucs, nil
}

// MarkUsed is a conditional update on used_at IS NULL. Zero affected rows
// means the assignment is missing or was already redeemed.
func (repo *userCouponRepository) MarkUsed(ctx context.Context, id, orderID int64, usedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserCouponModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Updates(map[string]any{
			"used_at":  usedAt,
			"order_id": orderID,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark user coupon used")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := repo.FindByID(ctx, id); err != nil {
		return err
	}

	return repository.ErrUserCouponAlreadyUsed
}

type couponPurchaseRepository struct {
	db *gorm.DB
}

// NewCouponPurchaseRepository is the constructor for couponPurchaseRepository.
func NewCouponPurchaseRepository(db *gorm.DB) repository.CouponPurchaseRepository {
	return &couponPurchaseRepository{db: db}
}

func (repo *couponPurchaseRepository) Create(ctx context.Context, purchase *entity.CouponPurchase) error {
	purchaseM := fromPurchaseDomain(purchase)

	if err := repo.db.WithContext(ctx).Create(purchaseM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicatePurchase
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create coupon purchase")
	}

	purchase.ID = purchaseM.ID
	purchase.CreatedAt = purchaseM.CreatedAt

	return nil
}

func (repo *couponPurchaseRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.CouponPurchase, error) {
	return repo.findOne(repo.db.WithContext(ctx), gatewayOrderID)
}

func (repo *couponPurchaseRepository) FindByGatewayOrderIDForUpdate(ctx context.Context, gatewayOrderID string) (*entity.CouponPurchase, error) {
	return repo.findOne(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), gatewayOrderID)
}

func (repo *couponPurchaseRepository) findOne(db *gorm.DB, gatewayOrderID string) (*entity.CouponPurchase, error) {
	var purchaseM model.CouponPurchaseModel
	if err := db.Where("gateway_order_id = ?", gatewayOrderID).First(&purchaseM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrPurchaseNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find coupon purchase")
	}

	return toPurchaseDomain(&purchaseM), nil
}

func (repo *couponPurchaseRepository) Complete(ctx context.Context, id int64, paymentID string, userCouponID int64, completedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CouponPurchaseModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         string(entity.PurchaseCompleted),
			"payment_id":     paymentID,
			"user_coupon_id": userCouponID,
			"completed_at":   completedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to complete coupon purchase")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPurchaseNotFound
	}

	return nil
}
