package postgres

import (
	"context"
	"testing"
	"time"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestCouponRepository_Create_DuplicateCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCouponRepository(db)

	mock.ExpectQuery(`INSERT INTO "coupons"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_coupons_code_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), &entity.Coupon{
		Code:            "save10",
		DiscountPercent: 10,
		MaxUses:         5,
		ExpiresAt:       time.Now().Add(time.Hour),
		IsActive:        true,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateCouponCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponRepository_Create_ReturnsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCouponRepository(db)

	mock.ExpectQuery(`INSERT INTO "coupons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	coupon := &entity.Coupon{
		Code:            "Save10",
		DiscountPercent: 10,
		MaxUses:         5,
		ExpiresAt:       time.Now().Add(time.Hour),
		CreatedBy:       1,
		IsActive:        true,
	}
	require.NoError(t, repo.Create(context.Background(), coupon))
	assert.Equal(t, int64(11), coupon.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromCouponDomain_NormalizesCodeKey(t *testing.T) {
	m := fromCouponDomain(&entity.Coupon{Code: " Save10 "})
	assert.Equal(t, " Save10 ", m.Code)
	assert.Equal(t, "SAVE10", m.CodeKey)

	u := fromUserDomain(&entity.User{Username: "Alice", Email: "Alice@Example.com"})
	assert.Equal(t, "alice", u.UsernameKey)
	assert.Equal(t, "alice@example.com", u.EmailKey)
}

func TestCouponRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCouponRepository(db)

	expires := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"id", "code", "code_key", "discount_percent", "max_uses", "current_uses", "expires_at", "created_by", "is_active", "created_at"}).
		AddRow(3, "WELCOME5", "WELCOME5", 5, 1, 0, expires, 1, true, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE id = \$1 .*FOR UPDATE`).WillReturnRows(rows)

	coupon, err := repo.FindByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME5", coupon.Code)
	assert.Equal(t, 1, coupon.MaxUses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponRepository_FindByCode_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCouponRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE code_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByCode(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCouponRepository_MarkUsed(t *testing.T) {
	t.Run("succeeds when unused", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserCouponRepository(db)

		mock.ExpectExec(`UPDATE "user_coupons" SET .* WHERE id = \$3 AND used_at IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkUsed(context.Background(), 1, 7, time.Now()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already used", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserCouponRepository(db)

		mock.ExpectExec(`UPDATE "user_coupons"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "user_coupons" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "coupon_id", "used_at", "order_id", "created_at"}).
				AddRow(1, 42, 3, time.Now(), 7, time.Now()))

		err := repo.MarkUsed(context.Background(), 1, 8, time.Now())
		assert.ErrorIs(t, err, repository.ErrUserCouponAlreadyUsed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserCouponRepository(db)

		mock.ExpectExec(`UPDATE "user_coupons"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "user_coupons"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := repo.MarkUsed(context.Background(), 99, 8, time.Now())
		assert.ErrorIs(t, err, repository.ErrUserCouponNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create_MapsUniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "username", constraint: "idx_users_username_key", want: repository.ErrDuplicateUsername},
		{name: "email", constraint: "idx_users_email_key", want: repository.ErrDuplicateEmail},
		{name: "external auth", constraint: "idx_users_external_auth_id", want: repository.ErrDuplicateExternalAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectQuery(`INSERT INTO "users"`).
				WillReturnError(errors.Errorf(`ERROR: duplicate key value violates unique constraint "%s" (SQLSTATE 23505)`, tt.constraint))

			err := repo.Create(context.Background(), &entity.User{
				ExternalAuthID: "uid-1",
				Username:       "Alice",
				Email:          "alice@example.com",
				Role:           entity.RoleUser,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserRepository_UpdateRole_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "role"=\$1 WHERE id = \$2`).
		WithArgs("creator", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), 5, entity.RoleCreator)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "creator_applications"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		if err := f.NewCreatorApplicationRepository().UpdateStatus(context.Background(), 1, entity.ApplicationApproved); err != nil {
			return err
		}

		return f.NewUserRepository().UpdateRole(context.Background(), 10, entity.RoleCreator)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "coupons" SET "is_active"=\$1 WHERE id = \$2`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.NewCouponRepository().Deactivate(context.Background(), 4)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePartialIndexes(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_coupons_order_id`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_coupon_purchases_user_coupon_id`).
		WillReturnError(errors.New("relation \"coupon_purchases\" does not exist"))

	err := createPartialIndexes(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idx_coupon_purchases_user_coupon_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}
