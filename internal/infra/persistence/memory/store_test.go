package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoupon(code string, maxUses int) *entity.Coupon {
	return &entity.Coupon{
		Code:            code,
		DiscountPercent: 10,
		MaxUses:         maxUses,
		ExpiresAt:       time.Now().Add(24 * time.Hour),
		CreatedBy:       1,
		IsActive:        true,
	}
}

func TestTable_IDsAreMonotonicPerKind(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	users := NewUserRepository(store)
	designs := NewDesignRepository(store)

	u1 := &entity.User{ExternalAuthID: "a", Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	u2 := &entity.User{ExternalAuthID: "b", Username: "bob", Email: "bob@example.com", Role: entity.RoleUser}
	require.NoError(t, users.Create(ctx, u1))
	require.NoError(t, users.Create(ctx, u2))

	d := &entity.Design{UserID: u1.ID, Title: "wave", ImageURL: "https://img/1", Categories: []string{"art"}}
	require.NoError(t, designs.Create(ctx, d))

	assert.Equal(t, int64(1), u1.ID)
	assert.Equal(t, int64(2), u2.ID)
	assert.Equal(t, int64(1), d.ID)
	assert.False(t, u1.CreatedAt.IsZero())
}

func TestTable_ReturnsCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	designs := NewDesignRepository(store)

	d := &entity.Design{UserID: 1, Title: "wave", ImageURL: "https://img/1", Categories: []string{"art"}}
	require.NoError(t, designs.Create(ctx, d))

	d.Categories[0] = "mutated"
	got, err := designs.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"art"}, got.Categories)

	got.Title = "changed"
	again, err := designs.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "wave", again.Title)
}

func TestUserRepository_CaseInsensitiveUniqueness(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	users := NewUserRepository(store)

	require.NoError(t, users.Create(ctx, &entity.User{ExternalAuthID: "a", Username: "Alice", Email: "alice@example.com"}))

	err := users.Create(ctx, &entity.User{ExternalAuthID: "b", Username: "ALICE", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	err = users.Create(ctx, &entity.User{ExternalAuthID: "c", Username: "carol", Email: "Alice@Example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	found, err := users.FindByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Username)
}

func TestCouponRepository_DuplicateCodeIgnoresCase(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	coupons := NewCouponRepository(store)

	require.NoError(t, coupons.Create(ctx, newCoupon("SAVE10", 5)))
	err := coupons.Create(ctx, newCoupon("save10", 5))
	assert.ErrorIs(t, err, repository.ErrDuplicateCouponCode)

	found, err := coupons.FindByCode(ctx, " Save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", found.Code)
}

func TestCouponRepository_ConcurrentCreateSameCode(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	coupons := NewCouponRepository(store)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := coupons.Create(ctx, newCoupon("RACE", 1)); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	all, err := coupons.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserCouponRepository_MarkUsedOnce(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	ucs := NewUserCouponRepository(store)

	uc := &entity.UserCoupon{UserID: 42, CouponID: 1}
	require.NoError(t, ucs.Create(ctx, uc))

	now := time.Now()
	require.NoError(t, ucs.MarkUsed(ctx, uc.ID, 7, now))
	err := ucs.MarkUsed(ctx, uc.ID, 8, now)
	assert.ErrorIs(t, err, repository.ErrUserCouponAlreadyUsed)

	got, err := ucs.FindByID(ctx, uc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OrderID)
	assert.Equal(t, int64(7), *got.OrderID)

	assert.ErrorIs(t, ucs.MarkUsed(ctx, 999, 1, now), repository.ErrUserCouponNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	tm := NewTransactionManager(store)
	users := NewUserRepository(store)
	apps := NewCreatorApplicationRepository(store)

	user := &entity.User{ExternalAuthID: "a", Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	require.NoError(t, users.Create(ctx, user))
	app := &entity.CreatorApplication{UserID: user.ID, Status: entity.ApplicationPending}
	require.NoError(t, apps.Create(ctx, app))

	boom := errors.New("boom")
	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewCreatorApplicationRepository().UpdateStatus(ctx, app.ID, entity.ApplicationApproved); err != nil {
			return err
		}
		if err := f.NewUserRepository().UpdateRole(ctx, user.ID, entity.RoleCreator); err != nil {
			return err
		}
		if err := f.NewCouponRepository().Create(ctx, newCoupon("TX", 1)); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	gotApp, err := apps.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, gotApp.Status)

	gotUser, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, gotUser.Role)

	_, err = NewCouponRepository(store).FindByCode(ctx, "TX")
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)

	// Rolled-back ids are not reused.
	next := newCoupon("AFTER", 1)
	require.NoError(t, NewCouponRepository(store).Create(ctx, next))
	assert.Equal(t, int64(2), next.ID)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	tm := NewTransactionManager(store)

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.NewCouponRepository().Create(ctx, newCoupon("PANIC", 1))
			panic("unexpected")
		})
	})

	all, err := NewCouponRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// The lock was released.
	require.NoError(t, tm.Execute(ctx, func(repository.RepositoryFactory) error { return nil }))
}

func TestTransactionManager_CanceledContext(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := tm.Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDesignRepository_ListFilter(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	designs := NewDesignRepository(store)

	seed := []*entity.Design{
		{UserID: 1, Title: "private approved", Categories: []string{"a"}, IsPublic: false, IsApproved: true},
		{UserID: 1, Title: "public pending", Categories: []string{"a"}, IsPublic: true},
		{UserID: 2, Title: "public approved", Categories: []string{"a"}, IsPublic: true, IsApproved: true},
	}
	for _, d := range seed {
		require.NoError(t, designs.Create(ctx, d))
	}

	yes := true
	listed, err := designs.List(ctx, entity.DesignFilter{Public: &yes, Approved: &yes})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "public approved", listed[0].Title)

	owner := int64(1)
	mine, err := designs.List(ctx, entity.DesignFilter{UserID: &owner})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
