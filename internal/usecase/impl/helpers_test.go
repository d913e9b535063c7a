package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"teeshop/internal/domain/entity"
	"teeshop/internal/domain/repository"
	"teeshop/internal/domain/service"
	"teeshop/internal/infra/persistence/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.DomainEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, event *service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) ofType(eventType string) []*service.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []*service.DomainEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}

	return out
}

// recordingMetrics counts business metric calls by label.
type recordingMetrics struct {
	mu          sync.Mutex
	redemptions map[string]int
	purchases   map[string]int
	decisions   map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		redemptions: map[string]int{},
		purchases:   map[string]int{},
		decisions:   map[string]int{},
	}
}

func (m *recordingMetrics) CouponRedeemed(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redemptions[outcome]++
}

func (m *recordingMetrics) CouponPurchased(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[outcome]++
}

func (m *recordingMetrics) ModerationDecided(kind, decision string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[kind+":"+decision]++
}

type fakeQRCode struct{}

func (fakeQRCode) GenerateCouponQR(code string) ([]byte, error) {
	return []byte("png:" + code), nil
}

// memoryFixture wires every repository over one in-memory store.
type memoryFixture struct {
	store       *memory.Store
	txManager   repository.TransactionManager
	users       repository.UserRepository
	apps        repository.CreatorApplicationRepository
	designs     repository.DesignRepository
	products    repository.ProductRepository
	orders      repository.OrderRepository
	reviews     repository.ReviewRepository
	coupons     repository.CouponRepository
	userCoupons repository.UserCouponRepository
	purchases   repository.CouponPurchaseRepository
	publisher   *recordingPublisher
	metrics     *recordingMetrics
	logger      *slog.Logger
}

func newMemoryFixture() *memoryFixture {
	store := memory.NewStore()

	return &memoryFixture{
		store:       store,
		txManager:   memory.NewTransactionManager(store),
		users:       memory.NewUserRepository(store),
		apps:        memory.NewCreatorApplicationRepository(store),
		designs:     memory.NewDesignRepository(store),
		products:    memory.NewProductRepository(store),
		orders:      memory.NewOrderRepository(store),
		reviews:     memory.NewReviewRepository(store),
		coupons:     memory.NewCouponRepository(store),
		userCoupons: memory.NewUserCouponRepository(store),
		purchases:   memory.NewCouponPurchaseRepository(store),
		publisher:   &recordingPublisher{},
		metrics:     newRecordingMetrics(),
		logger:      newDiscardLogger(),
	}
}

func (f *memoryFixture) createUser(t *testing.T, username string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		ExternalAuthID: "ext-" + username,
		Username:       username,
		Email:          username + "@example.com",
		Role:           role,
	}
	require.NoError(t, f.users.Create(context.Background(), user))

	return user
}

func (f *memoryFixture) createCoupon(t *testing.T, code string, discount, maxUses int, createdBy int64) *entity.Coupon {
	t.Helper()

	coupon := &entity.Coupon{
		Code:            code,
		DiscountPercent: discount,
		MaxUses:         maxUses,
		ExpiresAt:       time.Now().Add(30 * 24 * time.Hour),
		CreatedBy:       createdBy,
		IsActive:        true,
	}
	require.NoError(t, f.coupons.Create(context.Background(), coupon))

	return coupon
}

func (f *memoryFixture) createOrder(t *testing.T, userID int64) *entity.Order {
	t.Helper()

	order := &entity.Order{
		UserID:          userID,
		Status:          entity.OrderPending,
		Total:           decimal.NewFromInt(100),
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
	}
	require.NoError(t, f.orders.Create(context.Background(), order, nil))

	return order
}

func (f *memoryFixture) createListedProduct(t *testing.T, creator *entity.User, price string) *entity.Product {
	t.Helper()
	ctx := context.Background()

	design := &entity.Design{
		UserID:     creator.ID,
		Title:      "Wave",
		ImageURL:   "https://img.example.com/wave.png",
		Categories: []string{"nature"},
		IsPublic:   true,
		IsApproved: true,
	}
	require.NoError(t, f.designs.Create(ctx, design))

	product := &entity.Product{
		Name:      "Wave Tee",
		Price:     decimal.RequireFromString(price),
		DesignID:  design.ID,
		CreatorID: creator.ID,
		Colors:    []string{"black", "white"},
		Sizes:     []string{"M", "L"},
		Category:  "tshirt",
		ImageURL:  design.ImageURL,
	}
	require.NoError(t, f.products.Create(ctx, product))

	return product
}

func (f *memoryFixture) couponService() *couponService {
	return NewCouponService(CouponServiceParams{
		TxManager:   f.txManager,
		Coupons:     f.coupons,
		UserCoupons: f.userCoupons,
		Users:       f.users,
		QRCode:      fakeQRCode{},
		Publisher:   f.publisher,
		Metrics:     f.metrics,
		Logger:      f.logger,
	}).(*couponService)
}

func (f *memoryFixture) applicationService() *applicationService {
	return NewApplicationService(ApplicationServiceParams{
		TxManager:    f.txManager,
		Applications: f.apps,
		Publisher:    f.publisher,
		Metrics:      f.metrics,
		Logger:       f.logger,
	}).(*applicationService)
}

func (f *memoryFixture) designService() *designService {
	return NewDesignService(DesignServiceParams{
		TxManager: f.txManager,
		Designs:   f.designs,
		Users:     f.users,
		Publisher: f.publisher,
		Metrics:   f.metrics,
		Logger:    f.logger,
	}).(*designService)
}

func (f *memoryFixture) orderService() *orderService {
	return NewOrderService(OrderServiceParams{
		TxManager: f.txManager,
		Orders:    f.orders,
		Users:     f.users,
		Publisher: f.publisher,
		Metrics:   f.metrics,
		Logger:    f.logger,
	}).(*orderService)
}

func (f *memoryFixture) catalogService() *catalogService {
	out := NewCatalogServices(CatalogServiceParams{
		Users:    f.users,
		Designs:  f.designs,
		Products: f.products,
		Reviews:  f.reviews,
		Logger:   f.logger,
	})

	return out.Products.(*catalogService)
}
