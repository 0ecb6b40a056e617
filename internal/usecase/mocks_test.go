package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =====================
// CartStore fake（Updateの中身を実際に動かす）
// =====================

type memCartStore struct {
	mu      sync.Mutex
	carts   map[string]model.Cart
	deletes []string

	updateErr error
	deleteErr error
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[string]model.Cart{}}
}

func (s *memCartStore) Get(ctx context.Context, userID string) (model.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return model.Cart{UserID: userID, Items: []model.CartItem{}}, false, nil
	}
	return clone(c), true, nil
}

func (s *memCartStore) Set(ctx context.Context, cart model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.UserID] = clone(cart)
	return nil
}

func (s *memCartStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.carts, userID)
	s.deletes = append(s.deletes, userID)
	return nil
}

func (s *memCartStore) Update(ctx context.Context, userID string, fn repo.CartMutation) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return model.Cart{}, s.updateErr
	}

	c, ok := s.carts[userID]
	if !ok {
		c = model.Cart{UserID: userID, Items: []model.CartItem{}}
	}
	c = clone(c)
	write, err := fn(&c, ok)
	if err != nil {
		return model.Cart{}, err
	}
	if write {
		s.carts[userID] = clone(c)
	}
	return c, nil
}

func (s *memCartStore) has(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.carts[userID]
	return ok
}

func clone(c model.Cart) model.Cart {
	items := make([]model.CartItem, len(c.Items))
	copy(items, c.Items)
	return model.Cart{UserID: c.UserID, Items: items}
}

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublished(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BannerRepoMock struct{ mock.Mock }

func (m *BannerRepoMock) List(ctx context.Context) ([]model.Banner, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Banner)
	return items, args.Error(1)
}

func (m *BannerRepoMock) Create(ctx context.Context, b model.Banner) (model.Banner, error) {
	args := m.Called(ctx, b)
	out, _ := args.Get(0).(model.Banner)
	return out, args.Error(1)
}

func (m *BannerRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) FindBySessionID(ctx context.Context, sessionID string) (model.Order, error) {
	panic("not used in usecase tests")
}

func (m *OrderRepoMock) Totals(ctx context.Context) (repo.SalesTotals, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).(repo.SalesTotals)
	return t, args.Error(1)
}

func (m *OrderRepoMock) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) ListSince(ctx context.Context, since time.Time) ([]model.Order, error) {
	args := m.Called(ctx, since)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

type EventRepoMock struct{ mock.Mock }

func (m *EventRepoMock) Record(ctx context.Context, ev model.ProcessedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EventRepoMock) FindByID(ctx context.Context, eventID string) (model.ProcessedEvent, error) {
	args := m.Called(ctx, eventID)
	ev, _ := args.Get(0).(model.ProcessedEvent)
	return ev, args.Error(1)
}

func (m *EventRepoMock) MarkCartCleared(ctx context.Context, eventID string, at time.Time) error {
	args := m.Called(ctx, eventID, at)
	return args.Error(0)
}

// =====================
// TxManager mock
// =====================

// WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type txReposMock struct {
	orders repo.OrderRepository
	events repo.ProcessedEventRepository
}

func (r *txReposMock) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposMock) Events() repo.ProcessedEventRepository { return r.events }

// =====================
// 外部サービス mocks
// =====================

type PaymentGatewayMock struct{ mock.Mock }

func (m *PaymentGatewayMock) CreateCheckoutSession(ctx context.Context, req usecase.CheckoutSessionRequest) (usecase.CheckoutSession, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(usecase.CheckoutSession)
	return s, args.Error(1)
}

func (m *PaymentGatewayMock) ParseWebhook(payload []byte, signature string) (usecase.PaymentEvent, error) {
	args := m.Called(payload, signature)
	ev, _ := args.Get(0).(usecase.PaymentEvent)
	return ev, args.Error(1)
}

type InvalidatorMock struct{ mock.Mock }

func (m *InvalidatorMock) CartChanged(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type ValidatorMock struct{ mock.Mock }

func (m *ValidatorMock) ValidateProduct(in usecase.ProductInput) error {
	args := m.Called(in)
	return args.Error(0)
}

func (m *ValidatorMock) ValidateBanner(in usecase.BannerInput) error {
	args := m.Called(in)
	return args.Error(0)
}
