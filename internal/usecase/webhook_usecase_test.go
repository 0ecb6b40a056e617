package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookDeps struct {
	tx     *TxManagerMock
	orders *OrderRepoMock
	events *EventRepoMock
	store  *memCartStore
	gw     *PaymentGatewayMock
	inv    *InvalidatorMock
}

func newWebhookUsecase() (*usecase.WebhookUsecase, webhookDeps) {
	d := webhookDeps{
		orders: new(OrderRepoMock),
		events: new(EventRepoMock),
		store:  newMemCartStore(),
		gw:     new(PaymentGatewayMock),
		inv:    new(InvalidatorMock),
	}
	d.tx = &TxManagerMock{Repos: &txReposMock{orders: d.orders, events: d.events}}
	d.tx.On("WithinTx", mock.Anything).Return()

	uc := usecase.NewWebhookUsecase(d.tx, d.events, d.store, d.gw, d.inv, discardLogger())
	return uc, d
}

func completed(eventID, sessionID, userID string) usecase.PaymentEvent {
	return usecase.PaymentEvent{
		ID:   eventID,
		Type: usecase.EventCheckoutSessionCompleted,
		Session: &usecase.CompletedSession{
			ID:          sessionID,
			AmountTotal: 2500,
			Status:      "complete",
			UserID:      userID,
		},
	}
}

func seedCart(t *testing.T, s *memCartStore, userID string) {
	t.Helper()
	require.NoError(t, s.Set(context.Background(), model.Cart{UserID: userID, Items: []model.CartItem{
		{ID: "p1", Name: "Runner", Price: 25, Quantity: 1},
	}}))
}

func TestWebhookUsecase_CompletedCreatesOrderAndClearsCart(t *testing.T) {
	uc, d := newWebhookUsecase()
	seedCart(t, d.store, "u1")

	body := []byte(`{"id":"evt_1"}`)
	d.gw.On("ParseWebhook", body, "sig").Return(completed("evt_1", "cs_1", "u1"), nil)
	d.events.On("Record", mock.Anything, model.ProcessedEvent{
		EventID: "evt_1", Type: usecase.EventCheckoutSessionCompleted, SessionID: "cs_1", UserID: "u1",
	}).Return(nil)
	d.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.ID != "" && o.Amount == 2500 && o.Status == "complete" && o.UserID == "u1" && o.SessionID == "cs_1"
	})).Return(nil)
	d.events.On("MarkCartCleared", mock.Anything, "evt_1", mock.AnythingOfType("time.Time")).Return(nil)
	d.inv.On("CartChanged", mock.Anything, "u1").Return(nil)

	res, err := uc.HandleEvent(context.Background(), body, "sig")

	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.False(t, res.Duplicate)
	assert.False(t, d.store.has("u1"))
	d.orders.AssertNumberOfCalls(t, "Create", 1)
	d.events.AssertExpectations(t)
	d.inv.AssertExpectations(t)
}

func TestWebhookUsecase_InvalidSignature(t *testing.T) {
	uc, d := newWebhookUsecase()
	seedCart(t, d.store, "u1")
	d.gw.On("ParseWebhook", mock.Anything, "bad").Return(nil, errors.New("signature mismatch"))

	_, err := uc.HandleEvent(context.Background(), []byte(`{}`), "bad")

	require.ErrorIs(t, err, usecase.ErrInvalidSignature)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	d.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
	assert.True(t, d.store.has("u1"))
}

func TestWebhookUsecase_OtherEventIgnored(t *testing.T) {
	uc, d := newWebhookUsecase()
	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(usecase.PaymentEvent{ID: "evt_9", Type: "payment_intent.created"}, nil)

	res, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.True(t, res.Ignored)
	d.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestWebhookUsecase_RedeliveryCreatesNoSecondOrder(t *testing.T) {
	uc, d := newWebhookUsecase()
	seedCart(t, d.store, "u1")
	cleared := time.Now()

	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(completed("evt_1", "cs_1", "u1"), nil)
	d.events.On("Record", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)
	d.events.On("FindByID", mock.Anything, "evt_1").Return(model.ProcessedEvent{
		EventID: "evt_1", SessionID: "cs_1", UserID: "u1", CartClearedAt: &cleared,
	}, nil)

	res, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Empty(t, res.OrderID)
	d.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	// 一度消したカートは（その後作られたものも）触らない
	assert.True(t, d.store.has("u1"))
}

func TestWebhookUsecase_RedeliveryRetriesUnfinishedCartClear(t *testing.T) {
	uc, d := newWebhookUsecase()
	seedCart(t, d.store, "u1")

	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(completed("evt_1", "cs_1", "u1"), nil)
	d.events.On("Record", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)
	d.events.On("FindByID", mock.Anything, "evt_1").Return(model.ProcessedEvent{
		EventID: "evt_1", SessionID: "cs_1", UserID: "u1",
	}, nil)
	d.events.On("MarkCartCleared", mock.Anything, "evt_1", mock.Anything).Return(nil)
	d.inv.On("CartChanged", mock.Anything, "u1").Return(nil)

	res, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.False(t, d.store.has("u1"))
	d.events.AssertCalled(t, "MarkCartCleared", mock.Anything, "evt_1", mock.Anything)
}

func TestWebhookUsecase_SameSessionDifferentEvent(t *testing.T) {
	uc, d := newWebhookUsecase()
	seedCart(t, d.store, "u1")

	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(completed("evt_2", "cs_1", "u1"), nil)
	d.events.On("Record", mock.Anything, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)
	d.events.On("FindByID", mock.Anything, "evt_2").Return(nil, repo.ErrNotFound)

	res, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.True(t, d.store.has("u1"))
}

func TestWebhookUsecase_CartClearFailureIsReturned(t *testing.T) {
	uc, d := newWebhookUsecase()
	d.store.deleteErr = errors.New("redis down")

	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(completed("evt_1", "cs_1", "u1"), nil)
	d.events.On("Record", mock.Anything, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	// 注文は確定済み。再送でカート削除だけやり直す
	require.Error(t, err)
	assert.NotEmpty(t, res.OrderID)
	d.events.AssertNotCalled(t, "MarkCartCleared", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookUsecase_MissingUserIDStillRecordsOrder(t *testing.T) {
	uc, d := newWebhookUsecase()

	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(completed("evt_1", "cs_1", ""), nil)
	d.events.On("Record", mock.Anything, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool { return o.UserID == "" })).Return(nil)

	res, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Empty(t, d.store.deletes)
	d.inv.AssertNotCalled(t, "CartChanged", mock.Anything, mock.Anything)
}

func TestWebhookUsecase_StorageFailure(t *testing.T) {
	uc, d := newWebhookUsecase()
	seedCart(t, d.store, "u1")

	d.gw.On("ParseWebhook", mock.Anything, "sig").Return(completed("evt_1", "cs_1", "u1"), nil)
	d.events.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := uc.HandleEvent(context.Background(), []byte(`{}`), "sig")

	require.Error(t, err)
	_, isHTTP := usecase.AsHTTPError(err)
	assert.False(t, isHTTP)
	assert.True(t, d.store.has("u1"))
}
