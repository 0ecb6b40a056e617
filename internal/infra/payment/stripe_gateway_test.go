package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/infra/payment"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

const testWebhookSecret = "whsec_test_secret"

// Stripeと同じ形式のStripe-Signatureヘッダーを作る
func sign(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

const completedEvent = `{
  "id": "evt_1",
  "object": "event",
  "type": "checkout.session.completed",
  "api_version": "2020-08-27",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "amount_total": 2500,
      "status": "complete",
      "metadata": {"userId": "u1"}
    }
  }
}`

func TestStripeGateway_ParseWebhook_Completed(t *testing.T) {
	gw := payment.NewStripeGateway("sk_test", testWebhookSecret, nil)
	body := []byte(completedEvent)

	ev, err := gw.ParseWebhook(body, sign(body, testWebhookSecret, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, usecase.EventCheckoutSessionCompleted, ev.Type)
	require.NotNil(t, ev.Session)
	assert.Equal(t, usecase.CompletedSession{ID: "cs_test_1", AmountTotal: 2500, Status: "complete", UserID: "u1"}, *ev.Session)
}

func TestStripeGateway_ParseWebhook_OtherType(t *testing.T) {
	gw := payment.NewStripeGateway("sk_test", testWebhookSecret, nil)
	body := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1","object":"payment_intent"}}}`)

	ev, err := gw.ParseWebhook(body, sign(body, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", ev.Type)
	assert.Nil(t, ev.Session)
}

func TestStripeGateway_ParseWebhook_WrongSecret(t *testing.T) {
	gw := payment.NewStripeGateway("sk_test", testWebhookSecret, nil)
	body := []byte(completedEvent)

	_, err := gw.ParseWebhook(body, sign(body, "whsec_other", time.Now()))
	assert.Error(t, err)
}

func TestStripeGateway_ParseWebhook_TamperedBody(t *testing.T) {
	gw := payment.NewStripeGateway("sk_test", testWebhookSecret, nil)
	body := []byte(completedEvent)
	header := sign(body, testWebhookSecret, time.Now())

	tampered := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_x","amount_total":1}}}`)
	_, err := gw.ParseWebhook(tampered, header)
	assert.Error(t, err)
}

func TestStripeGateway_ParseWebhook_Expired(t *testing.T) {
	gw := payment.NewStripeGateway("sk_test", testWebhookSecret, nil)
	body := []byte(completedEvent)

	_, err := gw.ParseWebhook(body, sign(body, testWebhookSecret, time.Now().Add(-time.Hour)))
	assert.Error(t, err)
}

func TestStripeGateway_ParseWebhook_MissingHeader(t *testing.T) {
	gw := payment.NewStripeGateway("sk_test", testWebhookSecret, nil)

	_, err := gw.ParseWebhook([]byte(completedEvent), "")
	assert.Error(t, err)
}

func newTestBackend(t *testing.T, h http.HandlerFunc) *stripe.Backends {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
}

func TestStripeGateway_CreateCheckoutSession(t *testing.T) {
	var form map[string]string
	backends := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		form = map[string]string{}
		for k, v := range r.PostForm {
			form[k] = v[0]
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	})
	gw := payment.NewStripeGateway("sk_test_123", testWebhookSecret, backends)

	s, err := gw.CreateCheckoutSession(context.Background(), usecase.CheckoutSessionRequest{
		UserID:   "u1",
		Currency: "usd",
		LineItems: []usecase.CheckoutLineItem{
			{Name: "Sneaker", ImageURL: "https://img/p1.png", UnitAmount: 1000, Quantity: 2},
			{Name: "Sock", UnitAmount: 500, Quantity: 1},
		},
		SuccessURL: "https://shop.example.com/payment/success",
		CancelURL:  "https://shop.example.com/payment/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", s.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", s.URL)

	assert.Equal(t, "payment", form["mode"])
	assert.Equal(t, "u1", form["metadata[userId]"])
	assert.Equal(t, "u1", form["client_reference_id"])
	assert.Equal(t, "https://shop.example.com/payment/success", form["success_url"])
	assert.Equal(t, "https://shop.example.com/payment/cancel", form["cancel_url"])
	assert.Equal(t, "usd", form["line_items[0][price_data][currency]"])
	assert.Equal(t, "1000", form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "2", form["line_items[0][quantity]"])
	assert.Equal(t, "Sneaker", form["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "https://img/p1.png", form["line_items[0][price_data][product_data][images][0]"])
	assert.Equal(t, "500", form["line_items[1][price_data][unit_amount]"])
	assert.Equal(t, "1", form["line_items[1][quantity]"])
	_, hasImage := form["line_items[1][price_data][product_data][images][0]"]
	assert.False(t, hasImage)
}

func TestStripeGateway_CreateCheckoutSession_APIError(t *testing.T) {
	backends := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad currency"}}`))
	})
	gw := payment.NewStripeGateway("sk_test_123", testWebhookSecret, backends)

	_, err := gw.CreateCheckoutSession(context.Background(), usecase.CheckoutSessionRequest{
		UserID:    "u1",
		Currency:  "zzz",
		LineItems: []usecase.CheckoutLineItem{{Name: "Sneaker", UnitAmount: 1000, Quantity: 1}},
	})
	assert.Error(t, err)
}
