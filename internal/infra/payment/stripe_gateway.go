package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/usecase"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Stripe Checkoutとwebhook検証
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// backendsがnilならStripe本番のAPIに繋ぐ。
func NewStripeGateway(secretKey, webhookSecret string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
	}
}

var _ usecase.PaymentGateway = (*StripeGateway)(nil)

// 一回払いのセッションを作る。metadata.userIdで後からユーザーに紐付ける。
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req usecase.CheckoutSessionRequest) (usecase.CheckoutSession, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.Name),
		}
		if it.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{it.ImageURL})
		}

		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(it.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         items,
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return usecase.CheckoutSession{}, err
	}
	return usecase.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// Stripe-Signatureを検証してイベントを取り出す。
// APIバージョンの違いでは落とさない。
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (usecase.PaymentEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return usecase.PaymentEvent{}, err
	}

	out := usecase.PaymentEvent{
		ID:   ev.ID,
		Type: string(ev.Type),
	}
	if out.Type != usecase.EventCheckoutSessionCompleted {
		return out, nil
	}
	if ev.Data == nil {
		return usecase.PaymentEvent{}, fmt.Errorf("event %s has no data", ev.ID)
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
		return usecase.PaymentEvent{}, fmt.Errorf("decode checkout session: %w", err)
	}

	out.Session = &usecase.CompletedSession{
		ID:          s.ID,
		AmountTotal: s.AmountTotal,
		Status:      string(s.Status),
		UserID:      s.Metadata["userId"],
	}
	return out, nil
}
