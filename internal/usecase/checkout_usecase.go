package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	repo "storefront/internal/repository"
)

// 起動時に決まる値
type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// 空カートのときはゼロ値
type CheckoutResult struct {
	RedirectURL string
	SessionID   string
}

// CheckoutUsecaseはカートから決済セッションを作る。
// カートはここでは消さない（Webhookの完了通知で消す）。
type CheckoutUsecase struct {
	carts    repo.CartStore
	payments PaymentGateway
	cfg      CheckoutConfig
	log      *slog.Logger
}

func NewCheckoutUsecase(carts repo.CartStore, payments PaymentGateway, cfg CheckoutConfig, log *slog.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		payments: payments,
		cfg:      cfg,
		log:      log,
	}
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string) (CheckoutResult, error) {
	if userID == "" {
		return CheckoutResult{}, unauthenticated()
	}

	cart, _, err := u.carts.Get(ctx, userID)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("get cart: %w", err)
	}
	if cart.IsEmpty() {
		return CheckoutResult{}, nil
	}

	// 金額は最小通貨単位（price×100）
	items := make([]CheckoutLineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, CheckoutLineItem{
			Name:       it.Name,
			ImageURL:   it.ImageString,
			UnitAmount: it.Price * 100,
			Quantity:   it.Quantity,
		})
	}

	s, err := u.payments.CreateCheckoutSession(ctx, CheckoutSessionRequest{
		UserID:     userID,
		Currency:   u.cfg.Currency,
		LineItems:  items,
		SuccessURL: u.cfg.SuccessURL,
		CancelURL:  u.cfg.CancelURL,
	})
	if err != nil {
		u.log.ErrorContext(ctx, "checkout session failed", slog.String("user_id", userID), slog.Any("err", err))
		return CheckoutResult{}, paymentSession(err)
	}
	if s.URL == "" {
		return CheckoutResult{}, paymentSession(errors.New("session has no redirect url"))
	}

	u.log.InfoContext(ctx, "checkout session created",
		slog.String("user_id", userID),
		slog.String("session_id", s.ID),
		slog.Int("items", len(items)),
	)
	return CheckoutResult{RedirectURL: s.URL, SessionID: s.ID}, nil
}
