package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

type WebhookResult struct {
	EventID   string
	Type      string
	OrderID   string // 今回作った注文。重複時は空
	Duplicate bool
	Ignored   bool
}

// WebhookUsecaseは決済完了通知から注文を1件だけ作り、カートを消す。
// 台帳（ProcessedEvent）と注文は同じトランザクションで書く。
type WebhookUsecase struct {
	tx          repo.TransactionManager
	events      repo.ProcessedEventRepository
	carts       repo.CartStore
	payments    PaymentGateway
	invalidator CartInvalidator
	log         *slog.Logger
	now         func() time.Time
}

func NewWebhookUsecase(
	tx repo.TransactionManager,
	events repo.ProcessedEventRepository,
	carts repo.CartStore,
	payments PaymentGateway,
	invalidator CartInvalidator,
	log *slog.Logger,
) *WebhookUsecase {
	return &WebhookUsecase{
		tx:          tx,
		events:      events,
		carts:       carts,
		payments:    payments,
		invalidator: invalidator,
		log:         log,
		now:         time.Now,
	}
}

// HandleEventは生のbodyと署名ヘッダーを受け取る。
// エラーを返すと決済事業者が再送するので、再送で回復できるものだけ返す。
func (u *WebhookUsecase) HandleEvent(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	ev, err := u.payments.ParseWebhook(payload, signature)
	if err != nil {
		u.log.WarnContext(ctx, "webhook signature rejected", slog.Any("err", err))
		return WebhookResult{}, invalidSignature(err)
	}

	res := WebhookResult{EventID: ev.ID, Type: ev.Type}
	if ev.Type != EventCheckoutSessionCompleted || ev.Session == nil {
		u.log.DebugContext(ctx, "webhook event ignored", slog.String("event_id", ev.ID), slog.String("type", ev.Type))
		res.Ignored = true
		return res, nil
	}

	s := ev.Session
	order := model.Order{
		ID:        uuid.NewString(),
		Amount:    s.AmountTotal,
		Status:    s.Status,
		UserID:    s.UserID,
		SessionID: s.ID,
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Events().Record(ctx, model.ProcessedEvent{
			EventID:   ev.ID,
			Type:      ev.Type,
			SessionID: s.ID,
			UserID:    s.UserID,
		}); err != nil {
			return err
		}
		return r.Orders().Create(ctx, order)
	})
	if errors.Is(err, repo.ErrDuplicate) {
		res.Duplicate = true
		return res, u.handleRedelivery(ctx, ev)
	}
	if err != nil {
		return WebhookResult{}, fmt.Errorf("record order: %w", err)
	}

	res.OrderID = order.ID
	u.log.InfoContext(ctx, "order created",
		slog.String("event_id", ev.ID),
		slog.String("session_id", s.ID),
		slog.String("order_id", order.ID),
		slog.String("user_id", s.UserID),
		slog.Int64("amount", s.AmountTotal),
	)

	if s.UserID == "" {
		u.log.WarnContext(ctx, "completed session without userId, cart left as is", slog.String("session_id", s.ID))
		return res, nil
	}
	return res, u.clearCart(ctx, ev.ID, s.UserID)
}

// 再送。注文は作らない。前回カート削除に失敗していればやり直す。
func (u *WebhookUsecase) handleRedelivery(ctx context.Context, ev PaymentEvent) error {
	pe, err := u.events.FindByID(ctx, ev.ID)
	if errors.Is(err, repo.ErrNotFound) {
		// 同じセッションが別のevent idで届いた
		u.log.InfoContext(ctx, "session already processed",
			slog.String("event_id", ev.ID),
			slog.String("session_id", ev.Session.ID),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find processed event: %w", err)
	}

	u.log.InfoContext(ctx, "duplicate webhook delivery", slog.String("event_id", ev.ID))
	if pe.CartClearedAt != nil || pe.UserID == "" {
		return nil
	}
	return u.clearCart(ctx, pe.EventID, pe.UserID)
}

// 失敗したらエラーを返して再送させる
func (u *WebhookUsecase) clearCart(ctx context.Context, eventID, userID string) error {
	if err := u.carts.Delete(ctx, userID); err != nil {
		u.log.ErrorContext(ctx, "cart clear failed", slog.String("event_id", eventID), slog.String("user_id", userID), slog.Any("err", err))
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := u.events.MarkCartCleared(ctx, eventID, u.now()); err != nil {
		u.log.WarnContext(ctx, "mark cart cleared failed", slog.String("event_id", eventID), slog.Any("err", err))
	}

	if u.invalidator != nil {
		if err := u.invalidator.CartChanged(ctx, userID); err != nil {
			u.log.WarnContext(ctx, "cart invalidation failed", slog.String("user_id", userID), slog.Any("err", err))
		}
	}
	return nil
}
