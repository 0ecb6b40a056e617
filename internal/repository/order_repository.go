package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type SalesTotals struct {
	Revenue int64
	Sales   int64
}

type OrderRepository interface {
	// session_idが既にあればErrDuplicate
	Create(ctx context.Context, o model.Order) error
	FindBySessionID(ctx context.Context, sessionID string) (model.Order, error)

	// ダッシュボード用
	Totals(ctx context.Context) (SalesTotals, error)
	// 新しい順、購入者つき
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	ListSince(ctx context.Context, since time.Time) ([]model.Order, error)
}
