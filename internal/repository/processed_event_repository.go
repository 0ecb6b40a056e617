package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// Webhookの冪等台帳
type ProcessedEventRepository interface {
	// 同じevent_idが既にあればErrDuplicate
	Record(ctx context.Context, ev model.ProcessedEvent) error
	FindByID(ctx context.Context, eventID string) (model.ProcessedEvent, error)
	MarkCartCleared(ctx context.Context, eventID string, at time.Time) error
}
