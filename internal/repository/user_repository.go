package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	// 無ければErrNotFound
	FindByID(ctx context.Context, id string) (model.User, error)
	// 既にあればErrDuplicate
	Create(ctx context.Context, u model.User) error
	Count(ctx context.Context) (int64, error)
}
