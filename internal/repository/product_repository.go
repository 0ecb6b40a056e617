package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// 公開一覧の条件
type ProductListQuery struct {
	Category     model.Category
	FeaturedOnly bool
	Limit        int
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 公開（published）の商品だけ。新しい順。
	ListPublished(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	// 管理画面用：全ステータス
	ListAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
