package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type BannerRepository interface {
	List(ctx context.Context) ([]model.Banner, error)
	Create(ctx context.Context, b model.Banner) (model.Banner, error)
	Delete(ctx context.Context, id string) error
}
