package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

type BannerUsecase struct {
	bannerRepo repo.BannerRepository
	validator  CatalogValidator
}

func NewBannerUsecase(bannerRepo repo.BannerRepository, validator CatalogValidator) *BannerUsecase {
	return &BannerUsecase{bannerRepo: bannerRepo, validator: validator}
}

// 新しい順
func (u *BannerUsecase) List(ctx context.Context) ([]model.Banner, error) {
	items, err := u.bannerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return items, nil
}

func (u *BannerUsecase) Create(ctx context.Context, in BannerInput) (model.Banner, error) {
	if err := u.validator.ValidateBanner(in); err != nil {
		return model.Banner{}, invalid(err.Error())
	}

	b, err := u.bannerRepo.Create(ctx, model.Banner{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		ImageString: strings.TrimSpace(in.ImageString),
	})
	if err != nil {
		return model.Banner{}, fmt.Errorf("create banner: %w", err)
	}
	return b, nil
}

func (u *BannerUsecase) Delete(ctx context.Context, id string) error {
	err := u.bannerRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("banner")
	}
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}
