package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type BannerGormRepository struct {
	db *gorm.DB
}

func NewBannerGormRepository(db *gorm.DB) *BannerGormRepository {
	return &BannerGormRepository{db: db}
}

func (r *BannerGormRepository) List(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&banners).Error; err != nil {
		return []model.Banner{}, err
	}
	return banners, nil
}

func (r *BannerGormRepository) Create(ctx context.Context, b model.Banner) (model.Banner, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Banner{}, err
	}
	return b, nil
}

func (r *BannerGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Banner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
