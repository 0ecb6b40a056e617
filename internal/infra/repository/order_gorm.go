package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// insertのみ。session_idの一意制約で二重作成を防ぐ
func (r *OrderGormRepository) Create(ctx context.Context, o model.Order) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(&o).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *OrderGormRepository) FindBySessionID(ctx context.Context, sessionID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 売上合計と件数
func (r *OrderGormRepository) Totals(ctx context.Context) (repo.SalesTotals, error) {
	var row struct {
		Revenue int64
		Sales   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(amount), 0) AS revenue, COUNT(*) AS sales").
		Scan(&row).Error
	if err != nil {
		return repo.SalesTotals{}, err
	}
	return repo.SalesTotals{Revenue: row.Revenue, Sales: row.Sales}, nil
}

// 直近の注文（購入者つき）
func (r *OrderGormRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 7
	}

	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// since以降の注文（古い順）
func (r *OrderGormRepository) ListSince(ctx context.Context, since time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}
