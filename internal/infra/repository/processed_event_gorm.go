package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProcessedEventGormRepository struct {
	db *gorm.DB
}

func NewProcessedEventGormRepository(db *gorm.DB) *ProcessedEventGormRepository {
	return &ProcessedEventGormRepository{db: db}
}

// event_idの主キーで二重処理を防ぐ
func (r *ProcessedEventGormRepository) Record(ctx context.Context, ev model.ProcessedEvent) error {
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProcessedEventGormRepository) FindByID(ctx context.Context, eventID string) (model.ProcessedEvent, error) {
	var ev model.ProcessedEvent
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&ev).Error
	if isNotFound(err) {
		return model.ProcessedEvent{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProcessedEvent{}, err
	}
	return ev, nil
}

func (r *ProcessedEventGormRepository) MarkCartCleared(ctx context.Context, eventID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProcessedEvent{}).
		Where("event_id = ?", eventID).
		Update("cart_cleared_at", at)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
