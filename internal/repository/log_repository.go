package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mumu_delivery/internal/models"
)

type LogRepository struct{ DB *gorm.DB }

func NewLogRepository(db *gorm.DB) *LogRepository { return &LogRepository{DB: db} }

// FirstForRoute returns the authoritative log of a stop, nil when none.
func (r *LogRepository) FirstForRoute(ctx context.Context, routeID uint) (*models.DeliveryLog, error) {
	var l models.DeliveryLog
	err := r.DB.WithContext(ctx).Where("route_id = ?", routeID).Order("id asc").First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LogRepository) CountForRoute(ctx context.Context, routeID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.DeliveryLog{}).Where("route_id = ?", routeID).Count(&n).Error
	return n, err
}

func (r *LogRepository) Create(ctx context.Context, l *models.DeliveryLog) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

// Overwrite replaces type and memo; created_at stays as first recorded.
func (r *LogRepository) Overwrite(ctx context.Context, id uint, t models.LogType, memo string) error {
	return r.DB.WithContext(ctx).Model(&models.DeliveryLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"type": t, "memo": memo}).Error
}
