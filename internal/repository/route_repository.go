package repository

import (
	"context"

	"gorm.io/gorm"

	"mumu_delivery/internal/dayplan"
	"mumu_delivery/internal/models"
)

type RouteRepository struct{ DB *gorm.DB }

func NewRouteRepository(db *gorm.DB) *RouteRepository { return &RouteRepository{DB: db} }

// Deleted locations still resolve so old stops keep their name.
func withLocation(db *gorm.DB) *gorm.DB {
	return db.Preload("Location", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

func withLogs(db *gorm.DB) *gorm.DB {
	return db.Preload("Logs", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") })
}

func (r *RouteRepository) ordered(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Order("sequence asc").Order("created_at asc").Order("id asc")
}

func (r *RouteRepository) Create(ctx context.Context, route *models.DailyRoute) error {
	return r.DB.WithContext(ctx).Create(route).Error
}

func (r *RouteRepository) FindByID(ctx context.Context, id uint) (*models.DailyRoute, error) {
	var route models.DailyRoute
	q := withLogs(withLocation(r.DB.WithContext(ctx)))
	if err := q.First(&route, id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

// ListForDriverDay returns one driver's stops for date in visit order.
func (r *RouteRepository) ListForDriverDay(ctx context.Context, date string, driverID uint) ([]models.DailyRoute, error) {
	var routes []models.DailyRoute
	err := withLogs(withLocation(r.ordered(ctx))).
		Where("date = ? AND driver_id = ?", date, driverID).
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	dayplan.Sort(routes)
	return routes, nil
}

// ListForDay returns every driver's stops for date.
func (r *RouteRepository) ListForDay(ctx context.Context, date string) ([]models.DailyRoute, error) {
	var routes []models.DailyRoute
	err := withLogs(withLocation(r.ordered(ctx))).
		Preload("Driver").
		Where("date = ?", date).
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	dayplan.Sort(routes)
	return routes, nil
}

// ListForLocation is the visit history of a location, newest date first.
func (r *RouteRepository) ListForLocation(ctx context.Context, locationID uint) ([]models.DailyRoute, error) {
	var routes []models.DailyRoute
	err := withLogs(r.DB.WithContext(ctx)).
		Preload("Driver").
		Where("location_id = ?", locationID).
		Order("date desc").Order("sequence asc").Order("id asc").
		Find(&routes).Error
	return routes, err
}

// Delete removes a stop without renumbering the rest of the day.
func (r *RouteRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.DailyRoute{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSequences writes each update; run it inside a transaction so a
// swap lands completely or not at all.
func (r *RouteRepository) UpdateSequences(ctx context.Context, updates []dayplan.SequenceUpdate) error {
	for _, u := range updates {
		res := r.DB.WithContext(ctx).Model(&models.DailyRoute{}).
			Where("id = ?", u.RouteID).
			Update("sequence", u.Sequence)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// UpdateMemo sets or, with nil, clears the admin instruction.
func (r *RouteRepository) UpdateMemo(ctx context.Context, id uint, memo *string) error {
	res := r.DB.WithContext(ctx).Model(&models.DailyRoute{}).
		Where("id = ?", id).
		Update("admin_memo", memo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RouteRepository) UpdateStatus(ctx context.Context, id uint, status models.RouteStatus) error {
	return r.DB.WithContext(ctx).Model(&models.DailyRoute{}).
		Where("id = ?", id).
		Update("status", status).Error
}
