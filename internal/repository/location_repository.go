package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"mumu_delivery/internal/models"
)

type LocationRepository struct{ DB *gorm.DB }

func NewLocationRepository(db *gorm.DB) *LocationRepository { return &LocationRepository{DB: db} }

func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	return r.DB.WithContext(ctx).Create(loc).Error
}

// Update overwrites every editable column, including empty ones.
func (r *LocationRepository) Update(ctx context.Context, loc *models.Location) error {
	res := r.DB.WithContext(ctx).Model(&models.Location{}).
		Where("id = ?", loc.ID).
		Updates(map[string]interface{}{
			"name":        loc.Name,
			"address":     loc.Address,
			"region":      loc.Region,
			"access_info": loc.AccessInfo,
			"geometry":    loc.Geometry,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	if err := r.DB.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// Delete is a soft delete; route history keeps pointing at the row.
func (r *LocationRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Location{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LocationRepository) List(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	err := r.DB.WithContext(ctx).Order("name asc").Order("id asc").Find(&locs).Error
	return locs, err
}

// Search matches a case-insensitive substring of name or address.
func (r *LocationRepository) Search(ctx context.Context, q string) ([]models.Location, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	var locs []models.Location
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(address) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("name asc").Order("id asc").
		Find(&locs).Error
	return locs, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
