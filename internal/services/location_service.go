package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/geo"
	"mumu_delivery/internal/models"
	"mumu_delivery/internal/repository"
	"mumu_delivery/internal/status"
)

type LocationService struct {
	Store    *repository.Store
	Timezone *time.Location
}

func NewLocationService(store *repository.Store, tz *time.Location) *LocationService {
	if tz == nil {
		tz = time.UTC
	}
	return &LocationService{Store: store, Timezone: tz}
}

// LocationInput is the admin form. Geometry is an optional GeoJSON Point;
// nil leaves the stored pin as is and an empty string removes it.
type LocationInput struct {
	Name       string
	Address    string
	Region     string
	AccessInfo string
	Geometry   *string
}

func (in LocationInput) validate(op string) (models.Region, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.AccessInfo) == "" {
		return "", apperr.Validation(op, "name, address and access_info are required")
	}
	region, ok := models.ParseRegion(in.Region)
	if !ok {
		return "", apperr.Validation(op, "region must be NORTH or SOUTH")
	}
	return region, nil
}

func (in LocationInput) apply(op string, loc *models.Location, region models.Region) error {
	loc.Name = strings.TrimSpace(in.Name)
	loc.Address = strings.TrimSpace(in.Address)
	loc.Region = region
	loc.AccessInfo = strings.TrimSpace(in.AccessInfo)
	if in.Geometry != nil {
		g, err := geo.ParsePoint(strings.TrimSpace(*in.Geometry))
		if err != nil {
			return apperr.Validation(op, "invalid geometry: "+err.Error())
		}
		loc.Geometry = g
	}
	return nil
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (*LocationView, error) {
	const op = "locations.Create"
	region, err := in.validate(op)
	if err != nil {
		return nil, err
	}
	var loc models.Location
	if err := in.apply(op, &loc, region); err != nil {
		return nil, err
	}
	if err := s.Store.Locations.Create(ctx, &loc); err != nil {
		return nil, apperr.Store(op, err)
	}
	logrus.WithFields(logrus.Fields{"location_id": loc.ID, "name": loc.Name}).Info("location created")
	v := toLocationView(loc)
	return &v, nil
}

func (s *LocationService) Update(ctx context.Context, id uint, in LocationInput) (*LocationView, error) {
	const op = "locations.Update"
	region, err := in.validate(op)
	if err != nil {
		return nil, err
	}
	loc, err := s.Store.Locations.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "location", err)
	}
	if err := in.apply(op, loc, region); err != nil {
		return nil, err
	}
	if err := s.Store.Locations.Update(ctx, loc); err != nil {
		return nil, lookupErr(op, "location", err)
	}
	fresh, err := s.Store.Locations.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "location", err)
	}
	v := toLocationView(*fresh)
	return &v, nil
}

// Delete soft-deletes the location. Stops already planned for it stay in
// place and keep showing its name.
func (s *LocationService) Delete(ctx context.Context, id uint, confirmed bool) error {
	const op = "locations.Delete"
	if !confirmed {
		return apperr.ConfirmationRequired(op)
	}
	if err := s.Store.Locations.Delete(ctx, id); err != nil {
		return lookupErr(op, "location", err)
	}
	logrus.WithField("location_id", id).Info("location deleted")
	return nil
}

func (s *LocationService) List(ctx context.Context) ([]LocationView, error) {
	locs, err := s.Store.Locations.List(ctx)
	if err != nil {
		return nil, apperr.Store("locations.List", err)
	}
	return toLocationViews(locs), nil
}

// Search matches name or address; an empty query matches nothing.
func (s *LocationService) Search(ctx context.Context, q string) ([]LocationView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []LocationView{}, nil
	}
	locs, err := s.Store.Locations.Search(ctx, q)
	if err != nil {
		return nil, apperr.Store("locations.Search", err)
	}
	return toLocationViews(locs), nil
}

// History lists every stop ever planned at the location, newest first.
func (s *LocationService) History(ctx context.Context, id uint) (*LocationView, []HistoryEntry, error) {
	const op = "locations.History"
	loc, err := s.Store.Locations.FindByID(ctx, id)
	if err != nil {
		return nil, nil, lookupErr(op, "location", err)
	}
	routes, err := s.Store.Routes.ListForLocation(ctx, id)
	if err != nil {
		return nil, nil, apperr.Store(op, err)
	}
	out := make([]HistoryEntry, 0, len(routes))
	for _, r := range routes {
		out = append(out, HistoryEntry{
			RouteID:    r.ID,
			Date:       r.Date,
			DriverID:   r.DriverID,
			DriverName: r.Driver.Name,
			Sequence:   r.Sequence,
			Status:     r.Status,
			AdminMemo:  r.AdminMemo,
			Display:    status.ProjectEntry(r, s.Timezone),
			Log:        r.FirstLog(),
		})
	}
	v := toLocationView(*loc)
	return &v, out, nil
}

func toLocationViews(locs []models.Location) []LocationView {
	out := make([]LocationView, 0, len(locs))
	for _, l := range locs {
		out = append(out, toLocationView(l))
	}
	return out
}
