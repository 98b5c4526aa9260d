package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/dayplan"
	"mumu_delivery/internal/models"
	"mumu_delivery/internal/repository"
)

// RouteService manages the per-driver, per-day stop lists. Every
// mutation commits first and then re-reads the day, so the returned
// DayView is always what storage holds.
type RouteService struct {
	Store           *repository.Store
	AllowDuplicates bool
	Timezone        *time.Location
	Now             func() time.Time
}

func NewRouteService(store *repository.Store, allowDuplicates bool, tz *time.Location) *RouteService {
	if tz == nil {
		tz = time.UTC
	}
	return &RouteService{Store: store, AllowDuplicates: allowDuplicates, Timezone: tz, Now: time.Now}
}

type AssignInput struct {
	Date       string
	DriverID   uint
	LocationID uint
}

type ReorderInput struct {
	Date      string
	DriverID  uint
	Index     int
	Direction string
}

// ResolveDate returns the normalised date, today when raw is empty.
func (s *RouteService) ResolveDate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return dayplan.Today(s.Now(), s.Timezone), nil
	}
	return dayplan.ParseDate(raw)
}

func (s *RouteService) requireDriver(ctx context.Context, store *repository.Store, op string, driverID uint) (*models.User, error) {
	if driverID == 0 {
		return nil, apperr.Validation(op, "driver_id is required")
	}
	u, err := store.Users.FindByID(ctx, driverID)
	if err != nil {
		return nil, lookupErr(op, "driver", err)
	}
	if u.Role != models.RoleDriver {
		return nil, apperr.NotFound(op, "driver")
	}
	return u, nil
}

// List returns a driver's stops for date ordered by sequence.
func (s *RouteService) List(ctx context.Context, date string, driverID uint) (*DayView, error) {
	const op = "routes.List"
	d, err := s.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireDriver(ctx, s.Store, op, driverID); err != nil {
		return nil, err
	}
	return s.day(ctx, op, d, driverID)
}

func (s *RouteService) day(ctx context.Context, op, date string, driverID uint) (*DayView, error) {
	routes, err := s.Store.Routes.ListForDriverDay(ctx, date, driverID)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	return newDayView(date, driverID, routes, s.Timezone), nil
}

// Assign appends location to the driver's day as a pending stop with
// sequence count+1.
func (s *RouteService) Assign(ctx context.Context, in AssignInput) (*DayView, error) {
	const op = "routes.Assign"
	if in.Date == "" {
		return nil, apperr.Validation(op, "date is required")
	}
	date, err := dayplan.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.LocationID == 0 {
		return nil, apperr.Validation(op, "location_id is required")
	}

	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.requireDriver(ctx, tx, op, in.DriverID); err != nil {
			return err
		}
		if _, err := tx.Locations.FindByID(ctx, in.LocationID); err != nil {
			return lookupErr(op, "location", err)
		}

		current, err := tx.Routes.ListForDriverDay(ctx, date, in.DriverID)
		if err != nil {
			return apperr.Store(op, err)
		}
		if !s.AllowDuplicates && dayplan.HasLocation(current, in.LocationID) {
			return apperr.DuplicateAssignment(op)
		}

		entry := dayplan.NewEntry(date, in.DriverID, in.LocationID, current)
		if err := tx.Routes.Create(ctx, &entry); err != nil {
			return apperr.Store(op, err)
		}
		logrus.WithFields(logrus.Fields{
			"route_id":    entry.ID,
			"driver_id":   in.DriverID,
			"location_id": in.LocationID,
			"date":        date,
			"sequence":    entry.Sequence,
		}).Info("route assigned")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.day(ctx, op, date, in.DriverID)
}

// Remove deletes one stop. The remaining stops keep their stored
// sequence values; only the display order is re-derived.
func (s *RouteService) Remove(ctx context.Context, routeID uint, confirmed bool) (*DayView, error) {
	const op = "routes.Remove"
	if !confirmed {
		return nil, apperr.ConfirmationRequired(op)
	}
	route, err := s.Store.Routes.FindByID(ctx, routeID)
	if err != nil {
		return nil, lookupErr(op, "route", err)
	}
	if err := s.Store.Routes.Delete(ctx, routeID); err != nil {
		return nil, apperr.Store(op, err)
	}
	logrus.WithFields(logrus.Fields{"route_id": routeID, "driver_id": route.DriverID, "date": route.Date}).Info("route removed")
	return s.day(ctx, op, route.Date, route.DriverID)
}

// Reorder swaps the stop at Index with its neighbour. A day left with
// gaps or ties by earlier removals is renumbered 1..N in the same
// transaction. Boundary moves change nothing.
func (s *RouteService) Reorder(ctx context.Context, in ReorderInput) (*DayView, error) {
	const op = "routes.Reorder"
	date, err := dayplan.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	dir, err := dayplan.ParseDirection(in.Direction)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireDriver(ctx, s.Store, op, in.DriverID); err != nil {
		return nil, err
	}

	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Routes.ListForDriverDay(ctx, date, in.DriverID)
		if err != nil {
			return apperr.Store(op, err)
		}
		_, updates, err := dayplan.Swap(current, in.Index, dir)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Routes.UpdateSequences(ctx, updates); err != nil {
			return apperr.Store(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.day(ctx, op, date, in.DriverID)
}

// SetInstruction overwrites the admin instruction; nil or blank clears it.
func (s *RouteService) SetInstruction(ctx context.Context, routeID uint, text *string) (*DayView, error) {
	const op = "routes.SetInstruction"
	route, err := s.Store.Routes.FindByID(ctx, routeID)
	if err != nil {
		return nil, lookupErr(op, "route", err)
	}

	var memo *string
	if text != nil {
		if trimmed := strings.TrimSpace(*text); trimmed != "" {
			memo = &trimmed
		}
	}
	if err := s.Store.Routes.UpdateMemo(ctx, routeID, memo); err != nil {
		return nil, apperr.Store(op, err)
	}
	return s.day(ctx, op, route.Date, route.DriverID)
}

// Board is the admin status overview: every driver with their stops for
// date and how many are done.
func (s *RouteService) Board(ctx context.Context, date string) (*Board, error) {
	const op = "routes.Board"
	d, err := s.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	drivers, err := s.Store.Users.ListDrivers(ctx)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	routes, err := s.Store.Routes.ListForDay(ctx, d)
	if err != nil {
		return nil, apperr.Store(op, err)
	}

	byDriver := dayplan.Group(routes)
	board := &Board{Date: d, Drivers: make([]BoardColumn, 0, len(drivers))}
	for _, drv := range drivers {
		mine := byDriver[drv.ID]
		done, total := dayplan.Progress(mine)
		board.Drivers = append(board.Drivers, BoardColumn{
			Driver:    toDriverView(drv),
			Stops:     toStops(mine, s.Timezone),
			Assigned:  total,
			Completed: done,
		})
	}
	return board, nil
}

// Drivers lists every driver profile by name.
func (s *RouteService) Drivers(ctx context.Context) ([]DriverView, error) {
	users, err := s.Store.Users.ListDrivers(ctx)
	if err != nil {
		return nil, apperr.Store("routes.Drivers", err)
	}
	out := make([]DriverView, 0, len(users))
	for _, u := range users {
		out = append(out, toDriverView(u))
	}
	return out, nil
}
