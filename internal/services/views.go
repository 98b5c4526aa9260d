package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"mumu_delivery/internal/dayplan"
	"mumu_delivery/internal/geo"
	"mumu_delivery/internal/models"
	"mumu_delivery/internal/status"
)

type LocationView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Address     string        `json:"address"`
	Region      models.Region `json:"region"`
	RegionLabel string        `json:"region_label"`
	AccessInfo  string        `json:"access_info"`
	Geometry    string        `json:"geometry,omitempty"`
	Deleted     bool          `json:"deleted,omitempty"`
}

func toLocationView(loc models.Location) LocationView {
	g, err := geo.ToGeoJSON(loc.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("location_id", loc.ID).Warn("stored location geometry is unreadable")
	}
	return LocationView{
		ID:          loc.ID,
		Name:        loc.Name,
		Address:     loc.Address,
		Region:      loc.Region,
		RegionLabel: loc.Region.Label(),
		AccessInfo:  loc.AccessInfo,
		Geometry:    g,
		Deleted:     loc.DeletedAt.Valid,
	}
}

// Stop is one route entry as the views render it. Position is the 1-based
// place in the sorted list, which can differ from the stored Sequence
// after a removal.
type Stop struct {
	ID        uint                `json:"id"`
	Position  int                 `json:"position"`
	Sequence  int                 `json:"sequence"`
	Date      string              `json:"date"`
	DriverID  uint                `json:"driver_id"`
	Status    models.RouteStatus  `json:"status"`
	AdminMemo *string             `json:"admin_memo,omitempty"`
	Location  LocationView        `json:"location"`
	Display   status.Display      `json:"display"`
	Log       *models.DeliveryLog `json:"log,omitempty"`
}

func toStop(r models.DailyRoute, position int, loc *time.Location) Stop {
	return Stop{
		ID:        r.ID,
		Position:  position,
		Sequence:  r.Sequence,
		Date:      r.Date,
		DriverID:  r.DriverID,
		Status:    r.Status,
		AdminMemo: r.AdminMemo,
		Location:  toLocationView(r.Location),
		Display:   status.ProjectEntry(r, loc),
		Log:       r.FirstLog(),
	}
}

func toStops(routes []models.DailyRoute, loc *time.Location) []Stop {
	stops := make([]Stop, 0, len(routes))
	for i, r := range routes {
		stops = append(stops, toStop(r, i+1, loc))
	}
	return stops
}

// DayView is a driver's ordered stop list for one date.
type DayView struct {
	Date      string `json:"date"`
	DriverID  uint   `json:"driver_id"`
	Stops     []Stop `json:"stops"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

func newDayView(date string, driverID uint, routes []models.DailyRoute, loc *time.Location) *DayView {
	done, total := dayplan.Progress(routes)
	return &DayView{
		Date:      date,
		DriverID:  driverID,
		Stops:     toStops(routes, loc),
		Completed: done,
		Total:     total,
	}
}

type DriverView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toDriverView(u models.User) DriverView {
	return DriverView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// BoardColumn is one driver on the daily status board.
type BoardColumn struct {
	Driver    DriverView `json:"driver"`
	Stops     []Stop     `json:"stops"`
	Assigned  int        `json:"assigned"`
	Completed int        `json:"completed"`
}

type Board struct {
	Date    string        `json:"date"`
	Drivers []BoardColumn `json:"drivers"`
}

// HistoryEntry is one past visit to a location.
type HistoryEntry struct {
	RouteID    uint                `json:"route_id"`
	Date       string              `json:"date"`
	DriverID   uint                `json:"driver_id"`
	DriverName string              `json:"driver_name"`
	Sequence   int                 `json:"sequence"`
	Status     models.RouteStatus  `json:"status"`
	AdminMemo  *string             `json:"admin_memo,omitempty"`
	Display    status.Display      `json:"display"`
	Log        *models.DeliveryLog `json:"log,omitempty"`
}
