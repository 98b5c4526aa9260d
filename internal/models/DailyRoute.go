package models

import (
	"gorm.io/gorm"
)

// RouteStatus only ever moves from PENDING to COMPLETED.
type RouteStatus string

const (
	RouteStatusPending   RouteStatus = "PENDING"
	RouteStatusCompleted RouteStatus = "COMPLETED"
)

func (s RouteStatus) Valid() bool {
	switch s {
	case RouteStatusPending, RouteStatusCompleted:
		return true
	}
	return false
}

// DailyRoute is one planned stop: a driver visiting a location on a date.
// Removal is a soft delete so the stop's delivery log is never lost.
// Sequence is unique per (driver, date) right after assignment; removals
// leave gaps that are only visible in storage.
type DailyRoute struct {
	gorm.Model
	Date       string      `json:"date" gorm:"type:varchar(10);not null;index:idx_route_day,priority:1"`
	DriverID   uint        `json:"driver_id" gorm:"not null;index:idx_route_day,priority:2"`
	Driver     User        `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	LocationID uint        `json:"location_id" gorm:"not null;index"`
	Location   Location    `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Sequence   int         `json:"sequence" gorm:"not null"`
	Status     RouteStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	AdminMemo  *string     `json:"admin_memo"`

	Logs []DeliveryLog `json:"logs,omitempty" gorm:"foreignKey:RouteID"`
}

// FirstLog returns the authoritative log, or nil when the stop has none.
func (r *DailyRoute) FirstLog() *DeliveryLog {
	if len(r.Logs) == 0 {
		return nil
	}
	return &r.Logs[0]
}
