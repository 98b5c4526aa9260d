package models

import (
	"strings"
	"time"
)

// LogType is the outcome a driver records for a stop.
type LogType string

const (
	LogDelivery LogType = "DELIVERY"
	LogPickup   LogType = "PICKUP"
	LogBoth     LogType = "BOTH"
	LogOther    LogType = "OTHER"
)

func (t LogType) Valid() bool {
	switch t {
	case LogDelivery, LogPickup, LogBoth, LogOther:
		return true
	}
	return false
}

func ParseLogType(s string) (LogType, bool) {
	t := LogType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// DeliveryLog records the outcome of a visit. A route entry holds at most
// one; later driver actions overwrite Type and Memo but keep CreatedAt.
type DeliveryLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RouteID   uint      `json:"route_id" gorm:"not null;uniqueIndex"`
	Type      LogType   `json:"type" gorm:"type:varchar(16);not null"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
