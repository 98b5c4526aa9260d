package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/dayplan"
	"mumu_delivery/internal/models"
	"mumu_delivery/internal/repository"
	"mumu_delivery/internal/session"
)

// DeliveryService records what a driver did at a stop.
type DeliveryService struct {
	Store    *repository.Store
	Timezone *time.Location
}

func NewDeliveryService(store *repository.Store, tz *time.Location) *DeliveryService {
	if tz == nil {
		tz = time.UTC
	}
	return &DeliveryService{Store: store, Timezone: tz}
}

type RecordInput struct {
	RouteID uint
	Type    string
	Memo    string
}

// Record creates the stop's log or, when one exists, overwrites its type
// and memo in place. Either way the stop ends up COMPLETED. Drivers may
// only record on their own stops.
func (s *DeliveryService) Record(ctx context.Context, sess *session.Session, in RecordInput) (*Stop, error) {
	const op = "delivery.Record"
	logType, ok := models.ParseLogType(in.Type)
	if !ok {
		return nil, apperr.Validation(op, "type must be one of DELIVERY, PICKUP, BOTH, OTHER")
	}
	if in.RouteID == 0 {
		return nil, apperr.Validation(op, "route id is required")
	}

	var created bool
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		route, err := tx.Routes.FindByID(ctx, in.RouteID)
		if err != nil {
			return lookupErr(op, "route", err)
		}
		if sess != nil && sess.IsDriver() && route.DriverID != sess.UserID {
			return apperr.Forbidden(op, "route is assigned to another driver")
		}
		if !dayplan.CanTransition(route.Status, models.RouteStatusCompleted) {
			return apperr.Validation(op, "route cannot be completed from status "+string(route.Status))
		}

		existing, err := tx.Logs.FirstForRoute(ctx, route.ID)
		if err != nil {
			return apperr.Store(op, err)
		}
		if existing != nil {
			if err := tx.Logs.Overwrite(ctx, existing.ID, logType, in.Memo); err != nil {
				return apperr.Store(op, err)
			}
		} else {
			entry := models.DeliveryLog{RouteID: route.ID, Type: logType, Memo: in.Memo}
			if err := tx.Logs.Create(ctx, &entry); err != nil {
				return apperr.Store(op, err)
			}
			created = true
		}

		if err := tx.Routes.UpdateStatus(ctx, route.ID, models.RouteStatusCompleted); err != nil {
			return apperr.Store(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"route_id": in.RouteID,
		"type":     logType,
		"created":  created,
	}).Info("delivery recorded")

	route, err := s.Store.Routes.FindByID(ctx, in.RouteID)
	if err != nil {
		return nil, lookupErr(op, "route", err)
	}
	siblings, err := s.Store.Routes.ListForDriverDay(ctx, route.Date, route.DriverID)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	position := 0
	for i, r := range siblings {
		if r.ID == route.ID {
			position = i + 1
			break
		}
	}
	stop := toStop(*route, position, s.Timezone)
	return &stop, nil
}
