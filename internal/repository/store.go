// Package repository is the gorm-backed data store.
//
// Consistency contract: read-your-writes with caller re-fetch. Nothing is
// cached; services re-read the affected rows after every mutation and
// that read is the source of truth.
package repository

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	DB        *gorm.DB
	Users     *UserRepository
	Locations *LocationRepository
	Routes    *RouteRepository
	Logs      *LogRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:        db,
		Users:     NewUserRepository(db),
		Locations: NewLocationRepository(db),
		Routes:    NewRouteRepository(db),
		Logs:      NewLogRepository(db),
	}
}

// Transaction runs fn against a store bound to a single transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
