package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"mumu_delivery/internal/config"
	"mumu_delivery/internal/models"
	"mumu_delivery/internal/repository"
)

// setupTestStore opens a private in-memory database with the full schema.
// One connection keeps the memory database alive for the whole test.
func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := config.Open(sqlite.Open(":memory:"), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return repository.NewStore(db)
}

func seedUser(t *testing.T, store *repository.Store, name, email string, role models.Role) models.User {
	t.Helper()
	u := models.User{Name: name, Email: email, Password: "x", Role: role}
	require.NoError(t, store.Users.Create(context.Background(), &u))
	return u
}

func seedDriver(t *testing.T, store *repository.Store, name string) models.User {
	t.Helper()
	return seedUser(t, store, name, name+"@mumu.com", models.RoleDriver)
}

func seedLocation(t *testing.T, store *repository.Store, name string) models.Location {
	t.Helper()
	loc := models.Location{Name: name, Address: name + " 주소", Region: models.RegionNorth, AccessInfo: "#1234"}
	require.NoError(t, store.Locations.Create(context.Background(), &loc))
	return loc
}

func stopLocations(v *DayView) []uint {
	ids := make([]uint, len(v.Stops))
	for i, s := range v.Stops {
		ids[i] = s.Location.ID
	}
	return ids
}

func stopSequences(v *DayView) []int {
	seqs := make([]int, len(v.Stops))
	for i, s := range v.Stops {
		seqs[i] = s.Sequence
	}
	return seqs
}

var kst = time.FixedZone("KST", 9*60*60)

func ptr(s string) *string { return &s }
