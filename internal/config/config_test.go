package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"mumu_delivery/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.AllowDuplicateAssignments)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("ALLOW_DUPLICATE_ASSIGNMENTS", "false")
	t.Setenv("APP_TIMEZONE", "Nowhere/Atlantis")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.AllowDuplicateAssignments)
	assert.Equal(t, time.UTC, cfg.Timezone)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "-3")
	t.Setenv("ALLOW_DUPLICATE_ASSIGNMENTS", "maybe")

	cfg := Load()
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.AllowDuplicateAssignments)
}

func TestOpen_Migrates(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	for _, m := range []interface{}{&models.User{}, &models.Location{}, &models.DailyRoute{}, &models.DeliveryLog{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasTable("profiles"))
}

func TestInitDB_SQLiteReturnsMigratedHandle(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "mumu.db")})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.True(t, db.Migrator().HasTable(&models.DailyRoute{}))
}

func TestInitDB_RejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&Config{DBDriver: "mongo"})
	assert.Error(t, err)
}
