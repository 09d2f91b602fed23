package services

import (
	"testing"
	"time"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points config.DB at a fresh in-memory sqlite database. A single
// connection keeps sqlite's locking out of the way while still exercising the
// transactional paths.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Checklist{},
		&models.Regret{},
		&models.Network{},
	))

	config.DB = db
	config.Rdb = nil
	t.Cleanup(func() {
		sqlDB.Close()
		config.DB = nil
	})
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:        username,
		Password:        "irrelevant",
		IsActive:        true,
		AllowNetworking: true,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return &user
}

// pinClock fixes the service clock and restores it when the test ends.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return at }
	t.Cleanup(func() { Now = prev })
}
