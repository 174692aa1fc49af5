// Package dbtest provides a migrated in-memory database for tests.
package dbtest

import (
	"testing"

	"github.com/meinhoongagan/portfolio-api/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh SQLite database with foreign keys enforced and every
// table migrated. It is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// each connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { db.Close(database) })
	return database
}
