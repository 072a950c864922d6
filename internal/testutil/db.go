package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens an in-memory SQLite database with all tables migrated.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&schema.Skill{},
		&schema.Profile{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
