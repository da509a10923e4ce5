package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/feather-works/feather-backend/model"
)

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDBConnection opens the primary postgres connection from DB_* environment
// variables. TranslateError is on so that unique violations surface as
// gorm.ErrDuplicatedKey instead of driver specific errors.
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getenvDefault("DB_HOST", "localhost"),
		getenvDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASS"),
		getenvDefault("DB_NAME", "feather"),
		getenvDefault("DB_PORT", "5432"),
		getenvDefault("DB_SSLMODE", "disable"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "fail to connect to database")
	}
	return db, nil
}

// DatabaseSetupAndMigration migrates every owned table on the given
// connection.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return model.AutoMigrate(db)
}

// CreateTempDB returns an isolated in-memory sqlite database, fully migrated,
// for use in unit tests. The second return value tears it down.
func CreateTempDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	name := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("fail to open temp database: %v", err)
	}
	// sqlite only honors ON DELETE actions with this pragma on.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("fail to enable foreign keys: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("fail to migrate temp database: %v", err)
	}

	return db, func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
