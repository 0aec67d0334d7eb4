// Package databasetest opens throwaway SQLite databases with the
// application schema for use in tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/database"
)

// New returns a migrated database stored in the test's temp dir.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shopledger.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_time_format=sqlite"), database.Config())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSeeded returns a migrated database holding the reference catalog.
func NewSeeded(t *testing.T) *gorm.DB {
	t.Helper()

	db := New(t)
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return db
}
