// Package testdb opens throwaway SQLite databases for tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/s/bitmentor/internal/database"
)

// New returns a migrated and seeded in-memory database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db := Empty(t)
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// Empty returns a migrated database without seed data.
func Empty(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
