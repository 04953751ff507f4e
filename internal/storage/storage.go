package storage

import (
	"context"

	"gorm.io/gorm"
)

// Storage wraps a gorm handle; one method per query used by the services.
type Storage struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// DB exposes the underlying handle for callers that need raw access (tests, health checks).
func (s *Storage) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a database transaction. fn receives a Storage bound to
// the transaction; the transaction is rolled back when fn returns an error or panics.
func (s *Storage) Transaction(ctx context.Context, fn func(tx *Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Storage{db: tx})
	})
}

// Ping checks that the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
