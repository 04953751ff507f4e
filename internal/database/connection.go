package database

import (
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver used below
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/bitmentor/internal/config"
	"github.com/s/bitmentor/internal/log"
)

const connectAttempts = 5

// Connect opens the database configured by DB_DRIVER / DATABASE_URL.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	lg := log.WithComponent("database")

	var db *gorm.DB
	var err error

	// Docker-based databases may take a few seconds to accept connections
	for i := 0; i < connectAttempts; i++ {
		db, err = Open(cfg.DBDriver, cfg.DatabaseURL, lg)
		if err == nil {
			lg.Info().Str("driver", cfg.DBDriver).Msg("connected to database")
			return db, nil
		}

		lg.Warn().Err(err).Int("attempt", i+1).Msg("database connection failed, retrying")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

// Open performs a single connection attempt.
func Open(driver, dsn string, lg zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        dsn,
		})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// relations are advisory, nothing is ever deleted
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: logger.New(gormWriter{lg}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one connection keeps an in-memory database alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

type gormWriter struct {
	lg zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.lg.Warn().Msgf(format, args...)
}
