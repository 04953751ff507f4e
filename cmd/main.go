package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/s/bitmentor/internal/config"
	"github.com/s/bitmentor/internal/database"
	"github.com/s/bitmentor/internal/log"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bitmentor",
	Short: "BitMentor - courses, mock tests and a forum for new programmers",
	Long: `BitMentor serves the learning site: sign-up and login, the course
catalog with lesson progress, mock tests, a study scheduler and a forum.

Configuration comes from the environment or a .env file.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("BitMentor version %s\nCommit: %s\n", Version, Commit))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Logger.Info().Msg("schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the course catalog and mock tests",
	Long:  `Seed migrates the schema and inserts the reference courses, lessons and test questions. Running it twice is harmless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Logger.Info().Msg("seed data loaded")
		return nil
	},
}

// bootstrap loads configuration, sets up logging and connects to the database.
func bootstrap() (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return database.Connect(cfg)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log.Init(log.Config{
		Level:      cfg.LogLevel,
		JSONOutput: cfg.LogJSON,
	})
	return cfg, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
