package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/s/bitmentor/internal/auth"
	"github.com/s/bitmentor/internal/config"
	"github.com/s/bitmentor/internal/database"
	"github.com/s/bitmentor/internal/handlers"
	"github.com/s/bitmentor/internal/log"
	"github.com/s/bitmentor/internal/service"
	"github.com/s/bitmentor/internal/session"
	"github.com/s/bitmentor/internal/storage"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		return serve(cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT)")
}

func serve(cfg *config.Config) error {
	logger := log.WithComponent("server")

	// ---------------------------
	// 1. Database
	// ---------------------------
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB(db)

	// ---------------------------
	// 2. Migrations and seed data
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedOnStart {
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// ---------------------------
	// 3. Google OAuth (optional)
	// ---------------------------
	var oauthConfig *oauth2.Config
	if cfg.Google.Enabled() {
		oauthConfig = auth.InitGoogleOAuthConfig(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	} else {
		logger.Info().Msg("GOOGLE_* variables not set, Google sign-in disabled")
	}

	// ---------------------------
	// 4. Sessions
	// ---------------------------
	sessionKey := []byte(cfg.SessionKey)
	if cfg.UsingDefaultSessionKey() {
		// development only: sessions do not survive a restart
		sessionKey = securecookie.GenerateRandomKey(32)
		logger.Warn().Msg("SESSION_KEY not set, using a random per-process key")
	}

	var store session.Store = session.NewMemoryStore()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		store = session.NewRedisStore(redisClient)
		logger.Info().Msg("sessions stored in redis")
	}
	sessions := session.NewManager(sessionKey, store, cfg.SessionTTL, cfg.CookieSecure)

	// ---------------------------
	// 5. Handlers
	// ---------------------------
	svc := service.New(storage.New(db), service.Options{BcryptCost: cfg.BcryptCost})
	h, err := handlers.NewHandler(svc, sessions, handlers.Options{
		OAuth:         oauthConfig,
		Logger:        log.WithComponent("http"),
		SecureCookies: cfg.CookieSecure,
		StaticDir:     cfg.StaticDir,
	})
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	// ---------------------------
	// 6. Server
	// ---------------------------
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
	return nil
}
