package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSessionKey = "super-secret-default-key"

// Config holds application configuration
type Config struct {
	Port        string
	Environment string

	DBDriver    string
	DatabaseURL string
	SeedOnStart bool

	SessionKey   string
	SessionTTL   time.Duration
	CookieSecure bool
	RedisURL     string

	LogLevel   string
	LogJSON    bool
	BcryptCost int
	StaticDir  string

	Google GoogleConfig
}

// GoogleConfig enables the optional Google sign-in when all fields are set.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

// UsingDefaultSessionKey reports whether SESSION_KEY was left unset.
func (c *Config) UsingDefaultSessionKey() bool {
	return c.SessionKey == defaultSessionKey
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// .env is optional, system variables are used otherwise
	_ = godotenv.Load()

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "host=db user=postgres password=1234 dbname=bitmentor port=5432 sslmode=disable")
	v.SetDefault("seed_on_start", true)
	v.SetDefault("session_key", defaultSessionKey)
	v.SetDefault("session_ttl", 7*24*time.Hour)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("redis_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("static_dir", "./static")
	v.SetDefault("google_client_id", "")
	v.SetDefault("google_client_secret", "")
	v.SetDefault("google_redirect_url", "")
	v.AutomaticEnv()

	cfg := &Config{
		Port:         v.GetString("port"),
		Environment:  v.GetString("env"),
		DBDriver:     strings.ToLower(v.GetString("db_driver")),
		DatabaseURL:  v.GetString("database_url"),
		SeedOnStart:  v.GetBool("seed_on_start"),
		SessionKey:   v.GetString("session_key"),
		SessionTTL:   v.GetDuration("session_ttl"),
		CookieSecure: v.GetBool("cookie_secure"),
		RedisURL:     v.GetString("redis_url"),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		LogJSON:      v.GetBool("log_json"),
		BcryptCost:   v.GetInt("bcrypt_cost"),
		StaticDir:    v.GetString("static_dir"),
		Google: GoogleConfig{
			ClientID:     v.GetString("google_client_id"),
			ClientSecret: v.GetString("google_client_secret"),
			RedirectURL:  v.GetString("google_redirect_url"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q (want postgres or sqlite)", c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST out of range: %d", c.BcryptCost)
	}
	return nil
}
