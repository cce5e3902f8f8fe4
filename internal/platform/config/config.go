package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Upstream feed
	ECBBaseURL  string
	FeedTimeout time.Duration

	// Ingestion schedule
	InitialImportDays int
	DailyImportCron   string
	RunStartupImport  bool

	// Read API
	CORSAllowedOrigins []string
	RatesCacheTTL      time.Duration
	APIRateLimit       string // ulule/limiter formatted rate, e.g. "120-M"

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("ECB_BASE_URL", "https://data-api.ecb.europa.eu")
	v.SetDefault("FEED_TIMEOUT", "60s")
	v.SetDefault("INITIAL_IMPORT_DAYS", 90)
	v.SetDefault("DAILY_IMPORT_CRON", "0 17 * * *")
	v.SetDefault("RUN_STARTUP_IMPORT", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")
	v.SetDefault("RATES_CACHE_TTL", "1m")
	v.SetDefault("API_RATE_LIMIT", "120-M")
	v.SetDefault("POSTHOG_API_KEY", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.ECBBaseURL = v.GetString("ECB_BASE_URL")
	cfg.InitialImportDays = v.GetInt("INITIAL_IMPORT_DAYS")
	cfg.DailyImportCron = v.GetString("DAILY_IMPORT_CRON")
	cfg.RunStartupImport = v.GetBool("RUN_STARTUP_IMPORT")
	cfg.APIRateLimit = v.GetString("API_RATE_LIMIT")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	feedTimeoutStr := v.GetString("FEED_TIMEOUT")
	feedTimeout, err := time.ParseDuration(feedTimeoutStr)
	if err != nil {
		feedTimeout = 60 * time.Second
		log.Printf("Warning: Invalid value for FEED_TIMEOUT ('%s'). Defaulting to %s.\n", feedTimeoutStr, feedTimeout)
	}
	cfg.FeedTimeout = feedTimeout

	cacheTTLStr := v.GetString("RATES_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = time.Minute
		log.Printf("Warning: Invalid value for RATES_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
	}
	cfg.RatesCacheTTL = cacheTTL

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// Validate reports configuration errors that would prevent the service from running.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("PGSQL_URL is required"))
	}
	if c.InitialImportDays < 0 {
		errs = append(errs, fmt.Errorf("INITIAL_IMPORT_DAYS must not be negative, got %d", c.InitialImportDays))
	}
	if c.FeedTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FEED_TIMEOUT must be positive, got %s", c.FeedTimeout))
	}
	if _, err := cron.ParseStandard(c.DailyImportCron); err != nil {
		errs = append(errs, fmt.Errorf("DAILY_IMPORT_CRON %q: %w", c.DailyImportCron, err))
	}
	return errors.Join(errs...)
}
