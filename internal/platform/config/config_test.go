package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL:       "postgres://localhost:5432/currency",
		Port:              "8080",
		FeedTimeout:       time.Minute,
		InitialImportDays: 90,
		DailyImportCron:   "0 17 * * *",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	zeroWindow := validConfig()
	zeroWindow.InitialImportDays = 0
	assert.NoError(t, zeroWindow.Validate(), "a zero day window imports today only")

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, "PGSQL_URL"},
		{"negative window", func(c *Config) { c.InitialImportDays = -1 }, "INITIAL_IMPORT_DAYS"},
		{"zero timeout", func(c *Config) { c.FeedTimeout = 0 }, "FEED_TIMEOUT"},
		{"bad cron", func(c *Config) { c.DailyImportCron = "61 * * * *" }, "DAILY_IMPORT_CRON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	cfg.InitialImportDays = -3

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGSQL_URL")
	assert.Contains(t, err.Error(), "INITIAL_IMPORT_DAYS")
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MIGRATIONS_PATH", "ECB_BASE_URL", "FEED_TIMEOUT", "INITIAL_IMPORT_DAYS",
		"DAILY_IMPORT_CRON", "RUN_STARTUP_IMPORT", "CORS_ALLOWED_ORIGINS", "RATES_CACHE_TTL", "API_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("PGSQL_URL", "postgres://localhost:5432/currency")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/currency", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 90, cfg.InitialImportDays)
	assert.Equal(t, "0 17 * * *", cfg.DailyImportCron)
	assert.True(t, cfg.RunStartupImport)
	assert.Equal(t, 60*time.Second, cfg.FeedTimeout)
	assert.Equal(t, time.Minute, cfg.RatesCacheTTL)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://db/currency")
	t.Setenv("PORT", "9090")
	t.Setenv("INITIAL_IMPORT_DAYS", "30")
	t.Setenv("DAILY_IMPORT_CRON", "@daily")
	t.Setenv("RUN_STARTUP_IMPORT", "false")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("RATES_CACHE_TTL", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30, cfg.InitialImportDays)
	assert.Equal(t, "@daily", cfg.DailyImportCron)
	assert.False(t, cfg.RunStartupImport)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, time.Minute, cfg.RatesCacheTTL, "invalid durations fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}
