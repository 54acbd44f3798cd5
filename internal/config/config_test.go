package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naijatax/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxLifetime)
	assert.Equal(t, "authenticated", cfg.Auth.Audience)
	assert.Equal(t, 30*time.Second, cfg.Auth.Leeway)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "", cfg.RateTables.File)
	assert.Equal(t, 10, cfg.Tax.MaxSummaryYears)
	assert.Len(t, cfg.CORS.AllowedOrigins, 3)
	assert.False(t, cfg.Reminders.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Reminders.Interval)
	assert.Equal(t, 72*time.Hour, cfg.Reminders.ResendAfter)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NAIJATAX_DB_HOST", "db.internal")
	t.Setenv("NAIJATAX_RATETABLES_FILE", "/etc/naijatax/ratetables.yaml")
	t.Setenv("NAIJATAX_TAX_SUMMARY_CONCURRENCY", "8")
	t.Setenv("NAIJATAX_CORS_ALLOWED_ORIGINS", "https://app.naijatax.ng, https://naijatax.ng")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "/etc/naijatax/ratetables.yaml", cfg.RateTables.File)
	assert.Equal(t, 8, cfg.Tax.SummaryConcurrency)
	assert.Equal(t, []string{"https://app.naijatax.ng", "https://naijatax.ng"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestConfig_Validate_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("NAIJATAX_SERVER_ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "a-real-secret"
	assert.NoError(t, cfg.Validate())
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "h", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}

	assert.Equal(t, "postgres://u:p@h:5433/n?sslmode=require", db.DSN())
}

func TestConfig_Validate_ReminderInterval(t *testing.T) {
	t.Setenv("NAIJATAX_REMINDERS_ENABLED", "true")
	t.Setenv("NAIJATAX_REMINDERS_INTERVAL", "0s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Error(t, cfg.Validate())
}
