package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Auth       AuthConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Email      EmailConfig
	RateTables RateTablesConfig
	Tax        TaxConfig
	Reminders  RemindersConfig
}

// RemindersConfig controls the background VAT filing reminder worker.
type RemindersConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	Concurrency int           `mapstructure:"concurrency"`

	// A user reminded for a year is skipped until this much time has passed.
	ResendAfter time.Duration `mapstructure:"resend_after"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateTablesConfig points at an optional YAML file that adds or replaces
// tax-year rate tables on top of the built-in ones.
type RateTablesConfig struct {
	File string `mapstructure:"file"`
}

// TaxConfig bounds the tax computation endpoints.
type TaxConfig struct {
	// MaxSummaryYears caps how many years one multi-year request may compute.
	MaxSummaryYears int `mapstructure:"max_summary_years"`
	// SummaryConcurrency is how many years are computed at once.
	SummaryConcurrency int `mapstructure:"summary_concurrency"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// MaxLifetime recycles pooled connections; zero keeps them forever.
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig describes the bearer tokens issued by the hosted auth backend.
// Tokens are only verified here; this service never issues them.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	Audience  string        `mapstructure:"audience"`
	Leeway    time.Duration `mapstructure:"leeway"`
}

// S3Config holds AWS S3 settings for archived reports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	ReportPrefix  string `mapstructure:"report_prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate rejects settings that are only acceptable during development.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == defaultJWTSecret) {
		return errors.New("NAIJATAX_AUTH_JWT_SECRET must be set in production")
	}
	if c.Tax.MaxSummaryYears < 1 {
		return errors.New("tax.max_summary_years must be at least 1")
	}
	if c.Tax.SummaryConcurrency < 1 {
		return errors.New("tax.summary_concurrency must be at least 1")
	}
	if c.Reminders.Enabled && c.Reminders.Interval <= 0 {
		return errors.New("reminders.interval must be positive when reminders are enabled")
	}
	return nil
}

// Load reads configuration from environment variables with the NAIJATAX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NAIJATAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "naijatax")
	v.SetDefault("db.password", "naijatax_secret")
	v.SetDefault("db.name", "naijatax_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.max_lifetime", "30m")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", defaultJWTSecret)
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")
	v.SetDefault("auth.leeway", "30s")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "naijatax-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.report_prefix", "reports")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@naijatax.ng")
	v.SetDefault("email.from_name", "NaijaTax")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	v.SetDefault("ratetables.file", "")

	v.SetDefault("tax.max_summary_years", 10)
	v.SetDefault("tax.summary_concurrency", 4)

	v.SetDefault("reminders.enabled", false)
	v.SetDefault("reminders.interval", "24h")
	v.SetDefault("reminders.concurrency", 4)
	v.SetDefault("reminders.resend_after", "72h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "NAIJATAX_SERVER_PORT",
		"server.read_timeout":     "NAIJATAX_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "NAIJATAX_SERVER_WRITE_TIMEOUT",
		"server.environment":      "NAIJATAX_SERVER_ENVIRONMENT",
		"db.host":                 "NAIJATAX_DB_HOST",
		"db.port":                 "NAIJATAX_DB_PORT",
		"db.user":                 "NAIJATAX_DB_USER",
		"db.password":             "NAIJATAX_DB_PASSWORD",
		"db.name":                 "NAIJATAX_DB_NAME",
		"db.sslmode":              "NAIJATAX_DB_SSLMODE",
		"db.max_open":             "NAIJATAX_DB_MAX_OPEN",
		"db.max_idle":             "NAIJATAX_DB_MAX_IDLE",
		"db.max_lifetime":         "NAIJATAX_DB_MAX_LIFETIME",
		"auth.jwt_secret":         "NAIJATAX_AUTH_JWT_SECRET",
		"auth.issuer":             "NAIJATAX_AUTH_ISSUER",
		"auth.audience":           "NAIJATAX_AUTH_AUDIENCE",
		"auth.leeway":             "NAIJATAX_AUTH_LEEWAY",
		"s3.region":               "NAIJATAX_S3_REGION",
		"s3.bucket":               "NAIJATAX_S3_BUCKET",
		"s3.endpoint":             "NAIJATAX_S3_ENDPOINT",
		"s3.access_key":           "NAIJATAX_S3_ACCESS_KEY",
		"s3.secret_key":           "NAIJATAX_S3_SECRET_KEY",
		"s3.report_prefix":        "NAIJATAX_S3_REPORT_PREFIX",
		"s3.presign_expiry":       "NAIJATAX_S3_PRESIGN_EXPIRY",
		"log.level":               "NAIJATAX_LOG_LEVEL",
		"log.format":              "NAIJATAX_LOG_FORMAT",
		"cors.allowed_origins":    "NAIJATAX_CORS_ALLOWED_ORIGINS",
		"email.provider":          "NAIJATAX_EMAIL_PROVIDER",
		"email.region":            "NAIJATAX_EMAIL_REGION",
		"email.from_address":      "NAIJATAX_EMAIL_FROM_ADDRESS",
		"email.from_name":         "NAIJATAX_EMAIL_FROM_NAME",
		"email.frontend_url":      "NAIJATAX_EMAIL_FRONTEND_URL",
		"ratetables.file":         "NAIJATAX_RATETABLES_FILE",
		"tax.max_summary_years":   "NAIJATAX_TAX_MAX_SUMMARY_YEARS",
		"tax.summary_concurrency": "NAIJATAX_TAX_SUMMARY_CONCURRENCY",
		"reminders.enabled":       "NAIJATAX_REMINDERS_ENABLED",
		"reminders.interval":      "NAIJATAX_REMINDERS_INTERVAL",
		"reminders.concurrency":   "NAIJATAX_REMINDERS_CONCURRENCY",
		"reminders.resend_after":  "NAIJATAX_REMINDERS_RESEND_AFTER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if NAIJATAX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NAIJATAX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		MaxLifetime: v.GetDuration("db.max_lifetime"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
		Audience:  v.GetString("auth.audience"),
		Leeway:    v.GetDuration("auth.leeway"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		ReportPrefix:  v.GetString("s3.report_prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.RateTables = RateTablesConfig{
		File: v.GetString("ratetables.file"),
	}
	cfg.Tax = TaxConfig{
		MaxSummaryYears:    v.GetInt("tax.max_summary_years"),
		SummaryConcurrency: v.GetInt("tax.summary_concurrency"),
	}
	cfg.Reminders = RemindersConfig{
		Enabled:     v.GetBool("reminders.enabled"),
		Interval:    v.GetDuration("reminders.interval"),
		Concurrency: v.GetInt("reminders.concurrency"),
		ResendAfter: v.GetDuration("reminders.resend_after"),
	}

	return cfg, nil
}
