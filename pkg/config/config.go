// Package config loads application settings from the environment, an
// optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	Timezone  string

	// Database
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string

	// Redis, optional: enables the API rate limiter.
	RedisURL           string
	RateLimitPerMinute int

	// RabbitMQ, optional: the worker falls back to the in-process bus.
	RabbitMQURL string

	// HTTP API
	HTTPAddr           string
	CORSAllowedOrigins []string

	// Outbox
	OutboxPollInterval    time.Duration
	OutboxBatchSize       int
	OutboxMaxRetries      int
	OutboxCleanupInterval time.Duration
	OutboxRetentionDays   int

	// Worker
	WorkerHealthAddr string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("timezone", "UTC")

	v.SetDefault("database_driver", "auto")
	v.SetDefault("database_url", "")
	v.SetDefault("sqlite_path", "")

	v.SetDefault("redis_url", "")
	v.SetDefault("rate_limit_per_minute", 0)
	v.SetDefault("rabbitmq_url", "")

	v.SetDefault("http_addr", "127.0.0.1:8000")
	v.SetDefault("cors_allowed_origins", "*")

	v.SetDefault("outbox_poll_interval", time.Second)
	v.SetDefault("outbox_batch_size", 100)
	v.SetDefault("outbox_max_retries", 5)
	v.SetDefault("outbox_cleanup_interval", 24*time.Hour)
	v.SetDefault("outbox_retention_days", 14)

	v.SetDefault("worker_health_addr", "0.0.0.0:8081")

	v.SetDefault("mcp_addr", "127.0.0.1:8082")
	v.SetDefault("mcp_auth_token", "")
}

// Load reads .env (if present), the environment and, when configFile is not
// empty, that file. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:    v.GetString("app_env"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		Timezone:  v.GetString("timezone"),

		DatabaseDriver: v.GetString("database_driver"),
		DatabaseURL:    v.GetString("database_url"),
		SQLitePath:     v.GetString("sqlite_path"),

		RedisURL:           v.GetString("redis_url"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		RabbitMQURL:        v.GetString("rabbitmq_url"),

		HTTPAddr:           v.GetString("http_addr"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),

		OutboxPollInterval:    v.GetDuration("outbox_poll_interval"),
		OutboxBatchSize:       v.GetInt("outbox_batch_size"),
		OutboxMaxRetries:      v.GetInt("outbox_max_retries"),
		OutboxCleanupInterval: v.GetDuration("outbox_cleanup_interval"),
		OutboxRetentionDays:   v.GetInt("outbox_retention_days"),

		WorkerHealthAddr: v.GetString("worker_health_addr"),

		MCPAddr:      v.GetString("mcp_addr"),
		MCPAuthToken: v.GetString("mcp_auth_token"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("OUTBOX_POLL_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Unsetenv removes every key this package reads. Tests use it to start from
// a clean environment.
func Unsetenv() {
	for _, key := range Keys() {
		_ = os.Unsetenv(key)
	}
}

// Keys lists the environment variable names this package reads.
func Keys() []string {
	return []string{
		"APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "TIMEZONE",
		"DATABASE_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"REDIS_URL", "RATE_LIMIT_PER_MINUTE", "RABBITMQ_URL",
		"HTTP_ADDR", "CORS_ALLOWED_ORIGINS",
		"OUTBOX_POLL_INTERVAL", "OUTBOX_BATCH_SIZE", "OUTBOX_MAX_RETRIES",
		"OUTBOX_CLEANUP_INTERVAL", "OUTBOX_RETENTION_DAYS",
		"WORKER_HEALTH_ADDR", "MCP_ADDR", "MCP_AUTH_TOKEN",
	}
}
