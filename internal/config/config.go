// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers an optional .env file, an optional YAML file and CM_* env vars on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFile enables a rotating log file next to stdout when set.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr" validate:"required"`

	// APIPrefix is the path every analytics route is mounted under.
	// An empty prefix mounts the routes at the root.
	APIPrefix string `koanf:"api_prefix" validate:"omitempty,startswith=/"`

	// DBDriver selects the SQL driver: postgres or sqlite3.
	DBDriver string `koanf:"db_driver" validate:"oneof=postgres sqlite3"`

	// DBDSN overrides the individual connection fields when set.
	// Required for sqlite3, e.g. "file:creativeminds.db?mode=ro".
	DBDSN string `koanf:"db_dsn" validate:"required_if=DBDriver sqlite3"`

	DBHost     string `koanf:"db_host"`
	DBPort     int    `koanf:"db_port" validate:"min=0,max=65535"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBSSLMode  string `koanf:"db_sslmode"`

	// QueryTimeoutMS bounds every single extractor query.
	QueryTimeoutMS int `koanf:"query_timeout_ms" validate:"gt=0"`

	// RequestTimeoutMS bounds every HTTP request end to end.
	RequestTimeoutMS int `koanf:"request_timeout_ms" validate:"gt=0"`

	// MaxOpenConns caps the database connection pool.
	MaxOpenConns int `koanf:"max_open_conns" validate:"gte=0"`

	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// RecommendationLimit caps the organization recommendation list.
	RecommendationLimit int `koanf:"recommendation_limit" validate:"gte=2"`

	// MetricsEnabled switches Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required"`

	// MetricsRefreshMS is how often the system gauges are sampled.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms" validate:"gt=0"`

	// Environment is attached to every metric as a constant "environment" label when set.
	Environment string `koanf:"environment"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":5000",
		APIPrefix:           "/api",
		DBDriver:            DriverPostgres,
		DBHost:              "localhost",
		DBPort:              5432,
		DBUser:              "admin",
		DBPassword:          "admin",
		DBName:              "odoo",
		DBSSLMode:           "disable",
		QueryTimeoutMS:      5_000,
		RequestTimeoutMS:    30_000,
		MaxOpenConns:        10,
		CORSOrigins:         []string{"*"},
		RecommendationLimit: 10,
		MetricsEnabled:      true,
		MetricsNamespace:    "creativeminds",
		MetricsRefreshMS:    10_000,
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

// QueryTimeout returns the per-query timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMS) * time.Millisecond
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// MetricsRefresh returns the system gauge sampling interval as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshMS) * time.Millisecond
}

// String renders the config without the database password.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s prefix=%s driver=%s db=%s@%s:%d/%s log_level=%s",
		c.Addr, c.APIPrefix, c.DBDriver, c.DBUser, c.DBHost, c.DBPort, c.DBName, c.LogLevel)
}
