// Package config defines the backend configuration and provides validation
// helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then overridden by environment variables.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Stream   StreamConfig   `toml:"stream"`
	LogLevel string         `toml:"log_level"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DatabaseConfig holds the optional PostgreSQL settings. An empty URL means
// the database is not configured, which is a valid state reported by /test.
type DatabaseConfig struct {
	URL      string `toml:"url"`
	Name     string `toml:"name"`
	MaxConns int    `toml:"max_conns"`
	MinConns int    `toml:"min_conns"`
}

// Configured reports whether a database connection string is present.
func (d DatabaseConfig) Configured() bool {
	return strings.TrimSpace(d.URL) != ""
}

// RedisConfig holds the optional Redis settings. An empty Addr means Redis
// is not configured.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// Configured reports whether a Redis address is present.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// StreamConfig holds the WebSocket snapshot stream parameters.
type StreamConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval duration `toml:"interval"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "15s", "1m").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "15s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:        8000,
			CORSOrigins: nil, // empty means allow all origins
		},
		Database: DatabaseConfig{
			MaxConns: 4,
			MinConns: 0,
		},
		Redis: RedisConfig{
			DB: 0,
		},
		Stream: StreamConfig{
			Enabled:  true,
			Interval: duration{15 * time.Second},
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid values and returns a combined
// error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	if c.Database.Configured() {
		if c.Database.MaxConns < 1 {
			errs = append(errs, "database: max_conns must be >= 1")
		}
		if c.Database.MinConns < 0 {
			errs = append(errs, "database: min_conns must be >= 0")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			errs = append(errs, "database: min_conns must not exceed max_conns")
		}
	}

	if c.Redis.Configured() && c.Redis.DB < 0 {
		errs = append(errs, fmt.Sprintf("redis: db must be >= 0, got %d", c.Redis.DB))
	}

	if c.Stream.Enabled && c.Stream.Interval.Duration <= 0 {
		errs = append(errs, "stream: interval must be > 0 when enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
