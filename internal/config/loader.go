package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies environment variable overrides, and returns the
// final Config. A missing config file is not an error: the backend runs on
// defaults plus environment alone. The returned Config has NOT been
// validated; the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known environment variables and overwrites
// the corresponding Config fields when a variable is set (i.e. not empty).
// The unprefixed PORT, DATABASE_URL, and DATABASE_NAME variables are the
// deployment contract of the original hosting setup and are honored first;
// ENERGYD_* variables take precedence over them.
func applyEnvOverrides(cfg *Config) {
	// ── Deployment contract ──
	setInt(&cfg.Server.Port, "PORT")
	setStr(&cfg.Database.URL, "DATABASE_URL")
	setStr(&cfg.Database.Name, "DATABASE_NAME")

	// ── Server ──
	setInt(&cfg.Server.Port, "ENERGYD_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "ENERGYD_SERVER_CORS_ORIGINS")

	// ── Database ──
	setStr(&cfg.Database.URL, "ENERGYD_DATABASE_URL")
	setStr(&cfg.Database.Name, "ENERGYD_DATABASE_NAME")
	setInt(&cfg.Database.MaxConns, "ENERGYD_DATABASE_MAX_CONNS")
	setInt(&cfg.Database.MinConns, "ENERGYD_DATABASE_MIN_CONNS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "ENERGYD_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ENERGYD_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ENERGYD_REDIS_DB")
	setBool(&cfg.Redis.TLSEnabled, "ENERGYD_REDIS_TLS_ENABLED")

	// ── Stream ──
	setBool(&cfg.Stream.Enabled, "ENERGYD_STREAM_ENABLED")
	setDuration(&cfg.Stream.Interval, "ENERGYD_STREAM_INTERVAL")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "ENERGYD_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
