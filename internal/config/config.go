// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" env-default:"0.0.0.0"`
	Port string `env:"APP_PORT" env-default:"8080"`
	Env  string `env:"APP_ENV" env-default:"development"` // "development", "production", "testing"

	// External course API
	APIBaseURL string        `env:"API_BASE_URL" env-default:"http://localhost:5000"`
	APITimeout time.Duration `env:"API_TIMEOUT" env-default:"15s"`

	// MongoDB (banners)
	MongoURI string `env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_DB" env-default:"courseadmin"`

	// PostgreSQL connection (activity log). Empty host disables it.
	DBHost     string `env:"POSTGRES_HOST"`
	DBPort     string `env:"POSTGRES_PORT" env-default:"5432"`
	DBUser     string `env:"POSTGRES_USER" env-default:"courseadmin"`
	DBPassword string `env:"POSTGRES_PASSWORD" env-default:"changeme"`
	DBName     string `env:"POSTGRES_DB" env-default:"courseadmin"`

	// Valkey (Redis-compatible cache + sessions)
	ValkeyHost     string `env:"VALKEY_HOST" env-default:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" env-default:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// LookupTTL bounds how long dropdown option lists stay cached.
	LookupTTL time.Duration `env:"LOOKUP_CACHE_TTL" env-default:"60s"`

	// Upload caps. MaxUploadBytes bounds any /admin request body (course
	// material videos included); banner routes use MaxBannerBytes.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" env-default:"209715200"`
	MaxBannerBytes int64 `env:"BANNER_MAX_BYTES" env-default:"5242880"`

	// Sign-in throttling, per client IP
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" env-default:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" env-default:"1m"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first when present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.Env == "production" {
		if cfg.DBHost != "" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if strings.Contains(cfg.APIBaseURL, "localhost") {
			return nil, fmt.Errorf("API_BASE_URL must be set in production")
		}
	}

	return &cfg, nil
}

// BannerBodyLimit is the request body cap for banner routes: the image
// limit plus room for the text fields and multipart framing.
func (c *Config) BannerBodyLimit() int64 {
	return c.MaxBannerBytes + 1<<20
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// ActivityLogEnabled reports whether a PostgreSQL host is configured.
func (c *Config) ActivityLogEnabled() bool {
	return c.DBHost != ""
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
