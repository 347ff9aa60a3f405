// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the process configuration from the environment once at
// startup. Components receive the resulting Config explicitly and never read
// the environment themselves.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Store connection. Empty selects fallback mode.
	DatabaseURL string `env:"DATABASE_URL"`
	DBSSL       bool   `env:"DB_SSL" envDefault:"true"`

	// Administrator credential. Either may be set; the hash wins.
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	SessionSecret string `env:"PORTFOLIO_SESSION_SECRET,required"`
	ServerHost    string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`

	// Local image storage. Empty disables upload.
	UploadsDir  string `env:"PORTFOLIO_UPLOADS_DIR"`
	MaxUploadMB int    `env:"PORTFOLIO_MAX_UPLOAD_MB" envDefault:"4"`

	// Cache configuration
	RedisURL     string `env:"PORTFOLIO_REDIS_URL"`                            // Optional Redis URL for the page cache
	CachePrefix  string `env:"PORTFOLIO_CACHE_PREFIX" envDefault:"portfolio:"` // Redis key prefix
	CacheTTL     int    `env:"PORTFOLIO_CACHE_TTL" envDefault:"300"`           // Page TTL in seconds
	CacheMaxSize int    `env:"PORTFOLIO_CACHE_MAX_SIZE" envDefault:"1000"`     // Max memory cache entries

	// Crawlers. SiteURL falls back to the request host when empty.
	SiteURL           string `env:"PORTFOLIO_SITE_URL"`
	RobotsDisallowAll bool   `env:"PORTFOLIO_ROBOTS_DISALLOW_ALL"`

	HealthProbeSchedule string `env:"PORTFOLIO_HEALTH_PROBE" envDefault:"@every 1m"`
	MetricsEnabled      bool   `env:"PORTFOLIO_METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// StoreConfigured reports whether a relational store connection is configured.
func (c Config) StoreConfigured() bool {
	return c.DatabaseURL != ""
}

// UploadsEnabled reports whether local image upload is available.
func (c Config) UploadsEnabled() bool {
	return c.UploadsDir != ""
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AdminConfigured reports whether login can ever succeed.
func (c Config) AdminConfigured() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// MinSessionSecretLength is the minimum required length for the session secret.
// HMAC-SHA256 and the CSRF key both want 32 bytes.
const MinSessionSecretLength = 32

// supportedSchemes lists the DATABASE_URL schemes that map to a store dialect.
var supportedSchemes = map[string]bool{
	"postgres":   true,
	"postgresql": true,
	"mysql":      true,
	"sqlite":     true,
	"file":       true,
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PORTFOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PORTFOLIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PORTFOLIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.DatabaseURL != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
		}
		if !supportedSchemes[strings.ToLower(u.Scheme)] {
			return nil, fmt.Errorf("DATABASE_URL scheme %q is not supported (use postgres, mysql or sqlite)", u.Scheme)
		}
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 4
	}

	if !cfg.AdminConfigured() {
		slog.Warn("ADMIN_PASSWORD is not set; admin login is disabled")
	}

	return cfg, nil
}

// StoreConfig is the subset of Config the database maintenance commands need.
type StoreConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBSSL       bool   `env:"DB_SSL" envDefault:"true"`
	LogLevel    string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
}

// LoadStore parses only the store settings. Unlike Load it does not require a
// session secret, so migrate and seed can run on a bare database host.
func LoadStore() (*StoreConfig, error) {
	cfg := &StoreConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing store config: %w", err)
	}

	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}
	if !supportedSchemes[strings.ToLower(u.Scheme)] {
		return nil, fmt.Errorf("DATABASE_URL scheme %q is not supported (use postgres, mysql or sqlite)", u.Scheme)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
