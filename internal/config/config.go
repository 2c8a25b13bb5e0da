// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"HROPS_DB_PATH" envDefault:"./data/hrops.db"`
	SessionSecret string `env:"HROPS_SESSION_SECRET,required"`
	ServerHost    string `env:"HROPS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"HROPS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"HROPS_ENV" envDefault:"development"`
	LogLevel      string `env:"HROPS_LOG_LEVEL" envDefault:"info"`

	// Remote HR services. The core service hosts auth, users, roles,
	// departments, leave types and files; projects and leave requests run
	// as separate services.
	CoreServiceURL    string `env:"HROPS_CORE_SERVICE_URL" envDefault:"http://localhost:8081"`
	ProjectServiceURL string `env:"HROPS_PROJECT_SERVICE_URL" envDefault:"http://localhost:8082"`
	LeaveServiceURL   string `env:"HROPS_LEAVE_SERVICE_URL" envDefault:"http://localhost:5000"`

	// Push notification channel
	NotifySocketURL    string        `env:"HROPS_NOTIFY_SOCKET_URL" envDefault:"ws://localhost:5000/leaveNotification"`
	NotifyHistoryLimit int           `env:"HROPS_NOTIFY_HISTORY_LIMIT" envDefault:"200"`
	NotifyRetention    time.Duration `env:"HROPS_NOTIFY_RETENTION" envDefault:"72h"`

	// UI behavior
	ToastDuration time.Duration `env:"HROPS_TOAST_DURATION" envDefault:"5s"`

	// Cache configuration (backend health probes only)
	RedisURL     string `env:"HROPS_REDIS_URL"`
	CachePrefix  string `env:"HROPS_CACHE_PREFIX" envDefault:"hrops:"`
	CacheTTL     int    `env:"HROPS_CACHE_TTL" envDefault:"30"`
	CacheMaxSize int    `env:"HROPS_CACHE_MAX_SIZE" envDefault:"1000"`

	// Outbound request timeout against the HR services
	ClientTimeout time.Duration `env:"HROPS_CLIENT_TIMEOUT" envDefault:"10s"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("HROPS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("HROPS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("HROPS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	for name, u := range map[string]string{
		"HROPS_CORE_SERVICE_URL":    cfg.CoreServiceURL,
		"HROPS_PROJECT_SERVICE_URL": cfg.ProjectServiceURL,
		"HROPS_LEAVE_SERVICE_URL":   cfg.LeaveServiceURL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return nil, fmt.Errorf("%s must be an http(s) URL, got %q", name, u)
		}
	}
	if !strings.HasPrefix(cfg.NotifySocketURL, "ws://") && !strings.HasPrefix(cfg.NotifySocketURL, "wss://") {
		return nil, fmt.Errorf("HROPS_NOTIFY_SOCKET_URL must be a ws(s) URL, got %q", cfg.NotifySocketURL)
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
