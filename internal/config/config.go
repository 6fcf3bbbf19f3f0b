// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"TCMS_DB_PATH" envDefault:"./data/tcms.db"`
	SessionSecret string `env:"TCMS_SESSION_SECRET,required"`
	ServerHost    string `env:"TCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"TCMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"TCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"TCMS_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"TCMS_UPLOADS_DIR" envDefault:"./uploads"`
	BaseURL       string `env:"TCMS_BASE_URL" envDefault:"http://localhost:8080"`

	// AuthDisabled skips session auth and attributes writes to the first
	// admin account. Refused outside development.
	AuthDisabled bool `env:"TCMS_AUTH_DISABLED" envDefault:"false"`

	// Cache configuration
	RedisURL     string `env:"TCMS_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"TCMS_CACHE_PREFIX" envDefault:"tcms:"`   // Redis key prefix
	CacheTTL     int    `env:"TCMS_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"TCMS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// SMTP configuration for contact notifications
	SMTPHost string `env:"TCMS_SMTP_HOST"`
	SMTPPort int    `env:"TCMS_SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"TCMS_SMTP_USER"`
	SMTPPass string `env:"TCMS_SMTP_PASS"`
	SMTPFrom string `env:"TCMS_SMTP_FROM"`
	NotifyTo string `env:"TCMS_NOTIFY_TO"` // Recipient for contact-form notifications

	// GeoIP configuration
	GeoIPDBPath string `env:"TCMS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// OpenAI configuration for translation drafts
	OpenAIKey   string `env:"TCMS_OPENAI_API_KEY"`
	OpenAIModel string `env:"TCMS_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Legacy-site importer
	LegacyMySQLDSN string `env:"TCMS_LEGACY_MYSQL_DSN"` // DSN of the old site database

	// Seeding configuration
	DoSeed bool `env:"TCMS_DO_SEED" envDefault:"false"` // Enable database seeding
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

// SMTPEnabled returns true if outgoing mail is configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.NotifyTo != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AIEnabled returns true if the translation-draft client is configured.
func (c Config) AIEnabled() bool {
	return c.OpenAIKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("TCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("TCMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.AuthDisabled && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("TCMS_AUTH_DISABLED is only honored when TCMS_ENV=development")
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("TCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
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
