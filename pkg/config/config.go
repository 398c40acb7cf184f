// Package config loads runtime settings for the social CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the CLI configuration.
type Config struct {
	Env string

	// Data source: a YAML fixtures file or a database DSN
	FixturesPath string
	DSN          string

	// Default security token
	Viewer string
	Owner  string
	App    string

	// Enabled feature keys
	Features []string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("SOCIAL_ENV", "development"),
		FixturesPath: getEnv("SOCIAL_FIXTURES", ""),
		DSN:          getEnv("SOCIAL_DSN", ""),
		Viewer:       getEnv("SOCIAL_VIEWER", ""),
		Owner:        getEnv("SOCIAL_OWNER", ""),
		App:          getEnv("SOCIAL_APP", ""),
		Features:     splitList(getEnv("SOCIAL_FEATURES", "")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.DSN != "" {
		if _, _, err := ParseDSN(c.DSN); err != nil {
			return err
		}
	}
	switch c.Env {
	case "production", "development", "test":
	default:
		return fmt.Errorf("SOCIAL_ENV must be production, development or test, got %q", c.Env)
	}
	return nil
}

// ParseDSN splits a DSN into its driver and connection string. Supported
// schemes are sqlite:// (file path or :memory:) and postgres://.
func ParseDSN(dsn string) (driver, conn string, err error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		conn = strings.TrimPrefix(dsn, "sqlite://")
		if conn == "" {
			return "", "", fmt.Errorf("sqlite DSN requires a path")
		}
		return "sqlite", conn, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported DSN %q: expected sqlite:// or postgres://", dsn)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
