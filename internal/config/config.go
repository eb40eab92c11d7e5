// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/evcraddock/visitor-log/internal/notify"
)

// Config holds all runtime configuration. It is built once at startup and
// passed by reference; business logic never reads the environment.
type Config struct {
	Env          string // "dev" or "prod", selects the log handler
	Port         string // HTTP port to listen on
	DatabasePath string // SQLite database path

	AdminEmail   string // sole notification recipient
	FromEmail    string // sender address (Resend mode, or SMTP override)
	ResendAPIKey string

	SMTPServer   string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

// Load reads configuration from the environment, honoring a .env file in
// the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Env:          getenv("ENV", "dev"),
		Port:         getenv("PORT", "8080"),
		DatabasePath: os.Getenv("DATABASE_URL"),

		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		FromEmail:    os.Getenv("FROM_EMAIL"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),

		SMTPServer:   os.Getenv("SMTP_SERVER"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
	}

	return cfg, nil
}

// DevMode returns true unless ENV is set to prod.
func (c *Config) DevMode() bool {
	return c.Env != "prod"
}

// Notify builds the mail transport configuration. The SMTP sender falls
// back to the SMTP username when FROM_EMAIL is not set.
func (c *Config) Notify() notify.Config {
	from := c.FromEmail
	if from == "" {
		from = c.SMTPUsername
	}
	return notify.Config{
		AdminEmail:   c.AdminEmail,
		FromEmail:    from,
		ResendAPIKey: c.ResendAPIKey,
		SMTP: notify.SMTPConfig{
			Host: c.SMTPServer,
			Port: c.SMTPPort,
			User: c.SMTPUsername,
			Pass: c.SMTPPassword,
			From: from,
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
