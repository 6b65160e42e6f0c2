// Package config provides configuration for the experimentation backend.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort     int `env:"HTTP_PORT" envDefault:"8080"`
	InternalPort int `env:"INTERNAL_PORT" envDefault:"8081"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:insightdrift.db?cache=shared&mode=rwc"`

	// How long a client idempotency key suppresses duplicate events, in
	// milliseconds.
	EventDedupeWindowMs int64 `env:"EVENT_DEDUPE_WINDOW_MS" envDefault:"86400000"`

	// Seed a running demo experiment on startup when none exists.
	SeedDemoExperiment bool `env:"SEED_DEMO_EXPERIMENT" envDefault:"true"`
}

// DedupeWindow returns the idempotency retention window as a duration.
func (c *Config) DedupeWindow() time.Duration {
	return time.Duration(c.EventDedupeWindowMs) * time.Millisecond
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
