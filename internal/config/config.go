// Package config merges defaults, an optional .env file, environment
// variables and command-line flags into the runtime configuration.
// Environment variables win over flags.
package config

import (
	"flag"
	"fmt"
	"time"

	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"wardrobe/internal/validator"
)

// Config is the runtime configuration of the server process.
type Config struct {
	RunAddr       string        `env:"RUN_ADDRESS" validate:"hostname_port"`
	DatabasePath  string        `env:"DATABASE_PATH" validate:"required"`
	RedisAddr     string        `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
	OTLPEndpoint  string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel      string        `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
}

// New parses the given command-line arguments (flags), loads .env if
// present, applies environment variables on top and validates the result.
func New(args []string) (*Config, error) {
	cfg := &Config{}

	flags := flag.NewFlagSet("wardrobe", flag.ContinueOnError)
	flags.StringVar(&cfg.RunAddr, "a", "localhost:8080", "address and port to run the server on")
	flags.StringVar(&cfg.DatabasePath, "d", "./wardrobe.db", "path to the SQLite database file")
	flags.StringVar(&cfg.RedisAddr, "r", "", "redis address for the items cache (empty disables caching)")
	flags.StringVar(&cfg.LogLevel, "l", "info", "log level (debug|info|warn|error)")
	flags.DurationVar(&cfg.SessionTTL, "session-ttl", 24*time.Hour, "session token validity window")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
