// Package config provides probe configuration management.
// Configuration is loaded from environment variables, optionally seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvFileVar names the variable that points at the dotenv file to preload.
const EnvFileVar = "PROBE_ENV_FILE"

// DefaultEnvFile is loaded when EnvFileVar is unset.
const DefaultEnvFile = ".env"

// Config holds all probe configuration.
// All fields are populated from environment variables.
type Config struct {
	// Datasource URL (postgres://, mysql://, file:, mongodb://)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Table or collection to count
	Table string `env:"PROBE_TABLE" envDefault:"users"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load preloads the dotenv file, parses environment variables and returns a Config.
// Returns an error if required variables are missing or the dotenv file is malformed.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// loadEnvFile never overrides variables already present in the environment.
func loadEnvFile() error {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
