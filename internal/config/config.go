package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/cipherchamber.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@cipherchamber.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"changeme"`

	// ResetDB drops every table before migrating.
	ResetDB bool `env:"RESET_DB" envDefault:"false"`

	// FixturesDir overrides the embedded rooms, puzzles and items.
	FixturesDir string `env:"FIXTURES_DIR"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory fills in variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
