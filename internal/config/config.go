// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Host      string `env:"MEAL_PLANNER_HOST"       envDefault:"0.0.0.0"`
	Port      int    `env:"MEAL_PLANNER_PORT"       envDefault:"8011"`
	DBPath    string `env:"MEAL_PLANNER_DB_PATH"    envDefault:"/data/meal-planner.db"`
	Seed      int64  `env:"MEAL_PLANNER_SEED"`
	LogLevel  string `env:"MEAL_PLANNER_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"MEAL_PLANNER_LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file from envFile (skipped when empty) and then
// parses the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
