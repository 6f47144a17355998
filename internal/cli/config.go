package cli

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/aretw0/randomizer/internal/logging"
)

// Config holds the settings read from the environment. Command flags
// override them.
type Config struct {
	Seed      string `env:"RANDOMIZER_SEED"`
	Addr      string `env:"RANDOMIZER_ADDR" envDefault:":8080"`
	RedisAddr string `env:"RANDOMIZER_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"RANDOMIZER_REDIS_PASSWORD"`
	RedisDB   int    `env:"RANDOMIZER_REDIS_DB"`
	Store     string `env:"RANDOMIZER_STORE"`
	// StoreKey is a base64 AES-256 key. When set, stored fixtures are sealed.
	StoreKey  string `env:"RANDOMIZER_STORE_KEY"`
	Templates string `env:"RANDOMIZER_TEMPLATES"`
	Workers   int    `env:"RANDOMIZER_WORKERS"`
	LogLevel  string `env:"RANDOMIZER_LOG_LEVEL" envDefault:"info"`
	LogJSON   bool   `env:"RANDOMIZER_LOG_JSON"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("RANDOMIZER_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
