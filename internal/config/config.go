// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime settings for the game server, populated from
// TUAS_-prefixed environment variables (optionally seeded from a .env
// file).
type Config struct {
	ListenAddr string `env:"TUAS_LISTEN_ADDR" envDefault:":8080"`

	DatabaseURL string `env:"TUAS_DATABASE_URL"`
	RedisAddr   string `env:"TUAS_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"TUAS_REDIS_PASSWORD"`
	RedisDB     int    `env:"TUAS_REDIS_DB" envDefault:"0"`

	JWTSecret   string `env:"TUAS_JWT_SECRET"`
	TokenTTLHrs int    `env:"TUAS_TOKEN_TTL_HOURS" envDefault:"72"`

	TurnTimerSec int    `env:"TUAS_TURN_TIMER_SEC" envDefault:"60"`
	LogLevel     string `env:"TUAS_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("config: no .env file loaded: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: TUAS_JWT_SECRET is required")
	}
	return cfg, nil
}

// ApplyLogLevel sets the global logrus level from the configured string.
// Unknown values fall back to info.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
