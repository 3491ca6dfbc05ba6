package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, read from SCOREBOARD_* environment variables
type Config struct {
	Host            string        `env:"SCOREBOARD_HOST"`
	Port            int           `env:"SCOREBOARD_PORT" envDefault:"8080"`
	LogLevel        string        `env:"SCOREBOARD_LOG_LEVEL" envDefault:"info"`
	ReadTimeout     time.Duration `env:"SCOREBOARD_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SCOREBOARD_WRITE_TIMEOUT" envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SCOREBOARD_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// DefaultThreshold is the win threshold for boards created without one
	DefaultThreshold int `env:"SCOREBOARD_DEFAULT_THRESHOLD" envDefault:"200"`
}

// Load parses the configuration from the environment and validates it
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks value ranges that env tags cannot express
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SCOREBOARD_PORT %d", c.Port)
	}
	if c.DefaultThreshold <= 0 {
		return fmt.Errorf("invalid SCOREBOARD_DEFAULT_THRESHOLD %d: must be positive", c.DefaultThreshold)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid SCOREBOARD_LOG_LEVEL %q", s)
	}
	return level, nil
}
