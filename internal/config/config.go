package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	ContentDir      string `env:"DREAD_CONTENT_DIR"` // empty uses the embedded scenario
	Seed            int64  `env:"DREAD_SEED"`        // 0 seeds from the clock
	MaxStamina      int    `env:"DREAD_MAX_STAMINA" envDefault:"10"`
	MaxReason       int    `env:"DREAD_MAX_REASON" envDefault:"10"`
	StartingMystery string `env:"DREAD_STARTING_MYSTERY" envDefault:"the_drowned_bell"`

	LogLevel    string `env:"DREAD_LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"DREAD_LOG_FILE" envDefault:"dread.log"`
	JournalPath string `env:"DREAD_JOURNAL"` // empty disables the run journal

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"DREAD_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxStamina < 1 {
		errs = append(errs, fmt.Errorf("config: DREAD_MAX_STAMINA must be positive, got %d", c.MaxStamina))
	}
	if c.MaxReason < 1 {
		errs = append(errs, fmt.Errorf("config: DREAD_MAX_REASON must be positive, got %d", c.MaxReason))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RequireGemini reports whether the authoring settings are present.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return errors.New("config: GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

// ParseLevel maps debug, info, warn or error onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: DREAD_LOG_LEVEL %q is invalid; valid values: debug, info, warn, error", s)
}
