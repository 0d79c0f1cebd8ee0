// Package config loads dbgstate settings from the environment and builds
// the process logger from them. Command-line flags override these values.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the environment-provided defaults for every command.
type Config struct {
	DB        string `env:"DBGSTATE_DB"         envDefault:"dbgstate.db"`
	LogLevel  string `env:"DBGSTATE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"DBGSTATE_LOG_FORMAT" envDefault:"text"`
	Digests   bool   `env:"DBGSTATE_DIGESTS"    envDefault:"true"`
	Queued    bool   `env:"DBGSTATE_QUEUED"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the log settings.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (want %s or %s)", c.LogFormat, FormatText, FormatJSON)
	}
}

// Level parses LogLevel ("debug", "info", "warn", "error", or an offset
// such as "info+2").
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Logger builds a slog.Logger writing to w in the configured format.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch c.LogFormat {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", c.LogFormat)
	}
}
