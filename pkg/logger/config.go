package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidLevel is returned when LOG_LEVEL cannot be parsed.
var ErrInvalidLevel = errors.New("logger: invalid level")

// Config holds environment driven logger settings.
type Config struct {
	// Deployment environment; selects the default level and format.
	Env string `env:"APP_ENV" envDefault:"development"`
	// Minimum level: debug, info, warn or error. Overrides the environment preset.
	Level string `env:"LOG_LEVEL"`
	// Output format: json or text. Overrides the environment preset.
	Format string `env:"LOG_FORMAT"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	return env.ParseAs[Config]()
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// NewFromConfig builds a logger for service from cfg. Explicit opts are
// applied last.
func NewFromConfig(cfg Config, service string, opts ...Option) (*slog.Logger, error) {
	all := []Option{WithEnvironment(cfg.Env, service)}
	if cfg.Level != "" {
		l, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		all = append(all, WithLevel(l))
	}
	if cfg.Format != "" {
		f := Format(strings.ToLower(cfg.Format))
		if f != FormatJSON && f != FormatText {
			return nil, fmt.Errorf("logger: invalid format %q", cfg.Format)
		}
		all = append(all, WithFormat(f))
	}
	return New(append(all, opts...)...), nil
}
