package ratelimiter

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is a token bucket: Capacity attempts in a burst, then RefillRate
// more every RefillInterval.
type Config struct {
	// Burst of attempts allowed per key.
	Capacity int `env:"OTP_ATTEMPTS_CAPACITY" envDefault:"5"`
	// Attempts restored per interval.
	RefillRate int `env:"OTP_ATTEMPTS_REFILL_RATE" envDefault:"1"`
	// Refill period.
	RefillInterval time.Duration `env:"OTP_ATTEMPTS_REFILL_INTERVAL" envDefault:"30s"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{Capacity: 5, RefillRate: 1, RefillInterval: 30 * time.Second}
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrFailedToLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}
