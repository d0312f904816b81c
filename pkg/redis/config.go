package redis

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRetryAttempts  = 3
	DefaultRetryInterval  = 5 * time.Second
	DefaultConnectTimeout = 30 * time.Second
)

type Config struct {
	// Connection URL, e.g. "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// Number of connection attempts before giving up.
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	// Pause between attempts, e.g. "5s".
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	// Upper bound for the whole connect procedure, e.g. "30s".
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrFailedToLoadConfig, err)
	}
	return cfg, nil
}
