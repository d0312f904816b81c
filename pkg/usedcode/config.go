package usedcode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendNoop   Backend = "noop"
)

type Config struct {
	// Backend is one of memory, redis or noop.
	Backend Backend `env:"USED_CODES_BACKEND" envDefault:"memory"`
	// SweepPeriod is how often the memory backend evicts expired records.
	SweepPeriod time.Duration `env:"USED_CODES_SWEEP_PERIOD" envDefault:"60s"`
	// Retention is how long a used code is remembered.
	Retention time.Duration `env:"USED_CODES_RETENTION" envDefault:"5m"`
	// KeyPrefix namespaces keys in the redis backend.
	KeyPrefix string `env:"USED_CODES_REDIS_PREFIX" envDefault:"otp:used"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendMemory,
		SweepPeriod: DefaultSweepPeriod,
		Retention:   DefaultRetention,
		KeyPrefix:   DefaultKeyPrefix,
	}
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrFailedToLoadConfig, err)
	}
	return cfg, nil
}

// New builds the backend selected by cfg. client is only used by the redis
// backend and may be nil otherwise. The caller must Close the result.
func New(cfg Config, client redis.UniversalClient, opts ...Option) (StoreCloser, error) {
	opts = append([]Option{
		WithSweepPeriod(cfg.SweepPeriod),
		WithRetention(cfg.Retention),
		WithKeyPrefix(cfg.KeyPrefix),
	}, opts...)

	switch Backend(strings.ToLower(string(cfg.Backend))) {
	case BackendMemory, "":
		return NewMemoryStore(opts...), nil
	case BackendRedis:
		if client == nil {
			return nil, ErrMissingRedisClient
		}
		return NewRedisStore(client, opts...), nil
	case BackendNoop:
		return NewNoopStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
