package totp

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"github.com/dmitrymomot/otpkit/pkg/hotp"
	"github.com/dmitrymomot/otpkit/pkg/usedcode"
)

type Config struct {
	// Time-step length in seconds.
	Interval int64 `env:"TOTP_INTERVAL" envDefault:"30"`
	// Intervals accepted on each side of now.
	Window int `env:"TOTP_WINDOW" envDefault:"5"`
	// HMAC hash name, see hotp.ParseAlgorithm.
	Algorithm string `env:"TOTP_ALGORITHM" envDefault:"SHA1"`
	// Issuer shown in authenticator apps.
	Issuer string `env:"TOTP_ISSUER" envDefault:"otpkit"`
	// Base64 AES-256 key for SealSecret and OpenSecret. Optional.
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"`
}

var loadOnce = sync.OnceValues(ParseConfig)

// ParseConfig reads Config from the current environment.
func ParseConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrFailedToLoadConfig, err)
	}
	return cfg, nil
}

// LoadConfig returns the process-wide Config, parsed on first use.
func LoadConfig() (Config, error) {
	return loadOnce()
}

// NewFromConfig creates an Authenticator from cfg. opts are applied after
// the config values.
func NewFromConfig(cfg Config, store usedcode.Store, opts ...Option) (*Authenticator, error) {
	alg, err := hotp.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, errors.Join(ErrInvalidAlgorithm, err)
	}

	return New(store, append([]Option{
		WithInterval(cfg.Interval),
		WithWindow(cfg.Window),
		WithAlgorithm(alg),
		WithIssuer(cfg.Issuer),
	}, opts...)...)
}
