package usedcode

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/logger"
)

const (
	DefaultSweepPeriod = time.Minute
	DefaultRetention   = 5 * time.Minute
	DefaultKeyPrefix   = "otp:used"
)

// Store records which (counter, code, user) triples were already accepted.
type Store interface {
	// Add marks the triple as used. Implementations that can detect a
	// concurrent insert return ErrCodeAlreadyUsed.
	Add(ctx context.Context, counter int64, code, userID string) error

	// IsUsed reports whether the triple was marked and not yet expired.
	IsUsed(ctx context.Context, counter int64, code, userID string) (bool, error)
}

// StoreCloser is a Store owning background resources.
type StoreCloser interface {
	Store
	io.Closer
}

type record struct {
	counter int64
	code    string
	userID  string
}

func newRecord(counter int64, code, userID string) (record, error) {
	if code == "" {
		return record{}, ErrEmptyCode
	}
	return record{counter: counter, code: code, userID: userID}, nil
}

// Option configures the MemoryStore and RedisStore.
type Option func(*options)

type options struct {
	sweepPeriod time.Duration
	retention   time.Duration
	keyPrefix   string
	now         func() time.Time
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		sweepPeriod: DefaultSweepPeriod,
		retention:   DefaultRetention,
		keyPrefix:   DefaultKeyPrefix,
		now:         time.Now,
		logger:      logger.Discard(),
	}
}

// WithSweepPeriod sets how often expired records are evicted from memory.
// Non-positive values keep the default.
func WithSweepPeriod(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepPeriod = d
		}
	}
}

// WithRetention sets how long a record is kept. It must cover the whole
// verification window, otherwise a code can be replayed after eviction.
func WithRetention(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.retention = d
		}
	}
}

// WithKeyPrefix sets the Redis key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}

// WithNowFunc replaces the clock used to timestamp records.
func WithNowFunc(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
