package totp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/base32"
	"github.com/dmitrymomot/otpkit/pkg/hotp"
	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/ratelimiter"
	"github.com/dmitrymomot/otpkit/pkg/usedcode"
)

const (
	DefaultInterval = 30 // seconds, RFC 6238
	DefaultWindow   = 5  // intervals tolerated on each side of now
	DefaultIssuer   = "otpkit"
)

// Limiter throttles verification attempts per user.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
	Reset(ctx context.Context, key string) error
}

// Authenticator derives and verifies time-based codes. It is safe for
// concurrent use as long as its Store is.
type Authenticator struct {
	interval  int64
	window    int
	algorithm hotp.Algorithm
	issuer    string
	store     usedcode.Store
	limiter   Limiter
	clock     Clock
	log       *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithInterval sets the time-step length in seconds.
func WithInterval(seconds int64) Option {
	return func(a *Authenticator) { a.interval = seconds }
}

// WithWindow sets how many intervals before and after now are accepted.
func WithWindow(n int) Option {
	return func(a *Authenticator) { a.window = n }
}

func WithAlgorithm(alg hotp.Algorithm) Option {
	return func(a *Authenticator) { a.algorithm = alg }
}

// WithIssuer sets the issuer used by ProvisioningURI when the params omit it.
func WithIssuer(issuer string) Option {
	return func(a *Authenticator) { a.issuer = issuer }
}

// WithLimiter throttles CheckCode per user ID. A successful check resets
// the user's budget.
func WithLimiter(l Limiter) Option {
	return func(a *Authenticator) { a.limiter = l }
}

func WithClock(c Clock) Option {
	return func(a *Authenticator) {
		if c != nil {
			a.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an Authenticator backed by store. Pass usedcode.NoopStore to
// allow a code to be accepted more than once.
func New(store usedcode.Store, opts ...Option) (*Authenticator, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	a := &Authenticator{
		interval:  DefaultInterval,
		window:    DefaultWindow,
		algorithm: hotp.SHA1,
		issuer:    DefaultIssuer,
		store:     store,
		clock:     SystemClock{},
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if a.window < 0 {
		return nil, ErrInvalidWindow
	}
	alg, err := hotp.ParseAlgorithm(string(a.algorithm))
	if err != nil {
		return nil, errors.Join(ErrInvalidAlgorithm, err)
	}
	a.algorithm = alg
	a.log = a.log.With(logger.Component("totp"))

	return a, nil
}

// Interval returns the time-step length in seconds.
func (a *Authenticator) Interval() int64 { return a.interval }

// GetCode returns the code for the current interval.
func (a *Authenticator) GetCode(secret string) (string, error) {
	return a.GetCodeAt(secret, a.clock.Now().Unix())
}

// GetCodeAt returns the code for the interval containing epochSeconds.
func (a *Authenticator) GetCodeAt(secret string, epochSeconds int64) (string, error) {
	if epochSeconds < 0 {
		return "", ErrInvalidTimestamp
	}
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	code, err := hotp.Generate(key, uint64(epochSeconds/a.interval), hotp.WithAlgorithm(a.algorithm))
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateCode, err)
	}
	return code, nil
}

// CheckCode reports whether code is valid for secret at some interval within
// the window around now and has not been accepted for userID before. An
// accepted code is recorded in the store.
//
// Only malformed input and, with WithLimiter, an exhausted attempt budget
// (ErrTooManyAttempts) return an error. Derivation, store and limiter
// failures are logged and reject the code.
func (a *Authenticator) CheckCode(ctx context.Context, secret, code, userID string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}
	if code == "" {
		return false, ErrMissingCode
	}
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	if a.limiter != nil {
		if allowed, err := a.throttle(ctx, userID); !allowed {
			return false, err
		}
	}

	now := a.clock.Now().Unix()
	for i := -a.window; i <= a.window; i++ {
		candidate := now + int64(i)*a.interval
		if candidate < 0 {
			continue
		}
		counter := candidate / a.interval

		expected, err := hotp.Generate(key, uint64(counter), hotp.WithAlgorithm(a.algorithm))
		if err != nil {
			a.log.WarnContext(ctx, "code derivation failed",
				logger.UserID(userID), logger.Offset(i), logger.Error(err))
			continue
		}
		if !constantTimeEqual(expected, code) {
			continue
		}

		if a.accept(ctx, counter, code, userID, i) {
			a.resetAttempts(ctx, userID)
			return true, nil
		}
	}

	return false, nil
}

// accept consults and updates the store for a matching candidate.
func (a *Authenticator) accept(ctx context.Context, counter int64, code, userID string, offset int) bool {
	attrs := []any{logger.UserID(userID), logger.Counter(counter), logger.Offset(offset)}

	used, err := a.store.IsUsed(ctx, counter, code, userID)
	if err != nil {
		a.log.ErrorContext(ctx, "used-code lookup failed", append(attrs, logger.Error(err))...)
		return false
	}
	if used {
		a.log.InfoContext(ctx, "code replay rejected", attrs...)
		return false
	}

	if err := a.store.Add(ctx, counter, code, userID); err != nil {
		if errors.Is(err, usedcode.ErrCodeAlreadyUsed) {
			a.log.InfoContext(ctx, "code replay rejected", attrs...)
		} else {
			a.log.ErrorContext(ctx, "used-code record failed", append(attrs, logger.Error(err))...)
		}
		return false
	}

	a.log.DebugContext(ctx, "code accepted", attrs...)
	return true
}

// throttle reports whether userID may attempt a check. A limiter failure
// rejects the attempt without an error.
func (a *Authenticator) throttle(ctx context.Context, userID string) (bool, error) {
	res, err := a.limiter.Allow(ctx, limiterKey(userID))
	if err != nil {
		a.log.ErrorContext(ctx, "attempt limiter failed", logger.UserID(userID), logger.Error(err))
		return false, nil
	}
	if !res.Allowed() {
		a.log.WarnContext(ctx, "too many attempts", logger.UserID(userID))
		return false, fmt.Errorf("%w: retry after %s", ErrTooManyAttempts, res.RetryAfter(a.clock.Now()).Round(time.Second))
	}
	return true, nil
}

func (a *Authenticator) resetAttempts(ctx context.Context, userID string) {
	if a.limiter == nil {
		return
	}
	if err := a.limiter.Reset(ctx, limiterKey(userID)); err != nil {
		a.log.WarnContext(ctx, "attempt limiter reset failed", logger.UserID(userID), logger.Error(err))
	}
}

func limiterKey(userID string) string {
	return "totp:" + userID
}

func decodeSecret(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	key, err := base32.Decode(secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// constantTimeEqual compares a and b in time that depends only on the longer
// length. Unlike crypto/subtle it does not return early on a length mismatch.
func constantTimeEqual(a, b string) bool {
	n := max(len(a), len(b))
	diff := len(a) ^ len(b)
	for i := range n {
		var x, y byte
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		diff |= int(x ^ y)
	}
	return diff == 0
}
