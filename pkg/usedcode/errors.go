package usedcode

import "errors"

var (
	ErrEmptyCode          = errors.New("used code store: empty code")
	ErrCodeAlreadyUsed    = errors.New("used code store: code already used")
	ErrStoreUnavailable   = errors.New("used code store: backend unavailable")
	ErrUnknownBackend     = errors.New("used code store: unknown backend")
	ErrMissingRedisClient = errors.New("used code store: redis backend requires a client")
	ErrFailedToLoadConfig = errors.New("used code store: failed to load config")
)
