package ratelimiter

import "errors"

var (
	ErrInvalidConfig      = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount  = errors.New("ratelimiter: invalid token count")
	ErrEmptyKey           = errors.New("ratelimiter: empty key")
	ErrFailedToLoadConfig = errors.New("ratelimiter: failed to load config")
)
