package totp

import "errors"

var (
	ErrNilStore             = errors.New("totp: used-code store is nil")
	ErrInvalidInterval      = errors.New("totp: interval must be greater than 0")
	ErrInvalidWindow        = errors.New("totp: window must not be negative")
	ErrInvalidAlgorithm     = errors.New("totp: invalid algorithm")
	ErrMissingSecret        = errors.New("totp: missing secret")
	ErrMissingCode          = errors.New("totp: missing code")
	ErrInvalidSecret        = errors.New("totp: invalid secret")
	ErrInvalidTimestamp     = errors.New("totp: timestamp must not be negative")
	ErrFailedToGenerateCode = errors.New("totp: failed to generate code")
	ErrMissingAccountName   = errors.New("totp: missing account name")
	ErrMissingIssuer        = errors.New("totp: missing issuer")
	ErrFailedToLoadConfig   = errors.New("totp: failed to load config")
	ErrTooManyAttempts      = errors.New("totp: too many attempts")
	ErrFailedToSealSecret   = errors.New("totp: failed to seal secret")
	ErrFailedToOpenSecret   = errors.New("totp: failed to open sealed secret")
	ErrSealKeyNotSet        = errors.New("totp: encryption key is not set")
	ErrInvalidSealKey       = errors.New("totp: encryption key must be 32 bytes")
	ErrSealedSecretTooShort = errors.New("totp: sealed secret is too short")
)
