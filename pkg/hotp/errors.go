package hotp

import "errors"

var (
	// ErrCryptoProvider wraps every failure of the keyed hash itself.
	ErrCryptoProvider       = errors.New("hotp: crypto provider failure")
	ErrUnsupportedAlgorithm = errors.New("hotp: unsupported hmac algorithm")
	ErrEmptyKey             = errors.New("hotp: empty key")
)
