package secret

import "errors"

var (
	ErrFailedToGenerateSecret = errors.New("failed to generate secret")
	ErrNilSource              = errors.New("nil random source")
)
