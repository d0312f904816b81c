package hotp

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Digits is the fixed length of every generated code.
	Digits = 6

	modulus = 1_000_000
)

// Option configures Generate.
type Option func(*options)

type options struct {
	algorithm Algorithm
}

// WithAlgorithm selects the HMAC hash. The zero value keeps SHA1.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		if a != "" {
			o.algorithm = a
		}
	}
}

// Generate derives the 6-digit code for key and counter as defined by
// RFC 4226 section 5.3.
func Generate(key []byte, counter uint64, opts ...Option) (string, error) {
	o := options{algorithm: SHA1}
	for _, opt := range opts {
		opt(&o)
	}

	sum, err := digest(o.algorithm, key, counter)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", Digits, truncate(sum)%modulus), nil
}

func digest(alg Algorithm, key []byte, counter uint64) ([]byte, error) {
	newHash, err := alg.hashFunc()
	if err != nil {
		return nil, errors.Join(ErrCryptoProvider, err)
	}
	if len(key) == 0 {
		return nil, errors.Join(ErrCryptoProvider, ErrEmptyKey)
	}

	mac := hmac.New(newHash, padKey(key, newHash().Size()))

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)
	_, _ = mac.Write(msg[:])

	return mac.Sum(nil), nil
}

// truncate is the dynamic truncation of RFC 4226: the low nibble of the last
// byte selects a 4-byte window, read big-endian with the sign bit cleared.
func truncate(sum []byte) uint32 {
	offset := sum[len(sum)-1] & 0x0f
	return binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
}

// padKey zero-extends key on the right to size bytes.
// HMAC pads to the block size anyway, so the digest is unchanged.
func padKey(key []byte, size int) []byte {
	if len(key) >= size {
		return key
	}
	padded := make([]byte, size)
	copy(padded, key)
	return padded
}
