package hotp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Algorithm names the hash used by the HMAC.
type Algorithm string

const (
	SHA1     Algorithm = "SHA1" // RFC 4226 default
	SHA256   Algorithm = "SHA256"
	SHA512   Algorithm = "SHA512"
	SHA3_256 Algorithm = "SHA3-256"
	SHA3_512 Algorithm = "SHA3-512"
)

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
// An empty name selects SHA1.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "SHA1", "SHA-1":
		return SHA1, nil
	case "SHA256", "SHA-256":
		return SHA256, nil
	case "SHA512", "SHA-512":
		return SHA512, nil
	case "SHA3-256", "SHA3_256":
		return SHA3_256, nil
	case "SHA3-512", "SHA3_512":
		return SHA3_512, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

func (a Algorithm) String() string {
	if a == "" {
		return string(SHA1)
	}
	return string(a)
}

func (a Algorithm) hashFunc() (func() hash.Hash, error) {
	switch a {
	case "", SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	case SHA3_256:
		return sha3.New256, nil
	case SHA3_512:
		return sha3.New512, nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}
