package secret

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"

	"github.com/dmitrymomot/otpkit/pkg/base32"
)

// Length is the number of Base32 characters in a generated secret (80 bits).
const Length = 16

// alphabetMask selects 5 bits. 32 divides 256, so masking a uniform byte
// yields a uniform index without rejection sampling.
const alphabetMask = len(base32.Alphabet) - 1

// Generator draws secrets from a random source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	src io.Reader
}

// NewGenerator returns a Generator reading from src.
// Reads are serialized, so src need not be safe for concurrent use.
func NewGenerator(src io.Reader) (*Generator, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	return &Generator{src: src}, nil
}

// Default returns the process-wide generator backed by crypto/rand.
var Default = sync.OnceValue(func() *Generator {
	return &Generator{src: rand.Reader}
})

// Generate returns a new secret from the process-wide generator.
func Generate() (string, error) {
	return Default().Generate()
}

// Generate returns Length characters chosen uniformly and independently
// from the Base32 alphabet.
func (g *Generator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]byte, Length)
	if _, err := io.ReadFull(g.src, out); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	for i, b := range out {
		out[i] = base32.Alphabet[int(b)&alphabetMask]
	}
	return string(out), nil
}
