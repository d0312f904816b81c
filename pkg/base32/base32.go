package base32

import (
	"fmt"
	"strings"
)

// Alphabet is the RFC 4648 Base32 alphabet in value order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

const padding = '='

// Decode converts Base32 text to bytes.
// Lowercase letters are accepted and trailing padding is ignored.
// The result holds len(text)*5/8 bytes; leftover low bits are discarded.
func Decode(text string) ([]byte, error) {
	clean := strings.TrimRight(text, string(padding))
	if clean == "" {
		return nil, ErrEmptyInput
	}

	out := make([]byte, len(clean)*5/8)

	var cur byte
	bitsRemaining := 8
	idx := 0

	for pos, r := range clean {
		v, ok := charValue(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, r, pos)
		}

		if bitsRemaining > 5 {
			cur |= v << (bitsRemaining - 5)
			bitsRemaining -= 5
			continue
		}

		// Current byte is complete: take the high bits of v, carry the rest.
		cur |= v >> (5 - bitsRemaining)
		out[idx] = cur
		idx++
		cur = v << (3 + bitsRemaining)
		bitsRemaining += 3
	}

	return out, nil
}

// Encode converts bytes to Base32 text padded with "=" to a multiple of 8.
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyInput
	}

	size := (len(data) + 4) / 5 * 8
	out := make([]byte, size)

	var next byte
	bitsRemaining := 5
	idx := 0

	for _, b := range data {
		next |= b >> (8 - bitsRemaining)
		out[idx] = Alphabet[next]
		idx++

		if bitsRemaining < 4 {
			next = (b >> (3 - bitsRemaining)) & 31
			out[idx] = Alphabet[next]
			idx++
			bitsRemaining += 5
		}

		bitsRemaining -= 3
		next = (b << bitsRemaining) & 31
	}

	if idx != size {
		out[idx] = Alphabet[next]
		idx++
		for ; idx < size; idx++ {
			out[idx] = padding
		}
	}

	return string(out), nil
}

// EncodeNoPadding is Encode with the trailing "=" characters removed.
func EncodeNoPadding(data []byte) (string, error) {
	s, err := Encode(data)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, string(padding)), nil
}

// Valid reports whether text decodes without error.
func Valid(text string) bool {
	clean := strings.TrimRight(text, string(padding))
	if clean == "" {
		return false
	}
	for _, r := range clean {
		if _, ok := charValue(r); !ok {
			return false
		}
	}
	return true
}

func charValue(r rune) (byte, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return byte(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return byte(r - 'a'), true
	case r >= '2' && r <= '7':
		return byte(r-'2') + 26, true
	}
	return 0, false
}
