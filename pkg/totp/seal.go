package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// SealKeySize is the AES-256 key length in bytes.
const SealKeySize = 32

// SealSecret encrypts secret with AES-256-GCM for storage at rest. The
// result is base64(nonce || ciphertext).
func SealSecret(secret string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", errors.Join(ErrFailedToSealSecret, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToSealSecret, err)
	}

	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(secret), nil)), nil
}

// OpenSecret reverses SealSecret.
func OpenSecret(sealed string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}
	if len(raw) < gcm.NonceSize() {
		return "", errors.Join(ErrFailedToOpenSecret, ErrSealedSecretTooShort)
	}

	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}
	return string(plain), nil
}

// SealKey decodes cfg.EncryptionKey, a base64 string of SealKeySize bytes.
func SealKey(cfg Config) ([]byte, error) {
	if cfg.EncryptionKey == "" {
		return nil, ErrSealKeyNotSet
	}
	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidSealKey, err)
	}
	if len(key) != SealKeySize {
		return nil, ErrInvalidSealKey
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != SealKeySize {
		return nil, ErrInvalidSealKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
