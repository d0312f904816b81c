// Package otpkit is a toolkit for time-based one-time passwords.
//
// The packages under pkg build on each other:
//
//   - base32: case-insensitive Base32 codec for shared secrets
//   - hotp: RFC 4226 code derivation over SHA-1, SHA-2 and SHA-3
//   - secret: random 16 character Base32 secrets
//   - usedcode: replay protection (memory, Redis or no-op)
//   - ratelimiter: per-user attempt throttling (memory or Redis)
//   - totp: RFC 6238 generation and windowed verification
//   - qrcode: QR images for provisioning URIs
//   - redis: connection helper with retries
//   - logger: slog factory with redaction of secrets and codes
//
// A typical verifier:
//
//	store := usedcode.NewMemoryStore()
//	defer store.Close()
//
//	auth, err := totp.New(store)
//	if err != nil {
//		return err
//	}
//	ok, err := auth.CheckCode(ctx, secret, code, userID)
//
// cmd/otpctl exposes the same operations on the command line.
package otpkit
