// Package totp generates and verifies time-based one-time passwords
// (RFC 6238) with replay protection.
//
// An Authenticator turns the clock into a counter, derives the 6-digit code
// with package hotp and, on verification, scans a window of intervals
// around now to tolerate clock drift. With the default 30 second interval
// and a window of 5 a code is accepted up to two and a half minutes
// before or after its interval. A match is only accepted if the usedcode.Store has not seen the
// same (counter, code, user) triple before; the accepted triple is then
// recorded so the code cannot be replayed.
//
//	store := usedcode.NewMemoryStore()
//	defer store.Close()
//
//	auth, err := totp.New(store)
//	if err != nil {
//		return err
//	}
//
//	ok, err := auth.CheckCode(ctx, secret, code, userID)
//
// CheckCode returns an error only for malformed input such as an empty
// secret or one that is not Base32. Failures of the hash or the store while
// scanning are logged and reject the code.
//
// ProvisioningURI produces the otpauth:// link that authenticator apps
// import, usually rendered as a QR code with package qrcode.
//
// # Configuration
//
// NewFromConfig reads TOTP_INTERVAL, TOTP_WINDOW, TOTP_ALGORITHM and
// TOTP_ISSUER through LoadConfig. A .env file in the working directory is
// loaded automatically.
//
// # Sealing
//
// SealSecret and OpenSecret encrypt a secret with AES-256-GCM for storage
// at rest. SealKey reads the key from TOTP_ENCRYPTION_KEY.
package totp
