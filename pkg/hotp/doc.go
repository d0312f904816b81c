// Package hotp derives RFC 4226 HMAC-based one-time codes.
//
// Generate computes an HMAC over the 8-byte big-endian counter, applies
// dynamic truncation and reduces the result to a zero-padded 6-digit string.
// SHA1 is the default hash; SHA256, SHA512 and the SHA-3 variants are
// available through WithAlgorithm for deployments that require them.
//
// Keys shorter than the digest size are zero-extended on the right, so a
// 10-byte secret decoded from 16 Base32 characters is accepted as-is.
//
//	code, err := hotp.Generate(key, counter)
//	if errors.Is(err, hotp.ErrCryptoProvider) {
//	    // unsupported algorithm or empty key
//	}
package hotp
