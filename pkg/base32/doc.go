// Package base32 implements the RFC 4648 Base32 alphabet (A-Z, 2-7) in the
// lenient form used by authenticator applications for shared secrets.
//
// It differs from encoding/base32 in two ways that matter for OTP secrets:
//
//   - Decoding is case-insensitive and accepts any length. Trailing "="
//     padding is stripped and the output buffer holds len(text)*5/8 bytes, so
//     bits of a trailing partial byte are dropped instead of failing.
//   - Encoding always pads with "=" to a multiple of 8 characters.
//     EncodeNoPadding returns the unpadded form expected by otpauth:// URIs.
//
// Decode(Encode(b)) always returns b. Encode(Decode(s)) returns the canonical
// encoding of s, which may differ from s when s carried non-canonical
// padding or trailing bits.
//
// # Usage
//
//	key, err := base32.Decode("JBSWY3DPEHPK3PXP")
//	if err != nil {
//	    // errors.Is(err, base32.ErrInvalidCharacter) or base32.ErrEmptyInput
//	}
//
//	text, _ := base32.Encode([]byte("Some input")) // "KNXW2ZJANFXHA5LU"
package base32
