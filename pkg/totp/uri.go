package totp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/otpkit/pkg/hotp"
)

// URIParams describes an account to enroll in an authenticator app.
type URIParams struct {
	Secret      string // Base32 secret (required)
	AccountName string // User identifier like email (required)
	Issuer      string // Service name; defaults to the Authenticator's issuer
}

// ProvisioningURI builds an otpauth:// URI in the Key Uri Format understood
// by Google Authenticator and compatible apps:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func (a *Authenticator) ProvisioningURI(p URIParams) (string, error) {
	if p.Issuer == "" {
		p.Issuer = a.issuer
	}

	if _, err := decodeSecret(p.Secret); err != nil {
		return "", err
	}
	if p.AccountName == "" {
		return "", ErrMissingAccountName
	}
	if p.Issuer == "" {
		return "", ErrMissingIssuer
	}

	label := url.PathEscape(p.Issuer) + ":" + url.PathEscape(p.AccountName)

	query := url.Values{}
	query.Set("secret", strings.ToUpper(strings.TrimRight(p.Secret, "=")))
	query.Set("issuer", p.Issuer)
	query.Set("algorithm", a.algorithm.String())
	query.Set("digits", strconv.Itoa(hotp.Digits))
	query.Set("period", strconv.FormatInt(a.interval, 10))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}
