package totp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/totp"
	"github.com/dmitrymomot/otpkit/pkg/usedcode"
)

func TestProvisioningURI(t *testing.T) {
	t.Parallel()

	auth := newAuth(t, usedcode.NewNoopStore())

	t.Run("default issuer", func(t *testing.T) {
		t.Parallel()
		uri, err := auth.ProvisioningURI(totp.URIParams{Secret: testSecret, AccountName: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t,
			"otpauth://totp/otpkit:alice@example.com?algorithm=SHA1&digits=6&issuer=otpkit&period=30&secret=JBSWY3DPEHPK3PXP",
			uri)
	})

	t.Run("secret is normalized", func(t *testing.T) {
		t.Parallel()
		uri, err := auth.ProvisioningURI(totp.URIParams{Secret: "jbswy3dpehpk3pxp====", AccountName: "bob", Issuer: "acme"})
		require.NoError(t, err)
		assert.Contains(t, uri, "secret=JBSWY3DPEHPK3PXP")
		assert.Contains(t, uri, "otpauth://totp/acme:bob?")
	})

	t.Run("escapes label", func(t *testing.T) {
		t.Parallel()
		uri, err := auth.ProvisioningURI(totp.URIParams{Secret: testSecret, AccountName: "a b", Issuer: "Example Co"})
		require.NoError(t, err)
		assert.Contains(t, uri, "otpauth://totp/Example%20Co:a%20b?")
		assert.Contains(t, uri, "issuer=Example+Co")
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		_, err := auth.ProvisioningURI(totp.URIParams{AccountName: "alice"})
		require.ErrorIs(t, err, totp.ErrMissingSecret)

		_, err = auth.ProvisioningURI(totp.URIParams{Secret: "not base32!", AccountName: "alice"})
		require.ErrorIs(t, err, totp.ErrInvalidSecret)

		_, err = auth.ProvisioningURI(totp.URIParams{Secret: testSecret})
		require.ErrorIs(t, err, totp.ErrMissingAccountName)

		noIssuer := newAuth(t, usedcode.NewNoopStore(), totp.WithIssuer(""))
		_, err = noIssuer.ProvisioningURI(totp.URIParams{Secret: testSecret, AccountName: "alice"})
		require.ErrorIs(t, err, totp.ErrMissingIssuer)
	})
}
