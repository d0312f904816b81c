package totp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/totp"
	"github.com/dmitrymomot/otpkit/pkg/usedcode"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := totp.ParseConfig()
		require.NoError(t, err)
		assert.Equal(t, totp.Config{Interval: 30, Window: 5, Algorithm: "SHA1", Issuer: "otpkit"}, cfg)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("TOTP_INTERVAL", "60")
		t.Setenv("TOTP_WINDOW", "1")
		t.Setenv("TOTP_ALGORITHM", "sha512")
		t.Setenv("TOTP_ISSUER", "acme")

		cfg, err := totp.ParseConfig()
		require.NoError(t, err)
		assert.Equal(t, totp.Config{Interval: 60, Window: 1, Algorithm: "sha512", Issuer: "acme"}, cfg)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("TOTP_INTERVAL", "thirty")

		_, err := totp.ParseConfig()
		require.ErrorIs(t, err, totp.ErrFailedToLoadConfig)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		cfg := totp.Config{Interval: 30, Window: 5, Algorithm: "sha1", Issuer: "acme"}
		auth, err := totp.NewFromConfig(cfg, usedcode.NewNoopStore(), totp.WithClock(fixedClock(testEpoch)))
		require.NoError(t, err)

		ok, err := auth.CheckCode(context.Background(), testSecret, testCode, "user")
		require.NoError(t, err)
		assert.True(t, ok)

		uri, err := auth.ProvisioningURI(totp.URIParams{Secret: testSecret, AccountName: "alice"})
		require.NoError(t, err)
		assert.Contains(t, uri, "issuer=acme")
	})

	t.Run("invalid algorithm", func(t *testing.T) {
		t.Parallel()
		_, err := totp.NewFromConfig(totp.Config{Interval: 30, Algorithm: "md5"}, usedcode.NewNoopStore())
		require.ErrorIs(t, err, totp.ErrInvalidAlgorithm)
	})

	t.Run("invalid interval", func(t *testing.T) {
		t.Parallel()
		_, err := totp.NewFromConfig(totp.Config{Interval: 0}, usedcode.NewNoopStore())
		require.ErrorIs(t, err, totp.ErrInvalidInterval)
	})
}
