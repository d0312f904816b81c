package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/base32"
)

const testSecret = "JBSWY3DPEHPK3PXP"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: otpctl")

	code, _, stderr = runCLI(t, "bogus")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "bogus"`)
}

func TestRun_Secret(t *testing.T) {
	code, stdout, _ := runCLI(t, "secret")
	require.Equal(t, exitOK, code)

	s := strings.TrimSpace(stdout)
	assert.Len(t, s, 16)
	assert.True(t, base32.Valid(s))
}

func TestRun_Code(t *testing.T) {
	code, stdout, _ := runCLI(t, "code", "-secret", "AAAAAAAAAAAAAAAA", "-at", "1415618880")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "898106\n", stdout)

	// Epoch 0 is a real instant, not "now": counter 0 of the all-zero key.
	code, stdout, _ = runCLI(t, "code", "-secret", "AAAAAAAAAAAAAAAA", "-at", "0")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "328482\n", stdout)

	code, _, _ = runCLI(t, "code", "-secret", "AAAAAAAAAAAAAAAA", "-at", "-1")
	assert.Equal(t, exitFailure, code)

	code, _, stderr := runCLI(t, "code")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "-secret is required")

	code, _, _ = runCLI(t, "code", "-secret", "BAD SECRET")
	assert.Equal(t, exitFailure, code)

	code, _, _ = runCLI(t, "code", "-nope")
	assert.Equal(t, exitUsage, code)
}

func currentCode(t *testing.T) string {
	t.Helper()
	code, stdout, _ := runCLI(t, "code", "-secret", testSecret)
	require.Equal(t, exitOK, code)
	return strings.TrimSpace(stdout)
}

func TestRun_VerifyMemory(t *testing.T) {
	t.Setenv("USED_CODES_BACKEND", "memory")

	code, stdout, _ := runCLI(t, "verify", "-secret", testSecret, "-code", currentCode(t), "-user", "alice")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "accepted\n", stdout)

	code, stdout, _ = runCLI(t, "verify", "-secret", testSecret, "-code", "abc", "-user", "alice")
	assert.Equal(t, exitRejected, code)
	assert.Equal(t, "rejected\n", stdout)

	code, _, _ = runCLI(t, "verify", "-secret", testSecret)
	assert.Equal(t, exitUsage, code)
}

func TestRun_VerifyRedisRejectsReplay(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("USED_CODES_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	t.Setenv("REDIS_RETRY_ATTEMPTS", "1")

	otp := currentCode(t)

	code, _, _ := runCLI(t, "verify", "-secret", testSecret, "-code", otp, "-user", "alice")
	require.Equal(t, exitOK, code)
	assert.Len(t, mr.Keys(), 1, "success clears the attempt bucket")

	code, stdout, _ := runCLI(t, "verify", "-secret", testSecret, "-code", otp, "-user", "alice")
	assert.Equal(t, exitRejected, code)
	assert.Equal(t, "rejected\n", stdout)
}

func TestRun_VerifyUnknownBackend(t *testing.T) {
	t.Setenv("USED_CODES_BACKEND", "etcd")

	code, _, stderr := runCLI(t, "verify", "-secret", testSecret, "-code", "123456")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "open used-code store")
}

func TestRun_Enroll(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")

	code, stdout, _ := runCLI(t, "enroll", "-secret", testSecret, "-account", "alice@example.com", "-issuer", "acme", "-out", out, "-size", "200")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "secret: "+testSecret)
	assert.Contains(t, stdout, "otpauth://totp/acme:alice@example.com?")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	code, stdout, _ = runCLI(t, "enroll", "-account", "bob")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "issuer=otpkit")

	code, _, _ = runCLI(t, "enroll")
	assert.Equal(t, exitUsage, code)
}

func TestRun_EnrollSealed(t *testing.T) {
	t.Setenv("USED_CODES_BACKEND", "memory")
	out := filepath.Join(t.TempDir(), "qr.png")

	code, _, stderr := runCLI(t, "enroll", "-secret", testSecret, "-account", "alice", "-seal")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "encryption key is not set")

	t.Setenv("TOTP_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32)))

	code, stdout, _ := runCLI(t, "enroll", "-secret", testSecret, "-account", "alice", "-seal", "-out", out)
	require.Equal(t, exitOK, code)
	assert.NotContains(t, stdout, testSecret)
	assert.NotContains(t, stdout, "uri:")
	require.True(t, strings.HasPrefix(stdout, "sealed: "))
	sealed := strings.TrimSpace(strings.TrimPrefix(stdout, "sealed: "))
	assert.FileExists(t, out)

	code, stdout, _ = runCLI(t, "verify", "-sealed", sealed, "-code", currentCode(t), "-user", "alice")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "accepted\n", stdout)

	code, _, _ = runCLI(t, "verify", "-sealed", sealed, "-secret", testSecret, "-code", "123456")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "verify", "-sealed", "garbage", "-code", "123456")
	assert.Equal(t, exitFailure, code)
}

func TestRun_InvalidLogConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	code, _, stderr := runCLI(t, "secret")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "invalid level")
}

func TestRun_VerifyRedisThrottles(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("USED_CODES_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	t.Setenv("REDIS_RETRY_ATTEMPTS", "1")
	t.Setenv("OTP_ATTEMPTS_CAPACITY", "2")

	for range 2 {
		code, stdout, _ := runCLI(t, "verify", "-secret", testSecret, "-code", "abc", "-user", "mallory")
		require.Equal(t, exitRejected, code)
		assert.Equal(t, "rejected\n", stdout)
	}

	code, stdout, _ := runCLI(t, "verify", "-secret", testSecret, "-code", currentCode(t), "-user", "mallory")
	assert.Equal(t, exitRejected, code)
	assert.Equal(t, "throttled\n", stdout)
}
