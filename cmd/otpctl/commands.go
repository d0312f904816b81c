package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/qrcode"
	"github.com/dmitrymomot/otpkit/pkg/ratelimiter"
	"github.com/dmitrymomot/otpkit/pkg/redis"
	"github.com/dmitrymomot/otpkit/pkg/secret"
	"github.com/dmitrymomot/otpkit/pkg/totp"
	"github.com/dmitrymomot/otpkit/pkg/usedcode"
)

func newFlagSet(env *cliEnv, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("otpctl "+name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

func fail(env *cliEnv, msg string, err error) int {
	env.log.Error(msg, logger.Error(err))
	fmt.Fprintf(env.stderr, "otpctl: %s: %v\n", msg, err)
	return exitFailure
}

func runSecret(_ context.Context, env *cliEnv, args []string) int {
	fs := newFlagSet(env, "secret")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	s, err := secret.Generate()
	if err != nil {
		return fail(env, "generate secret", err)
	}
	fmt.Fprintln(env.stdout, s)
	return exitOK
}

func runCode(_ context.Context, env *cliEnv, args []string) int {
	fs := newFlagSet(env, "code")
	sec := fs.String("secret", "", "Base32 secret (required)")
	at := fs.Int64("at", 0, "unix time in seconds; defaults to now")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	atSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "at" {
			atSet = true
		}
	})
	if *sec == "" {
		fmt.Fprintln(env.stderr, "otpctl code: -secret is required")
		return exitUsage
	}

	auth, err := newAuthenticator(env, usedcode.NewNoopStore())
	if err != nil {
		return fail(env, "configure authenticator", err)
	}

	epoch := *at
	if !atSet {
		epoch = time.Now().Unix()
	}
	code, err := auth.GetCodeAt(*sec, epoch)
	if err != nil {
		return fail(env, "generate code", err)
	}
	fmt.Fprintln(env.stdout, code)
	return exitOK
}

func runVerify(ctx context.Context, env *cliEnv, args []string) int {
	fs := newFlagSet(env, "verify")
	sec := fs.String("secret", "", "Base32 secret")
	sealed := fs.String("sealed", "", "secret sealed by enroll -seal, instead of -secret")
	code := fs.String("code", "", "code to check (required)")
	user := fs.String("user", "", "user the code belongs to")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if (*sec == "") == (*sealed == "") || *code == "" {
		fmt.Fprintln(env.stderr, "otpctl verify: -code and exactly one of -secret or -sealed are required")
		return exitUsage
	}
	if *sealed != "" {
		plain, err := openSealed(*sealed)
		if err != nil {
			return fail(env, "open sealed secret", err)
		}
		*sec = plain
	}

	b, err := openBackend(ctx, env)
	if err != nil {
		return fail(env, "open used-code store", err)
	}
	defer b.close()

	var opts []totp.Option
	if b.limiter != nil {
		opts = append(opts, totp.WithLimiter(b.limiter))
	}
	auth, err := newAuthenticator(env, b.store, opts...)
	if err != nil {
		return fail(env, "configure authenticator", err)
	}

	ok, err := auth.CheckCode(ctx, *sec, *code, *user)
	if errors.Is(err, totp.ErrTooManyAttempts) {
		fmt.Fprintln(env.stdout, "throttled")
		return exitRejected
	}
	if err != nil {
		return fail(env, "check code", err)
	}
	if !ok {
		fmt.Fprintln(env.stdout, "rejected")
		return exitRejected
	}
	fmt.Fprintln(env.stdout, "accepted")
	return exitOK
}

func runEnroll(_ context.Context, env *cliEnv, args []string) int {
	fs := newFlagSet(env, "enroll")
	sec := fs.String("secret", "", "Base32 secret; a new one is generated when empty")
	account := fs.String("account", "", "account name shown in the app (required)")
	issuer := fs.String("issuer", "", "issuer; defaults to TOTP_ISSUER")
	out := fs.String("out", "", "write a QR code PNG to this path")
	size := fs.Int("size", qrcode.DefaultSize, "QR image size in pixels")
	seal := fs.Bool("seal", false, "print the secret sealed with TOTP_ENCRYPTION_KEY; with -out the URI is not printed")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *account == "" {
		fmt.Fprintln(env.stderr, "otpctl enroll: -account is required")
		return exitUsage
	}

	if *sec == "" {
		s, err := secret.Generate()
		if err != nil {
			return fail(env, "generate secret", err)
		}
		*sec = s
	}

	auth, err := newAuthenticator(env, usedcode.NewNoopStore())
	if err != nil {
		return fail(env, "configure authenticator", err)
	}

	uri, err := auth.ProvisioningURI(totp.URIParams{Secret: *sec, AccountName: *account, Issuer: *issuer})
	if err != nil {
		return fail(env, "build provisioning uri", err)
	}

	if *out != "" {
		if err := qrcode.WriteFile(uri, *out, qrcode.WithSize(*size)); err != nil {
			return fail(env, "write qr code", err)
		}
		env.log.Info("qr code written", slog.String("path", *out))
	}

	if !*seal {
		fmt.Fprintf(env.stdout, "secret: %s\nuri:    %s\n", *sec, uri)
		return exitOK
	}

	sealed, err := sealSecret(*sec)
	if err != nil {
		return fail(env, "seal secret", err)
	}
	fmt.Fprintf(env.stdout, "sealed: %s\n", sealed)
	if *out == "" {
		fmt.Fprintf(env.stdout, "uri:    %s\n", uri)
	}
	return exitOK
}

func sealSecret(plain string) (string, error) {
	key, err := sealKey()
	if err != nil {
		return "", err
	}
	return totp.SealSecret(plain, key)
}

func openSealed(sealed string) (string, error) {
	key, err := sealKey()
	if err != nil {
		return "", err
	}
	return totp.OpenSecret(sealed, key)
}

func sealKey() ([]byte, error) {
	cfg, err := totp.ParseConfig()
	if err != nil {
		return nil, err
	}
	return totp.SealKey(cfg)
}

func newAuthenticator(env *cliEnv, store usedcode.Store, opts ...totp.Option) (*totp.Authenticator, error) {
	cfg, err := totp.ParseConfig()
	if err != nil {
		return nil, err
	}
	return totp.NewFromConfig(cfg, store, append([]totp.Option{totp.WithLogger(env.log)}, opts...)...)
}

// backend is the used-code store for verify plus, for Redis, a shared
// attempt limiter.
type backend struct {
	store   usedcode.Store
	limiter totp.Limiter
	close   func()
}

// openBackend builds the configured used-code store, connecting to Redis
// when it is selected.
func openBackend(ctx context.Context, env *cliEnv) (*backend, error) {
	cfg, err := usedcode.LoadConfig()
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(string(cfg.Backend), string(usedcode.BackendRedis)) {
		store, err := usedcode.New(cfg, nil, usedcode.WithLogger(env.log))
		if err != nil {
			return nil, err
		}
		return &backend{store: store, close: func() { _ = store.Close() }}, nil
	}

	limitCfg, err := ratelimiter.LoadConfig()
	if err != nil {
		return nil, err
	}
	rcfg, err := redis.LoadConfig()
	if err != nil {
		return nil, err
	}
	client, err := redis.Connect(ctx, rcfg)
	if err != nil {
		return nil, err
	}
	if err := redis.Healthcheck(client)(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	store, err := usedcode.New(cfg, client, usedcode.WithLogger(env.log))
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), limitCfg)
	if err != nil {
		_ = store.Close()
		_ = client.Close()
		return nil, err
	}

	env.log.Debug("using redis backend", logger.Backend("redis"))
	return &backend{
		store:   store,
		limiter: limiter,
		close: func() {
			_ = store.Close()
			_ = client.Close()
		},
	}, nil
}
