// Command otpctl generates secrets and codes, verifies codes against the
// configured used-code store and prints enrollment URIs and QR images.
//
//	otpctl secret
//	otpctl code   -secret JBSWY3DPEHPK3PXP [-at 1700000000]
//	otpctl verify -secret JBSWY3DPEHPK3PXP -code 123456 -user alice
//	otpctl verify -sealed <enroll -seal output> -code 123456 -user alice
//	otpctl enroll -account alice@example.com [-secret S] [-issuer I] [-out qr.png] [-seal]
//
// Settings come from the environment (TOTP_*, USED_CODES_*, REDIS_*,
// APP_ENV, LOG_LEVEL, LOG_FORMAT) and an optional .env file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/otpkit/pkg/logger"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
	exitFailure  = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *cliEnv, args []string) int
}

var commands = []command{
	{"secret", "print a new random secret", runSecret},
	{"code", "print the current code for a secret", runCode},
	{"verify", "check a code and record it as used", runVerify},
	{"enroll", "print a provisioning URI and optionally write a QR image", runEnroll},
}

// cliEnv carries the process streams and logger to subcommands.
type cliEnv struct {
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	logCfg, err := logger.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "otpctl: %v\n", err)
		return exitFailure
	}
	log, err := logger.NewFromConfig(logCfg, "otpctl", logger.WithOutput(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "otpctl: %v\n", err)
		return exitFailure
	}

	env := &cliEnv{stdout: stdout, stderr: stderr, log: log}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, env, args[1:])
		}
	}

	fmt.Fprintf(stderr, "otpctl: unknown command %q\n", args[0])
	usage(stderr)
	return exitUsage
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: otpctl <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}
