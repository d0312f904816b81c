// Package logger builds *slog.Logger values with functional options.
//
// New picks a JSON or text handler, attaches static attributes and wraps
// the result so that values registered with WithContextValue are pulled
// from the context on every record. Attribute keys listed in
// DefaultRedactedKeys (secret, code, otp, key) are always replaced with
// Redacted, so OTP material cannot reach the output even by accident.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "otpctl"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "code accepted", logger.UserID(id), logger.Offset(0))
//
// NewFromConfig does the same from APP_ENV, LOG_LEVEL and LOG_FORMAT.
package logger
