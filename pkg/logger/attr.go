package logger

import "log/slog"

// Error records err under "error". A nil err yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under "user_id".
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// Counter records an OTP time-step counter under "counter".
func Counter(c int64) slog.Attr {
	return slog.Int64("counter", c)
}

// Offset records the window offset, in intervals, under "offset".
func Offset(i int) slog.Attr {
	return slog.Int("offset", i)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Backend records a storage backend name under "backend".
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}
