package ratelimiter

import "time"

// Result describes the bucket after an attempt.
type Result struct {
	Limit     int       // Bucket capacity
	Remaining int       // Tokens left; negative when the attempt was denied
	ResetAt   time.Time // Next refill
}

// Allowed reports whether the attempt fit in the bucket.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long until the next refill, measured from now. It is
// zero for allowed attempts.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}
