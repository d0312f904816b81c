// Package ratelimiter throttles one-time password guesses with a token
// bucket per key, as recommended by RFC 4226 section 7.3.
//
// A Bucket allows Capacity attempts in a burst and restores RefillRate
// attempts every RefillInterval. MemoryStore keeps state in process;
// RedisStore shares it between replicas through an atomic Lua script.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	auth, err := totp.New(used, totp.WithLimiter(limiter))
//
// Config can be read from OTP_ATTEMPTS_CAPACITY, OTP_ATTEMPTS_REFILL_RATE
// and OTP_ATTEMPTS_REFILL_INTERVAL with LoadConfig.
package ratelimiter
