package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKeyPrefix = "otp:attempts"

var ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")

// consumeScript refills and consumes atomically. State is a hash with the
// token balance and the last refill time in milliseconds.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local tokens = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local have = tonumber(state[1])
local refill = tonumber(state[2])
if have == nil or refill == nil then
	have = capacity
	refill = now
end

local n = math.floor((now - refill) / interval)
if n > 0 then
	n = math.min(n, math.floor(capacity / rate) + 1)
	have = math.min(have + n * rate, capacity)
	refill = refill + n * interval
	if have == capacity then
		refill = now
	end
end

local remaining = have - tokens
if remaining >= 0 then
	have = remaining
end

redis.call('HSET', KEYS[1], 'tokens', have, 'refill', refill)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, refill + interval}
`)

// RedisStore shares buckets between processes.
type RedisStore struct {
	client     redis.UniversalClient
	prefix     string
	staleAfter time.Duration
	now        func() time.Time
}

type RedisStoreOption func(*RedisStore)

func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// WithRedisStaleAfter sets the TTL of an untouched bucket.
func WithRedisStaleAfter(d time.Duration) RedisStoreOption {
	return func(rs *RedisStore) {
		if d > 0 {
			rs.staleAfter = d
		}
	}
}

func WithRedisNowFunc(now func() time.Time) RedisStoreOption {
	return func(rs *RedisStore) {
		if now != nil {
			rs.now = now
		}
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client:     client,
		prefix:     DefaultRedisKeyPrefix,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	res, err := consumeScript.Run(ctx, rs.client, []string{rs.key(key)},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		rs.now().UnixMilli(),
		tokens,
		rs.staleAfter.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, ErrStoreUnavailable
	}
	return int(res[0]), time.UnixMilli(res[1]), nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (rs *RedisStore) key(k string) string {
	return rs.prefix + ":" + k
}
