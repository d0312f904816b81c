package usedcode

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares used codes across processes through Redis.
// Records expire through key TTLs, so no sweeper runs.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
}

var _ StoreCloser = (*RedisStore)(nil)

// NewRedisStore wraps client. The client stays owned by the caller.
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisStore{
		client:    client,
		prefix:    o.keyPrefix,
		retention: o.retention,
	}
}

// Add uses SET NX, so of two verifiers racing on one code only the first succeeds.
func (s *RedisStore) Add(ctx context.Context, counter int64, code, userID string) error {
	key, err := newRecord(counter, code, userID)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.key(key), 1, s.retention).Result()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrCodeAlreadyUsed
	}
	return nil
}

func (s *RedisStore) IsUsed(ctx context.Context, counter int64, code, userID string) (bool, error) {
	key, err := newRecord(counter, code, userID)
	if err != nil {
		return false, err
	}

	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// Close is a no-op: the client belongs to the caller.
func (s *RedisStore) Close() error { return nil }

// key lays out <prefix>:<counter>:<code>:<userID>. The user id goes last
// because it is the only free-form component.
func (s *RedisStore) key(r record) string {
	var b strings.Builder
	b.Grow(len(s.prefix) + len(r.code) + len(r.userID) + 24)
	b.WriteString(s.prefix)
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(r.counter, 10))
	b.WriteByte(':')
	b.WriteString(r.code)
	b.WriteByte(':')
	b.WriteString(r.userID)
	return b.String()
}
