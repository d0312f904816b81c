package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/redis"
)

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  3,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{})
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://localhost:6379"})
		require.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("server down", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		start := time.Now()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + addr,
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: 5 * time.Second,
		})
		require.ErrorIs(t, err, redis.ErrRedisNotReady)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("context canceled", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := redis.Connect(ctx, redis.Config{
			ConnectionURL: "redis://" + addr,
			RetryAttempts: 100,
			RetryInterval: time.Second,
		})
		require.ErrorIs(t, err, redis.ErrRedisNotReady)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	check := redis.Healthcheck(client)
	require.NoError(t, check(context.Background()))

	mr.Close()
	require.ErrorIs(t, check(context.Background()), redis.ErrHealthcheckFailed)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6380/2")
	t.Setenv("REDIS_RETRY_ATTEMPTS", "5")
	t.Setenv("REDIS_RETRY_INTERVAL", "250ms")
	t.Setenv("REDIS_CONNECT_TIMEOUT", "10s")

	cfg, err := redis.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, redis.Config{
		ConnectionURL:  "redis://cache:6380/2",
		RetryAttempts:  5,
		RetryInterval:  250 * time.Millisecond,
		ConnectTimeout: 10 * time.Second,
	}, cfg)

	t.Setenv("REDIS_RETRY_ATTEMPTS", "many")
	_, err = redis.LoadConfig()
	require.ErrorIs(t, err, redis.ErrFailedToLoadConfig)
}
