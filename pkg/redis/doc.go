// Package redis connects to the Redis server that backs the shared
// used-code store.
//
// Connect parses the URL, then pings with a constant backoff from
// github.com/sethvargo/go-retry until the server answers or the attempts
// or timeout run out:
//
//	cfg, err := redis.LoadConfig()
//	if err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store, err := usedcode.NewRedisStore(client)
//
// Healthcheck wraps a ping as a func(context.Context) error. otpctl runs it
// right after Connect so a server that stops answering between the retry
// loop and first use is reported before any code is checked. Services can
// register the same function with their readiness endpoint.
package redis
