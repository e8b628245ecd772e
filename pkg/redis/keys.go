package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Exists returns an existence oracle over keys named prefix+value.
func Exists(client redis.Cmdable, prefix string) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, value string) (bool, error) {
		n, err := client.Exists(ctx, prefix+value).Result()
		if err != nil {
			return false, fmt.Errorf("redis: exists %q: %w", prefix+value, err)
		}
		return n > 0, nil
	}
}

// Reserve returns an insert function that claims prefix+value with SET NX.
// A value that is already held fails with ErrKeyTaken. A zero ttl keeps the
// reservation until it is deleted.
func Reserve(client redis.Cmdable, prefix string, ttl time.Duration) func(context.Context, string) (string, error) {
	return func(ctx context.Context, value string) (string, error) {
		ok, err := client.SetNX(ctx, prefix+value, time.Now().UTC().Format(time.RFC3339), ttl).Result()
		if err != nil {
			return "", fmt.Errorf("redis: reserve %q: %w", prefix+value, err)
		}
		if !ok {
			return "", ErrKeyTaken
		}
		return value, nil
	}
}
