package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// clientName identifies this service in redis CLIENT LIST output.
const clientName = "gowallet"

// NewClient creates a Redis client for the wallet read cache and
// verifies connectivity before returning it.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opts.ClientName = clientName
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
