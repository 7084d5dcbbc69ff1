package kv

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

// Redis stores keys as plain string values in a Redis server.
type Redis struct {
	client *redis.Redis
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr, pass string) *Redis {
	var opts []redis.Option
	if pass != "" {
		opts = append(opts, redis.WithPass(pass))
	}
	return &Redis{client: redis.New(addr, opts...)}
}

// Get treats an empty string as missing; the ledger never stores one.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.GetCtx(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.SetCtx(ctx, key, value); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if _, err := r.client.DelCtx(ctx, key); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; go-zero pools connections per address.
func (r *Redis) Close() error { return nil }
