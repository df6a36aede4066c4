package cache

import (
	"context"
	"errors"
	"time"

	"roombook/core/constants"
	"roombook/core/logger"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis at addr. The connection is verified
// eagerly so a misconfigured address surfaces at startup.
func NewRedisCache(addr string) (Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis cache initialized", "addr", addr)
	return &redisCache{client: client}, nil
}

func (c *redisCache) GetMonth(ctx context.Context, year, month int) ([]byte, error) {
	payload, err := c.client.Get(ctx, monthKey(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *redisCache) SetMonth(ctx context.Context, year, month int, payload []byte) error {
	return c.client.Set(ctx, monthKey(year, month), payload,
		constants.MonthViewTTLSeconds*time.Second).Err()
}

func (c *redisCache) InvalidateMonth(ctx context.Context, year, month int) error {
	return c.client.Del(ctx, monthKey(year, month)).Err()
}
