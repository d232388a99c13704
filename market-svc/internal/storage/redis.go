package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"food-delivery/orderstatus"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

type RedisCache struct {
	Client         *redis.Client
	IdempotencyTTL time.Duration
	StatusTTL      time.Duration
}

func NewRedisCache(client *redis.Client, idempotencyTTL, statusTTL time.Duration) *RedisCache {
	return &RedisCache{Client: client, IdempotencyTTL: idempotencyTTL, StatusTTL: statusTTL}
}

func idempotencyKey(customerID int, key string) string {
	return fmt.Sprintf("idem:order:%d:%s", customerID, key)
}

func statusKey(orderID int) string {
	return "order:" + strconv.Itoa(orderID) + ":status"
}

// ReserveIdempotencyKey claims key for a new submission. When the key was
// already used it returns the order it produced, or reserved=false with no
// order while the first submission is still in flight.
func (c *RedisCache) ReserveIdempotencyKey(ctx context.Context, customerID int, key string) (int, bool, error) {
	redisKey := idempotencyKey(customerID, key)
	ok, err := c.Client.SetNX(ctx, redisKey, pendingMarker, c.IdempotencyTTL).Result()
	if err != nil {
		return 0, false, err
	}
	if ok {
		return 0, true, nil
	}

	value, err := c.Client.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if value == pendingMarker {
		return 0, false, nil
	}
	orderID, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt idempotency value %q: %w", value, err)
	}
	return orderID, false, nil
}

func (c *RedisCache) CompleteIdempotencyKey(ctx context.Context, customerID int, key string, orderID int) error {
	return c.Client.Set(ctx, idempotencyKey(customerID, key), strconv.Itoa(orderID), c.IdempotencyTTL).Err()
}

func (c *RedisCache) ReleaseIdempotencyKey(ctx context.Context, customerID int, key string) error {
	return c.Client.Del(ctx, idempotencyKey(customerID, key)).Err()
}

func (c *RedisCache) SetStatus(ctx context.Context, orderID int, status orderstatus.Status) error {
	return c.Client.Set(ctx, statusKey(orderID), string(status), c.StatusTTL).Err()
}

func (c *RedisCache) GetStatus(ctx context.Context, orderID int) (orderstatus.Status, error) {
	value, err := c.Client.Get(ctx, statusKey(orderID)).Result()
	if err != nil {
		return "", err
	}
	return orderstatus.Parse(value)
}
