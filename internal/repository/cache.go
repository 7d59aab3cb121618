package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/config"
	"github.com/shopweb/shopweb-api/internal/models"
)

const (
	orderDetailKeyPrefix = "order:"
	defaultCacheTTL      = 5 * time.Minute
)

// RedisOrderCache caches order detail views. Reads are idempotent
// absent mutation, so cached copies are invalidated on every status
// change and cancellation. Failures are reported to the caller, which
// treats them as non-fatal.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisOrderCache creates a Redis-backed order detail cache.
func NewRedisOrderCache(cfg config.RedisConfig, logger zerolog.Logger) *RedisOrderCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisOrderCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "order-cache").Logger(),
	}
}

// Ping checks connectivity, for the readiness probe.
func (c *RedisOrderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached detail for an order, or nil on a miss.
func (c *RedisOrderCache) Get(ctx context.Context, orderID int64) (*models.OrderDetail, error) {
	key := orderDetailKeyPrefix + strconv.FormatInt(orderID, 10)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.logger.Error().Err(err).Int64("order_id", orderID).Msg("Cache get failed")
		return nil, err
	}

	var detail models.OrderDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}

	c.logger.Debug().Int64("order_id", orderID).Msg("Cache hit")
	return &detail, nil
}

// Set stores an order detail view for the configured TTL.
func (c *RedisOrderCache) Set(ctx context.Context, detail *models.OrderDetail) error {
	key := orderDetailKeyPrefix + strconv.FormatInt(detail.ID, 10)

	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error().Err(err).Int64("order_id", detail.ID).Msg("Cache set failed")
		return err
	}
	return nil
}

// Delete invalidates the cached detail for an order.
func (c *RedisOrderCache) Delete(ctx context.Context, orderID int64) error {
	key := orderDetailKeyPrefix + strconv.FormatInt(orderID, 10)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error().Err(err).Int64("order_id", orderID).Msg("Cache delete failed")
		return err
	}
	return nil
}

// Close releases the underlying redis connection.
func (c *RedisOrderCache) Close() error {
	return c.client.Close()
}
