package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

const zipKeyPrefix = "fulfillment:zip:"

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient connects and pings. The caller owns Close.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisZipCache shares resolved zipcodes between instances. Writes use SETNX
// so the first entry for a zipcode wins, as in the sheet.
type RedisZipCache struct {
	client *redis.Client
	store  ZipStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisZipCache(client *redis.Client, store ZipStore, ttl time.Duration, logger *zap.Logger) *RedisZipCache {
	return &RedisZipCache{client: client, store: store, ttl: ttl, logger: logger}
}

func (c *RedisZipCache) Get(ctx context.Context, zipcode string) (*repository.ZipEntry, error) {
	key := zipKeyPrefix + repository.NormalizeZipcode(zipcode)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry repository.ZipEntry
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil && entry.Complete() {
			metrics.ZipCacheLookupsTotal.WithLabelValues("redis", "hit").Inc()
			return &entry, nil
		}
		c.logger.Warn("Discarding malformed zip cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		// Redis is an accelerator; the sheet stays authoritative.
		c.logger.Warn("Redis zip cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.ZipCacheLookupsTotal.WithLabelValues("redis", "miss").Inc()

	entry, err := c.store.Get(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	if entry.Complete() {
		c.setNX(ctx, *entry)
	}
	return entry, nil
}

func (c *RedisZipCache) PutIfAbsent(ctx context.Context, entry repository.ZipEntry) error {
	entry = entry.Canonical()
	if err := c.store.PutIfAbsent(ctx, entry); err != nil {
		return err
	}

	stored, err := c.store.Get(ctx, entry.Zipcode)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	if stored.Complete() {
		c.setNX(ctx, *stored)
	}
	return nil
}

func (c *RedisZipCache) setNX(ctx context.Context, entry repository.ZipEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	key := zipKeyPrefix + entry.Zipcode
	if err := c.client.SetNX(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis zip cache write failed", zap.String("key", key), zap.Error(err))
	}
}
