package cache

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

// ZipStore is the durable zip cache, the zip_cache sheet in production.
type ZipStore interface {
	Get(ctx context.Context, zipcode string) (*repository.ZipEntry, error)
	PutIfAbsent(ctx context.Context, entry repository.ZipEntry) error
}

type ZipLoader interface {
	All(ctx context.Context) ([]repository.ZipEntry, error)
}

// ZipCache keeps complete zip entries in memory in front of a ZipStore.
// Entries are only ever inserted, so a cached entry never goes stale.
type ZipCache struct {
	mu     sync.RWMutex
	cache  map[string]repository.ZipEntry
	store  ZipStore
	logger *zap.Logger
}

func NewZipCache(store ZipStore, logger *zap.Logger) *ZipCache {
	return &ZipCache{
		cache:  make(map[string]repository.ZipEntry),
		store:  store,
		logger: logger,
	}
}

func (c *ZipCache) LoadInitialData(ctx context.Context, loader ZipLoader) error {
	c.logger.Info("Loading zip cache entries into memory...")
	entries, err := loader.All(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		if _, exists := c.cache[e.Zipcode]; !exists && e.Complete() {
			c.cache[e.Zipcode] = e
		}
	}
	metrics.ZipCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("Loaded zip cache entries", zap.Int("count", len(c.cache)))
	return nil
}

func (c *ZipCache) Get(ctx context.Context, zipcode string) (*repository.ZipEntry, error) {
	c.mu.RLock()
	entry, found := c.cache[zipcode]
	c.mu.RUnlock()
	if found {
		metrics.ZipCacheLookupsTotal.WithLabelValues("memory", "hit").Inc()
		return &entry, nil
	}
	metrics.ZipCacheLookupsTotal.WithLabelValues("memory", "miss").Inc()

	stored, err := c.store.Get(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	if stored.Complete() {
		c.remember(*stored)
	}
	return stored, nil
}

func (c *ZipCache) PutIfAbsent(ctx context.Context, entry repository.ZipEntry) error {
	entry = entry.Canonical()
	if err := c.store.PutIfAbsent(ctx, entry); err != nil {
		return err
	}

	// The store keeps the first writer's entry; mirror that rather than ours.
	stored, err := c.store.Get(ctx, entry.Zipcode)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	if stored.Complete() {
		c.remember(*stored)
	}
	return nil
}

func (c *ZipCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *ZipCache) remember(entry repository.ZipEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.cache[entry.Zipcode]; exists {
		return
	}
	c.cache[entry.Zipcode] = entry
	metrics.ZipCacheItems.Set(float64(len(c.cache)))
}
