package cache

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

// countingStore is an in-memory ZipStore that counts reads.
type countingStore struct {
	mu      sync.Mutex
	entries map[string]repository.ZipEntry
	gets    int
}

func newCountingStore(entries ...repository.ZipEntry) *countingStore {
	s := &countingStore{entries: map[string]repository.ZipEntry{}}
	for _, e := range entries {
		s.entries[e.Zipcode] = e
	}
	return s
}

func (s *countingStore) Get(_ context.Context, zipcode string) (*repository.ZipEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	e, ok := s.entries[repository.NormalizeZipcode(zipcode)]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	return &e, nil
}

func (s *countingStore) PutIfAbsent(_ context.Context, entry repository.ZipEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.Zipcode]; !ok {
		s.entries[entry.Zipcode] = entry
	}
	return nil
}

func (s *countingStore) All(_ context.Context) ([]repository.ZipEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.ZipEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func TestZipCache_Get(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(repository.ZipEntry{Zipcode: "2000", City: "rosario", State: "santa fe"})
	cache := NewZipCache(store, zap.NewNop())

	first, err := cache.Get(ctx, "2000")
	require.NoError(t, err)
	second, err := cache.Get(ctx, "2000")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.gets)

	_, err = cache.Get(ctx, "9999")
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
}

func TestZipCache_PutIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(repository.ZipEntry{Zipcode: "2000", City: "rosario", State: "santa fe"})
	cache := NewZipCache(store, zap.NewNop())

	require.NoError(t, cache.PutIfAbsent(ctx, repository.ZipEntry{Zipcode: "2000", City: "Other", State: "Other"}))
	require.NoError(t, cache.PutIfAbsent(ctx, repository.ZipEntry{Zipcode: "5000", City: " Córdoba ", State: "Córdoba"}))

	entry, err := cache.Get(ctx, "2000")
	require.NoError(t, err)
	assert.Equal(t, "rosario", entry.City)

	entry, err = cache.Get(ctx, "5000")
	require.NoError(t, err)
	assert.Equal(t, "córdoba", entry.City)
	assert.Equal(t, 2, cache.Len())
}

func TestZipCache_LoadInitialData(t *testing.T) {
	store := newCountingStore(
		repository.ZipEntry{Zipcode: "2000", City: "rosario", State: "santa fe"},
		repository.ZipEntry{Zipcode: "3000", City: "santa fe"},
	)
	cache := NewZipCache(store, zap.NewNop())

	require.NoError(t, cache.LoadInitialData(context.Background(), store))
	assert.Equal(t, 1, cache.Len())
}

func TestRedisZipCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	zip := "9" + strings.ReplaceAll(time.Now().Format("150405.000000"), ".", "")
	t.Cleanup(func() { client.Del(ctx, zipKeyPrefix+zip) })

	store := newCountingStore()
	cache := NewRedisZipCache(client, store, time.Minute, zap.NewNop())

	require.NoError(t, cache.PutIfAbsent(ctx, repository.ZipEntry{Zipcode: zip, City: "Rosario", State: "Santa Fe"}))

	gets := store.gets
	entry, err := cache.Get(ctx, zip)
	require.NoError(t, err)
	assert.Equal(t, "rosario", entry.City)
	assert.Equal(t, gets, store.gets, "redis hit must not reach the store")
}
