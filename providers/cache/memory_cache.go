package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"skycast.app/models"
)

// GenericCacheInterface defines generic cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// BundleCacheInterface defines the interface for weather bundle caching
type BundleCacheInterface interface {
	Get(ctx context.Context, key string) (*models.WeatherBundle, bool)
	Set(ctx context.Context, key string, value *models.WeatherBundle, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// BundleKey builds the cache key for one coordinate pair. Coordinates are
// rounded to two decimals so nearby lookups share an entry.
func BundleKey(lat, lon float64) string {
	return fmt.Sprintf("bundle:%.2f:%.2f", lat, lon)
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryCache struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go cache.cleanup()
	return cache
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

func (c *MemoryCache) Stop() {
	close(c.stopCh)
}

func (c *MemoryCache) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}

// BundleCache wraps a generic cache with weather-bundle operations
type BundleCache struct {
	cache GenericCacheInterface
}

func NewBundleCache(cache GenericCacheInterface) BundleCacheInterface {
	return &BundleCache{
		cache: cache,
	}
}

func (b *BundleCache) Get(ctx context.Context, key string) (*models.WeatherBundle, bool) {
	data, found := b.cache.Get(ctx, key)
	if !found {
		return nil, false
	}

	var bundle models.WeatherBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, false
	}

	return &bundle, true
}

func (b *BundleCache) Set(ctx context.Context, key string, value *models.WeatherBundle, ttl time.Duration) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	b.cache.Set(ctx, key, data, ttl)
}

func (b *BundleCache) Delete(ctx context.Context, key string) {
	b.cache.Delete(ctx, key)
}

func (b *BundleCache) Clear(ctx context.Context) {
	b.cache.Clear(ctx)
}
