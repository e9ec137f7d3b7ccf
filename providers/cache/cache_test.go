package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skycast.app/models"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		c := NewMemoryCache()
		defer c.Stop()

		c.Set(ctx, "key", []byte("value"), time.Minute)

		data, found := c.Get(ctx, "key")
		assert.True(t, found)
		assert.Equal(t, []byte("value"), data)
	})

	t.Run("MissingKey", func(t *testing.T) {
		c := NewMemoryCache()
		defer c.Stop()

		_, found := c.Get(ctx, "absent")
		assert.False(t, found)
	})

	t.Run("ExpiredEntry", func(t *testing.T) {
		c := NewMemoryCache()
		defer c.Stop()

		c.Set(ctx, "key", []byte("value"), -time.Second)

		_, found := c.Get(ctx, "key")
		assert.False(t, found)
	})

	t.Run("NilValueIgnored", func(t *testing.T) {
		c := NewMemoryCache()
		defer c.Stop()

		c.Set(ctx, "key", nil, time.Minute)

		_, found := c.Get(ctx, "key")
		assert.False(t, found)
	})

	t.Run("DeleteAndClear", func(t *testing.T) {
		c := NewMemoryCache()
		defer c.Stop()

		c.Set(ctx, "a", []byte("1"), time.Minute)
		c.Set(ctx, "b", []byte("2"), time.Minute)

		c.Delete(ctx, "a")
		_, found := c.Get(ctx, "a")
		assert.False(t, found)

		c.Clear(ctx)
		_, found = c.Get(ctx, "b")
		assert.False(t, found)
	})
}

func TestBundleCache(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		mem := NewMemoryCache()
		defer mem.Stop()
		c := NewBundleCache(mem)

		bundle := &models.WeatherBundle{
			CurrentWeather: models.CurrentWeather{City: "Kyiv", Temp: 21.5},
			UVIndex:        5,
		}
		c.Set(ctx, BundleKey(50.45, 30.52), bundle, time.Minute)

		got, found := c.Get(ctx, BundleKey(50.45, 30.52))
		require.True(t, found)
		assert.Equal(t, "Kyiv", got.CurrentWeather.City)
		assert.Equal(t, 21.5, got.CurrentWeather.Temp)
		assert.Equal(t, 5, got.UVIndex)
	})

	t.Run("CorruptEntryIsMiss", func(t *testing.T) {
		mem := NewMemoryCache()
		defer mem.Stop()
		c := NewBundleCache(mem)

		mem.Set(ctx, "bundle:bad", []byte("not json"), time.Minute)

		_, found := c.Get(ctx, "bundle:bad")
		assert.False(t, found)
	})
}

func TestBundleKey(t *testing.T) {
	assert.Equal(t, "bundle:50.45:30.52", BundleKey(50.45, 30.52))
	// nearby coordinates collapse onto the same key
	assert.Equal(t, BundleKey(50.451, 30.521), BundleKey(50.449, 30.519))
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := NewRedisCache(&RedisCacheConfig{
		Addr:         mr.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, c.Close())
	}()

	t.Run("SetAndGet", func(t *testing.T) {
		c.Set(ctx, "key", []byte("value"), time.Minute)

		data, found := c.Get(ctx, "key")
		assert.True(t, found)
		assert.Equal(t, []byte("value"), data)
	})

	t.Run("TTLExpiry", func(t *testing.T) {
		c.Set(ctx, "transient", []byte("v"), time.Second)
		mr.FastForward(2 * time.Second)

		_, found := c.Get(ctx, "transient")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "gone", []byte("v"), time.Minute)
		c.Delete(ctx, "gone")

		_, found := c.Get(ctx, "gone")
		assert.False(t, found)
	})
}

func TestRedisCache_ConnectionFailure(t *testing.T) {
	_, err := NewRedisCache(&RedisCacheConfig{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestBundleKey_Negative(t *testing.T) {
	assert.Equal(t, "bundle:-33.87:151.21", BundleKey(-33.8688, 151.2093))
}
