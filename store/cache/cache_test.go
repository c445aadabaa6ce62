package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute})
	defer c.Close()

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute})
	defer c.Close()

	c.SetWithTTL("a", 1, -time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	evicted := map[string]any{}
	c := New(Config{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
		OnEviction:      func(k string, v any) { evicted[k] = v },
	})
	defer c.Close()

	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, evicted["a"])
}

func TestCacheMaxItems(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 2})
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	assert.Equal(t, 2, c.Len())
}
