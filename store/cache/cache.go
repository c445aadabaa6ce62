// Package cache provides a small in-memory TTL cache used by the store for
// hot settings rows.
package cache

import (
	"sync"
	"time"
)

// Config holds the cache settings.
type Config struct {
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	// MaxItems bounds the cache; inserts evict an arbitrary entry once full.
	MaxItems   int
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL map safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]item
	config Config
	stop   chan struct{}
	once   sync.Once
}

// New creates a cache and starts its cleanup goroutine.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 10 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	c := &Cache{
		items:  make(map[string]item),
		config: config,
		stop:   make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(it.expiresAt) {
		return nil, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.config.DefaultTTL)
}

// SetWithTTL stores a value with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.MaxItems > 0 && len(c.items) >= c.config.MaxItems {
		if _, exists := c.items[key]; !exists {
			for k, v := range c.items {
				c.evictLocked(k, v)
				break
			}
		}
	}
	c.items[key] = item{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[key]; ok {
		c.evictLocked(key, it)
	}
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() {
		close(c.stop)
	})
}

func (c *Cache) evictLocked(key string, it item) {
	delete(c.items, key)
	if c.config.OnEviction != nil {
		c.config.OnEviction(key, it.value)
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, it := range c.items {
				if now.After(it.expiresAt) {
					c.evictLocked(k, it)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
