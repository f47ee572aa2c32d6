package cache

import (
	"sync"
	"time"
)

// Cache is a small process-local TTL cache. It backs the catalog cache when
// Redis is not configured. Expired entries are dropped lazily on read.

type Cache struct {
	mu         sync.RWMutex
	defaultTTL time.Duration
	entries    map[string]entry
}

type entry struct {
	val       any
	expiresAt time.Time
}

func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Second
	}

	return &Cache{
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.Delete(key)
		return nil, false
	}

	return e.val, true
}

func (c *Cache) Set(key string, val any) {
	c.SetWithTTL(key, val, c.defaultTTL)
}

// SetWithTTL stores one entry with its own lifetime, for the odd key that
// should outlive (or expire before) the default.
func (c *Cache) SetWithTTL(key string, val any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{val: val, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports how many entries are stored, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
