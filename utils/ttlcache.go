package utils

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TTLCache stores JSON-encoded values under a key prefix. Every entry expires after the cache's TTL.
type TTLCache interface {
	// Get decodes the entry into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// RedisTTLCache is a TTLCache backed by Redis key expiry.
type RedisTTLCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisTTLCache(client *redis.Client, prefix string, ttl time.Duration) *RedisTTLCache {
	return &RedisTTLCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisTTLCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisTTLCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, b, c.ttl).Err()
}

func (c *RedisTTLCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// MemoryCacheMaxEntries bounds a MemoryTTLCache.
const MemoryCacheMaxEntries = 10000

// MemoryTTLCache is a process-local TTLCache used when Redis is not configured and in tests.
// Once full, Set drops expired entries and then the entry closest to expiry.
type MemoryTTLCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	entries    map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryTTLCache(ttl time.Duration) *MemoryTTLCache {
	return &MemoryTTLCache{ttl: ttl, maxEntries: MemoryCacheMaxEntries, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryTTLCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(e.data, dst)
}

func (c *MemoryTTLCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = memoryEntry{data: b, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// evict frees at least one slot. Caller holds c.mu.
func (c *MemoryTTLCache) evict(now time.Time) {
	var (
		oldest   string
		oldestAt time.Time
		found    bool
	)
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			continue
		}
		if !found || e.expiresAt.Before(oldestAt) {
			oldest, oldestAt, found = k, e.expiresAt, true
		}
	}
	if len(c.entries) >= c.maxEntries {
		delete(c.entries, oldest)
	}
}

func (c *MemoryTTLCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
