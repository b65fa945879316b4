package infra

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Cache limits. Bitquery aggregates are small JSON documents, so a few
// thousand entries is plenty before LRU eviction kicks in.
const (
	DefaultMaxCacheEntries = 1000
	DefaultCacheCleanup    = 5 * time.Minute
)

// CacheEntry holds cached data with expiration and LRU tracking.
type CacheEntry struct {
	Data       interface{}
	ExpiresAt  time.Time
	AccessedAt time.Time
	Key        string
	mu         sync.Mutex
}

// Cache is an LRU cache with per-entry TTL. Query tools use it to avoid
// re-running identical Bitquery aggregations within the TTL window.
type Cache struct {
	entries    sync.Map // key (string) -> *CacheEntry
	count      int64
	maxEntries int64
	mu         sync.Mutex // guards eviction

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache holding at most maxEntries entries.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	c := &Cache{
		maxEntries: int64(maxEntries),
		stopCh:     make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns a cached value if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	if entry, ok := c.entries.Load(key); ok {
		ce := entry.(*CacheEntry)
		now := time.Now()
		if now.Before(ce.ExpiresAt) {
			ce.mu.Lock()
			ce.AccessedAt = now
			ce.mu.Unlock()
			return ce.Data, true
		}
		c.entries.Delete(key)
		atomic.AddInt64(&c.count, -1)
	}
	return nil, false
}

// Set stores a value with the given TTL.
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	now := time.Now()

	_, existed := c.entries.Load(key)

	c.entries.Store(key, &CacheEntry{
		Data:       data,
		ExpiresAt:  now.Add(ttl),
		AccessedAt: now,
		Key:        key,
	})

	if !existed {
		newCount := atomic.AddInt64(&c.count, 1)
		// Evict asynchronously so Set never blocks a tool call.
		if newCount > c.maxEntries {
			go c.evictLRU(int(newCount - c.maxEntries + c.maxEntries/10))
		}
	}
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	if _, existed := c.entries.LoadAndDelete(key); existed {
		atomic.AddInt64(&c.count, -1)
	}
}

// DeletePrefix removes all entries whose key starts with prefix. The trading
// client uses it to drop stale balance and allowance entries after a
// transaction lands.
func (c *Cache) DeletePrefix(prefix string) {
	var deleted int64
	c.entries.Range(func(key, value interface{}) bool {
		if k := key.(string); len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			c.entries.Delete(key)
			deleted++
		}
		return true
	})
	if deleted > 0 {
		atomic.AddInt64(&c.count, -deleted)
	}
}

// Size returns the current number of entries.
func (c *Cache) Size() int64 {
	return atomic.LoadInt64(&c.count)
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(DefaultCacheCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) cleanup() {
	now := time.Now()
	var expired int64

	c.entries.Range(func(key, value interface{}) bool {
		ce := value.(*CacheEntry)
		if now.After(ce.ExpiresAt) {
			c.entries.Delete(key)
			expired++
		}
		return true
	})

	if expired > 0 {
		atomic.AddInt64(&c.count, -expired)
	}

	current := atomic.LoadInt64(&c.count)
	if current > c.maxEntries {
		c.evictLRU(int(current - c.maxEntries + c.maxEntries/10))
	}
}

// evictLRU removes the count least recently used entries.
func (c *Cache) evictLRU(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type entryInfo struct {
		key        string
		accessedAt time.Time
	}
	var entries []entryInfo

	c.entries.Range(func(key, value interface{}) bool {
		ce := value.(*CacheEntry)
		ce.mu.Lock()
		accessedAt := ce.AccessedAt
		ce.mu.Unlock()
		entries = append(entries, entryInfo{key: key.(string), accessedAt: accessedAt})
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].accessedAt.Before(entries[j].accessedAt)
	})

	evicted := 0
	for _, entry := range entries {
		if evicted >= count {
			break
		}
		c.entries.Delete(entry.key)
		evicted++
	}

	if evicted > 0 {
		atomic.AddInt64(&c.count, -int64(evicted))
	}
}
