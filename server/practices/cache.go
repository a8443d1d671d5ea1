package practices

import (
	"context"
	"sync"
	"time"
)

// CacheStats is a point-in-time summary computed by scanning all entries
// against the current clock.
type CacheStats struct {
	TotalEntries   int           `json:"total_entries"`
	ValidEntries   int           `json:"valid_entries"`
	ExpiredEntries int           `json:"expired_entries"`
	TTL            time.Duration `json:"cache_ttl"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	TTL             time.Duration // default TTL for entries (default: 1 hour)
	CleanupInterval time.Duration // 0 disables the background sweep
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:             time.Hour,
		CleanupInterval: 0,
	}
}

type cacheEntry struct {
	response  *Response
	createdAt time.Time
	ttl       time.Duration
}

// Cache maps canonical query keys to immutable responses with TTL expiry.
// Expiry is checked on read; expired entries are logically absent and are
// removed on the access that finds them. An optional background sweep can be
// enabled via CleanupInterval.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*cacheEntry
	defaultTTL time.Duration

	// now is replaceable in tests to drive expiry without sleeping.
	now func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCache creates a new response cache.
func NewCache(cfg CacheConfig) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}

	c := &Cache{
		entries:    make(map[string]*cacheEntry),
		defaultTTL: cfg.TTL,
		now:        time.Now,
	}

	if cfg.CleanupInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.wg.Add(1)
		go c.cleanupLoop(ctx, cfg.CleanupInterval)
	}

	return c
}

// Close stops the background sweep, if any.
func (c *Cache) Close() {
	if c.cancel != nil {
		c.cancel()
		c.wg.Wait()
	}
}

// Get returns the cached response for key if present and unexpired.
// Reading does not refresh the entry's TTL.
func (c *Cache) Get(key string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.expired(e) {
		delete(c.entries, key)
		return nil, false
	}
	return e.response, true
}

// Put stores response under key with the default TTL. Last writer wins.
func (c *Cache) Put(key string, response *Response) {
	c.PutTTL(key, response, c.defaultTTL)
}

// PutTTL stores response under key with an explicit TTL.
func (c *Cache) PutTTL(key string, response *Response, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{
		response:  response,
		createdAt: c.now(),
		ttl:       ttl,
	}
}

// Clear drops all entries immediately.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats scans all entries against the current time.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CacheStats{TotalEntries: len(c.entries), TTL: c.defaultTTL}
	for _, e := range c.entries {
		if c.expired(e) {
			stats.ExpiredEntries++
		} else {
			stats.ValidEntries++
		}
	}
	return stats
}

// expired must be called with the lock held.
func (c *Cache) expired(e *cacheEntry) bool {
	return !c.now().Before(e.createdAt.Add(e.ttl))
}

// cleanupLoop periodically removes expired entries.
func (c *Cache) cleanupLoop(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []string
	for key, e := range c.entries {
		if c.expired(e) {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		delete(c.entries, key)
	}
	return len(stale)
}
