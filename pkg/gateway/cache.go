package gateway

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ConfigCache is a thread-safe, time-bounded cache of gateway records backed
// by a Fetcher. A cached record is served until it is older than the TTL; an
// expired record triggers a refetch, and if the refetch fails the stale
// record is served instead of an error (documented staleness exception).
//
// Concurrent lookups for the same key may each trigger a fetch on a miss
// race; the source tolerates duplicate reads, so no in-flight deduplication
// is performed.
type ConfigCache struct {
	// fetcher is the gateway record source consulted on miss or expiry.
	fetcher Fetcher

	// entries maps gateway IDs to cached records.
	entries map[string]*cacheEntry

	// ttl is how long a cached record is considered fresh.
	ttl time.Duration

	// mu protects concurrent access to entries.
	mu sync.RWMutex

	logger *slog.Logger

	// now is replaceable for tests.
	now func() time.Time

	// observe, if set, is called once per Get with the lookup outcome:
	// "hit", "miss", "stale", or "error".
	observe func(outcome string)
}

// cacheEntry owns one gateway record plus the wall-clock time it was fetched.
// Entries are replaced wholesale on refresh, never partially mutated.
type cacheEntry struct {
	config    *Config
	fetchedAt time.Time
}

// CacheStats is a point-in-time snapshot of cache contents for diagnostics.
type CacheStats struct {
	// Size is the number of cached records.
	Size int `json:"size"`

	// Keys lists the cached gateway IDs in sorted order.
	Keys []string `json:"keys"`
}

// NewConfigCache creates a gateway config cache backed by the given fetcher.
// If ttl is zero or negative, the default of 5 minutes is used.
func NewConfigCache(fetcher Fetcher, ttl time.Duration, logger *slog.Logger) *ConfigCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigCache{
		fetcher: fetcher,
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		observe: func(string) {},
	}
}

// SetLookupObserver installs a callback invoked once per Get with the lookup
// outcome. Intended for metrics; must be called before the cache is shared.
func (c *ConfigCache) SetLookupObserver(observe func(outcome string)) {
	if observe != nil {
		c.observe = observe
	}
}

// Get returns the gateway record for the given ID. A fresh cached record is
// returned without touching the fetcher. On miss or expiry, the record is
// fetched and cached. If the fetch fails and a stale record exists, the stale
// record is returned with a warning log; if nothing is cached, a
// *NotFoundError is returned.
//
// The returned record is a copy; callers may not observe later refreshes
// through it and must not expect writes to be visible to other callers.
func (c *ConfigCache) Get(ctx context.Context, id string) (*Config, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		cfg := entry.config.Clone()
		c.mu.RUnlock()
		c.observe("hit")
		return cfg, nil
	}
	c.mu.RUnlock()

	fetched, err := c.fetcher.FetchGateway(ctx, id)
	if err != nil {
		// Stale fallback: a previously cached record beats an error.
		c.mu.RLock()
		entry, ok := c.entries[id]
		c.mu.RUnlock()
		if ok {
			c.logger.Warn("gateway refresh failed, serving stale record",
				"gateway_id", id,
				"age", c.now().Sub(entry.fetchedAt).String(),
				"error", err,
			)
			cfg := entry.config.Clone()
			c.observe("stale")
			return cfg, nil
		}

		c.observe("error")
		if nf, isNotFound := err.(*NotFoundError); isNotFound {
			return nil, nf
		}
		return nil, &NotFoundError{ID: id, Cause: err}
	}

	c.mu.Lock()
	c.entries[id] = &cacheEntry{config: fetched, fetchedAt: c.now()}
	c.mu.Unlock()

	c.observe("miss")
	return fetched.Clone(), nil
}

// Preload bulk-populates the cache from the fetcher's list operation, with
// every record timestamped now. Failure is non-fatal: the cache simply
// starts empty (or keeps its current contents) and the error is returned
// for logging only.
func (c *ConfigCache) Preload(ctx context.Context) error {
	configs, err := c.fetcher.ListGateways(ctx)
	if err != nil {
		c.logger.Warn("gateway cache preload failed, starting cold", "error", err)
		return err
	}

	now := c.now()
	c.mu.Lock()
	for _, cfg := range configs {
		c.entries[cfg.ID] = &cacheEntry{config: cfg, fetchedAt: now}
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.logger.Info("gateway cache preloaded", "gateways", size)
	return nil
}

// Invalidate removes a single record from the cache.
func (c *ConfigCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}

// Clear removes all records from the cache.
func (c *ConfigCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
}

// Stats returns a snapshot of the cache contents for diagnostics.
func (c *ConfigCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for id := range c.entries {
		keys = append(keys, id)
	}
	sort.Strings(keys)

	return CacheStats{Size: len(c.entries), Keys: keys}
}

// Size returns the current number of cached records.
func (c *ConfigCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
