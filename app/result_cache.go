package app

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"convsig/domain/core"
	"convsig/domain/outcome"
)

// cacheCapacity bounds the number of retained analysis results. Entries are
// evicted LRU under pressure and reaped in the background once their TTL
// elapses.
const cacheCapacity = 1024

// ResultCache is the content-addressed cache of completed analyses.
type ResultCache struct {
	lru *expirable.LRU[string, outcome.OutcomeAnalysisResult]
	ttl time.Duration

	// Metrics (atomic)
	hits   uint64
	misses uint64
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Entries int     `json:"entries"`
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	TTL     string  `json:"ttl"`
}

// NewResultCache creates a TTL-bounded LRU result cache. The expirable LRU
// runs its own background sweep that evicts entries strictly by
// now - createdAt >= ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		lru: expirable.NewLRU[string, outcome.OutcomeAnalysisResult](cacheCapacity, nil, ttl),
		ttl: ttl,
	}
}

// Get returns the cached result for a request key, if present and fresh.
// Freshness is enforced strictly against the result's computation time
// (now - computedAt >= ttl is stale); the LRU's own sweep runs on a coarser
// interval.
func (c *ResultCache) Get(key core.RequestKey) (outcome.OutcomeAnalysisResult, bool) {
	res, ok := c.lru.Get(key.String())
	if ok && !res.ComputedAt.IsZero() && res.ComputedAt.Expired(core.Now(), c.ttl) {
		c.lru.Remove(key.String())
		res, ok = outcome.OutcomeAnalysisResult{}, false
	}
	if ok {
		atomic.AddUint64(&c.hits, 1)
	} else {
		atomic.AddUint64(&c.misses, 1)
	}
	return res, ok
}

// Put stores a completed analysis under its request key.
func (c *ResultCache) Put(key core.RequestKey, res outcome.OutcomeAnalysisResult) {
	c.lru.Add(key.String(), res)
}

// Invalidate drops a single cached entry.
func (c *ResultCache) Invalidate(key core.RequestKey) {
	c.lru.Remove(key.String())
}

// Purge drops every cached entry.
func (c *ResultCache) Purge() {
	c.lru.Purge()
}

// Stats returns a consistent snapshot of the counters.
func (c *ResultCache) Stats() CacheStats {
	hits := atomic.LoadUint64(&c.hits)
	misses := atomic.LoadUint64(&c.misses)
	rate := 0.0
	if hits+misses > 0 {
		rate = float64(hits) / float64(hits+misses)
	}
	return CacheStats{
		Entries: c.lru.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: rate,
		TTL:     c.ttl.String(),
	}
}
