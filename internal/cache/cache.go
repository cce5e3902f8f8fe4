// Package cache holds short-lived read caches in front of the rate store.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// LatestRatesKey is the key under which the latest-per-currency listing is cached.
const LatestRatesKey = "latest-rates"

// RateCache is an in-process TTL cache. A nil *RateCache is a valid, disabled cache.
type RateCache struct {
	internal *gocache.Cache
	ttl      time.Duration
}

// New creates a RateCache. A non-positive ttl returns nil, which disables caching.
func New(ttl time.Duration) *RateCache {
	if ttl <= 0 {
		return nil
	}
	return &RateCache{
		internal: gocache.New(ttl, 2*ttl),
		ttl:      ttl,
	}
}

func (rc *RateCache) Set(key string, value interface{}) {
	if rc == nil {
		return
	}
	rc.internal.Set(key, value, rc.ttl)
}

func (rc *RateCache) Get(key string) (interface{}, bool) {
	if rc == nil {
		return nil, false
	}
	return rc.internal.Get(key)
}

// Flush drops every entry. Called after each import run.
func (rc *RateCache) Flush() {
	if rc == nil {
		return
	}
	rc.internal.Flush()
}

// HistoryKey returns the cache key for a currency's history listing.
func HistoryKey(currency string) string {
	return "history-" + currency
}
