package api

import (
	"fmt"

	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/report"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is used when Options.CacheSize is not positive.
const DefaultCacheSize = 256

// ResponseCache memoizes rendered dashboard responses. Keys embed the
// snapshot ID, so entries for a replaced snapshot are never hit again and
// age out of the LRU.
type ResponseCache struct {
	lru *lru.Cache[string, []byte]
}

// NewResponseCache creates a cache holding at most size responses.
func NewResponseCache(size int) (*ResponseCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}
	return &ResponseCache{lru: c}, nil
}

// CacheKey identifies one dashboard response.
func CacheKey(snapshotID string, page report.Page, spec filter.Spec) string {
	return snapshotID + "|" + string(page) + "|" + spec.Key()
}

// Get returns a cached body.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Add stores a body.
func (c *ResponseCache) Add(key string, body []byte) {
	c.lru.Add(key, body)
}

// Len returns the number of cached responses.
func (c *ResponseCache) Len() int {
	return c.lru.Len()
}
