package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"circuitdoc/internal/domain"
	"circuitdoc/internal/port"
)

// ResultCache is a bounded LRU of explanations keyed by source content hash.
// It is safe for concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Explanation
	order   []string
	maxSize int
	hits    int
}

func NewResultCache(maxSize int) *ResultCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &ResultCache{
		entries: make(map[string]domain.Explanation),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// ContentHash returns the hex sha256 of source.
func ContentHash(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:])
}

func (c *ResultCache) Get(hash string) (domain.Explanation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp, ok := c.entries[hash]
	if !ok {
		return domain.Explanation{}, false
	}
	c.hits++
	c.moveToEnd(hash)
	return exp, true
}

func (c *ResultCache) Put(hash string, exp domain.Explanation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[hash]; exists {
		c.entries[hash] = exp
		c.moveToEnd(hash)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[hash] = exp
	c.order = append(c.order, hash)
}

// Size returns the number of distinct sources held.
func (c *ResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Hits returns how many lookups were served from the cache.
func (c *ResultCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

func (c *ResultCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *ResultCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *ResultCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedExplainer serves repeated sources from a ResultCache.
type CachedExplainer struct {
	explainer port.Explainer
	cache     *ResultCache
}

func NewCachedExplainer(explainer port.Explainer, cache *ResultCache) *CachedExplainer {
	return &CachedExplainer{
		explainer: explainer,
		cache:     cache,
	}
}

func (e *CachedExplainer) Explain(source string) domain.Explanation {
	key := ContentHash(source)
	if exp, hit := e.cache.Get(key); hit {
		return exp
	}

	exp := e.explainer.Explain(source)
	e.cache.Put(key, exp)
	return exp
}
