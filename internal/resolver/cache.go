package resolver

import (
	"sync"

	"game-data-service/internal/domain"
)

// Cache stores resolved canonical keys by normalized name. Implementations
// must be safe for concurrent use; a failed store is silent (the next lookup
// simply resolves again).
type Cache interface {
	Get(normalized string) (domain.CanonicalGameKey, bool)
	Put(normalized string, key domain.CanonicalGameKey)
}

// MemoryCache is the default in-process cache.
type MemoryCache struct {
	mu   sync.RWMutex
	keys map[string]domain.CanonicalGameKey
}

// NewMemoryCache constructs an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{keys: make(map[string]domain.CanonicalGameKey)}
}

func (c *MemoryCache) Get(normalized string) (domain.CanonicalGameKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.keys[normalized]
	return key, ok
}

func (c *MemoryCache) Put(normalized string, key domain.CanonicalGameKey) {
	c.mu.Lock()
	c.keys[normalized] = key
	c.mu.Unlock()
}
