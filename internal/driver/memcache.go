package driver

import "sync"

// MemoryCache is a per-process Cache. The fix command uses it so the
// re-check after applying edits only re-analyzes files that changed.
type MemoryCache struct {
	mu    sync.RWMutex
	byKey map[Digest]*CachedResult
	hits  int
}

// NewMemoryCache creates a MemoryCache with the given capacity hint.
func NewMemoryCache(capHint int) *MemoryCache {
	return &MemoryCache{byKey: make(map[Digest]*CachedResult, capHint)}
}

// Get copies the stored result into out.
func (c *MemoryCache) Get(key Digest, out *CachedResult) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.byKey[key]
	if !ok {
		return false, nil
	}
	c.hits++
	*out = *rec
	return true, nil
}

// Put inserts a result.
func (c *MemoryCache) Put(key Digest, res *CachedResult) error {
	if res == nil {
		return nil
	}
	c.mu.Lock()
	c.byKey[key] = res
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored results.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}

// Hits returns how many lookups were served.
func (c *MemoryCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}
