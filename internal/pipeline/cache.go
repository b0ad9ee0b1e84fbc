package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/infographic/internal/document"
)

type cacheEntry struct {
	doc *document.Document
	at  time.Time
}

// ParseCache remembers parsed documents by content hash so identical input
// is not sent to the model twice within the TTL. Documents are immutable, so
// a hit shares the cached value.
type ParseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewParseCache returns a cache; a non-positive ttl disables it.
func NewParseCache(ttl time.Duration) *ParseCache {
	return &ParseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *ParseCache) Get(hash string) (*document.Document, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[hash]
	if !ok || time.Since(e.at) > c.ttl {
		return nil, false
	}
	return e.doc, true
}

func (c *ParseCache) Put(hash string, doc *document.Document) {
	if c == nil || c.ttl <= 0 || doc == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = cacheEntry{doc: doc, at: time.Now()}
}

// Cleanup removes expired entries.
func (c *ParseCache) Cleanup() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.Sub(e.at) > c.ttl {
			delete(c.entries, k)
		}
	}
}

func (c *ParseCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
