package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/promptforge/prompt-forge/internal/renderer"
)

// templateCache memoizes parsed templates by a content hash of the source.
// Inserts are idempotent (reparsing the same source yields an equivalent
// AST), so entries are never evicted automatically; callers clear or
// invalidate explicitly.
type templateCache struct {
	mu      sync.RWMutex
	entries map[string][]renderer.Node
}

func newTemplateCache() *templateCache {
	return &templateCache{entries: make(map[string][]renderer.Node)}
}

// HashTemplate returns the cache key for a template source string.
func HashTemplate(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

func (c *templateCache) get(key string) ([]renderer.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nodes, ok := c.entries[key]
	return nodes, ok
}

func (c *templateCache) put(key string, nodes []renderer.Node) {
	c.mu.Lock()
	c.entries[key] = nodes
	c.mu.Unlock()
}

func (c *templateCache) invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *templateCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string][]renderer.Node)
	c.mu.Unlock()
}

func (c *templateCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
