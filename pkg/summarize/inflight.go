package summarize

import "sync"

// inflightGuard tracks articles with a summary generation in progress so
// that concurrent requests for the same article are rejected instead of
// racing each other into the store.
//
// All methods are safe for concurrent access.
type inflightGuard struct {
	mu      sync.Mutex
	entries map[string]struct{}
}

// newInflightGuard creates a new empty guard.
func newInflightGuard() *inflightGuard {
	return &inflightGuard{
		entries: make(map[string]struct{}),
	}
}

// acquire marks the article as having a generation in flight. Returns
// false when one is already running for the same article.
func (g *inflightGuard) acquire(articleID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.entries[articleID]; ok {
		return false
	}
	g.entries[articleID] = struct{}{}
	return true
}

// release clears the in-flight mark. Safe to call for an unknown ID.
func (g *inflightGuard) release(articleID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, articleID)
}
