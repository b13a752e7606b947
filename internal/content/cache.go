package content

import "sync"

// ItemCache maps a parent id to that parent's ordered items. Entries are
// populated lazily, replaced after every item write and dropped when the
// parent is deleted. Nothing is evicted otherwise.
//
// Get and Put deep-copy every item so callers never share memory with
// the cache.
type ItemCache[I cloner[I]] struct {
	mu      sync.RWMutex
	entries map[string][]I
}

type cloner[I any] interface {
	Clone() I
}

// NewItemCache returns an empty cache.
func NewItemCache[I cloner[I]]() *ItemCache[I] {
	return &ItemCache[I]{entries: make(map[string][]I)}
}

// Get returns the cached items for parentID and whether an entry exists.
// An entry with zero items is still a hit.
func (c *ItemCache[I]) Get(parentID string) ([]I, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, ok := c.entries[parentID]
	if !ok {
		return nil, false
	}
	return cloneItems(items), true
}

// Put replaces the entry for parentID.
func (c *ItemCache[I]) Put(parentID string, items []I) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[parentID] = cloneItems(items)
}

// Invalidate drops the entry for parentID, if any.
func (c *ItemCache[I]) Invalidate(parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, parentID)
}

// Clear drops every entry.
func (c *ItemCache[I]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of cached parents.
func (c *ItemCache[I]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func cloneItems[I cloner[I]](items []I) []I {
	if items == nil {
		return nil
	}
	out := make([]I, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
