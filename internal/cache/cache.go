// internal/cache/cache.go
package cache

import (
	"container/list"
	"sync"
)

// DefaultEntries is the capacity used when none is given
const DefaultEntries = 10000

// Cache remembers computed destination URLs.
//
// Resolution is deterministic, so entries never expire; they are only
// evicted when the cache is full.
type Cache interface {
	// Get returns the destination cached for key
	Get(key string) (string, bool)

	// Set stores a destination, replacing any previous one
	Set(key, destination string)

	// Len returns the number of cached entries
	Len() int

	// Clear removes every entry
	Clear()
}

type entry struct {
	key         string
	destination string
}

// LRU is an in-memory Cache evicting the least recently used entry
type LRU struct {
	mu       sync.Mutex
	store    map[string]*list.Element
	order    *list.List // front is most recently used
	capacity int
	hits     uint64
	misses   uint64
}

// NewLRU creates an LRU holding up to capacity entries
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultEntries
	}
	return &LRU{
		store:    make(map[string]*list.Element),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get returns the cached destination and marks it recently used
func (c *LRU) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.store[key]
	if !ok {
		c.misses++
		return "", false
	}
	c.order.MoveToFront(element)
	c.hits++
	return element.Value.(*entry).destination, true
}

// Set stores destination under key, evicting the oldest entry when full
func (c *LRU) Set(key, destination string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.store[key]; ok {
		element.Value.(*entry).destination = destination
		c.order.MoveToFront(element)
		return
	}

	for c.order.Len() >= c.capacity {
		c.evictLRU()
	}
	c.store[key] = c.order.PushFront(&entry{key: key, destination: destination})
}

// Len returns the number of cached entries
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries and resets the counters
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*list.Element)
	c.order.Init()
	c.hits, c.misses = 0, 0
}

// evictLRU must be called with the lock held
func (c *LRU) evictLRU() {
	element := c.order.Back()
	if element == nil {
		return
	}
	c.order.Remove(element)
	delete(c.store, element.Value.(*entry).key)
}

// Stats reports cache usage
type Stats struct {
	Entries  int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// HitRate returns hits as a fraction of lookups
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the cache counters
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:  c.order.Len(),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

// Key builds the cache key of a base and target pair
func Key(base, target string) string {
	return base + "\x00" + target
}
