// Package rendercache memoizes rendered cell strings keyed by a
// content fingerprint. It is an LRU bounded by both entry count and
// approximate memory, with hit/miss/eviction metrics. The owning grid
// clears it wholesale whenever the row transform recomputes, because
// the same (row, col) then denotes different data.
package rendercache

import (
	"container/list"
	"hash/fnv"
	"sync"
)

// Flags carries the per-cell interaction state that participates in
// the fingerprint. Two renders of the same value with different flags
// must not share a cache entry.
type Flags struct {
	Selected bool
	Active   bool
	Editing  bool
}

func (f Flags) pack() uint8 {
	var b uint8
	if f.Selected {
		b |= 1
	}
	if f.Active {
		b |= 2
	}
	if f.Editing {
		b |= 4
	}
	return b
}

// Key uniquely identifies a rendered cell. Identical inputs yield
// identical keys; distinct meaningful inputs should yield distinct
// keys (hash collisions on the value are tolerable only because they
// collide on identical visible output in practice).
type Key struct {
	Row       int
	Col       int
	ValueHash uint64
	Flags     uint8
	Width     int
	Theme     string
}

// Fingerprint derives the cache key for a cell render.
func Fingerprint(row, col int, value string, flags Flags, width int, theme string) Key {
	h := fnv.New64a()
	_, _ = h.Write([]byte(value))
	return Key{
		Row:       row,
		Col:       col,
		ValueHash: h.Sum64(),
		Flags:     flags.pack(),
		Width:     width,
		Theme:     theme,
	}
}

// Metrics tracks cache performance statistics.
type Metrics struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	SizeEvicts uint64 // evictions forced by the byte limit
}

// HitRate returns the hit rate as a percentage (0-100).
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total) * 100
}

// DefaultCapacity is the default entry limit; a couple of overscanned
// viewports' worth of cells.
const DefaultCapacity = 2000

// DefaultMaxBytes is the default memory limit (~4MB).
const DefaultMaxBytes = 4 * 1024 * 1024

type entry struct {
	key   Key
	value string
	size  int64
}

// entrySize estimates the memory a cache entry occupies.
func entrySize(key Key, value string) int64 {
	return int64(len(value)) + int64(len(key.Theme)) + 48
}

// Cache is an LRU over rendered cell strings.
type Cache struct {
	capacity    int
	maxBytes    int64
	currentSize int64
	items       map[Key]*list.Element
	lru         *list.List
	mu          sync.Mutex

	metrics Metrics
}

// New creates a cache with the default limits.
func New() *Cache {
	return NewWithLimits(DefaultCapacity, DefaultMaxBytes)
}

// NewWithLimits creates a cache bounded by entry count and bytes.
// Eviction occurs when either limit is exceeded.
func NewWithLimits(capacity int, maxBytes int64) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Cache{
		capacity: capacity,
		maxBytes: maxBytes,
		items:    make(map[Key]*list.Element),
		lru:      list.New(),
	}
}

// Get retrieves a cached render, returning ("", false) on a miss.
func (c *Cache) Get(key Key) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		c.metrics.Hits++
		return elem.Value.(*entry).value, true
	}
	c.metrics.Misses++
	return "", false
}

// Put stores a rendered cell, evicting from the cold end until both
// limits hold.
func (c *Cache) Put(key Key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := entrySize(key, value)

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		old := elem.Value.(*entry)
		c.currentSize += size - old.size
		old.value = value
		old.size = size
		return
	}

	for c.lru.Len() >= c.capacity || c.currentSize+size > c.maxBytes {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		// Under the entry cap, only the byte limit can be forcing
		// this eviction.
		byBytes := c.lru.Len() < c.capacity
		ev := oldest.Value.(*entry)
		delete(c.items, ev.key)
		c.lru.Remove(oldest)
		c.currentSize -= ev.size
		c.metrics.Evictions++
		if byBytes {
			c.metrics.SizeEvicts++
		}
	}

	e := &entry{key: key, value: value, size: size}
	c.items[key] = c.lru.PushFront(e)
	c.currentSize += size
}

// Clear empties the cache but preserves metrics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[Key]*list.Element)
	c.lru.Init()
	c.currentSize = 0
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// ByteSize returns the estimated memory usage in bytes.
func (c *Cache) ByteSize() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentSize
}

// GetMetrics returns a copy of the current metrics.
func (c *Cache) GetMetrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}

// ResetMetrics clears the performance counters.
func (c *Cache) ResetMetrics() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = Metrics{}
}
