package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/cyberscore/cyberscore/pkg/benchmark"
)

// BenchmarkCache is a thread-safe LRU cache for computed sector benchmarks.
// Sector statistics are expensive to recompute on every comparison request
// and only change when a new scan commits, so entries are invalidated on
// score publication rather than by TTL.
type BenchmarkCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	bench *benchmark.SectorBenchmark
}

// NewBenchmarkCache creates a cache with the given maximum number of sectors.
// If maxSize <= 0, it defaults to 20.
func NewBenchmarkCache(maxSize int) *BenchmarkCache {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &BenchmarkCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewBenchmarkCacheFromEnv creates a cache with size from the
// BENCHMARK_CACHE_SIZE env var.
func NewBenchmarkCacheFromEnv() *BenchmarkCache {
	size := 20
	if v := os.Getenv("BENCHMARK_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewBenchmarkCache(size)
}

// Get retrieves a sector benchmark from the cache, or nil if not found.
func (c *BenchmarkCache) Get(sector string) *benchmark.SectorBenchmark {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[sector]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(sector)
	return entry.bench
}

// Put adds a sector benchmark to the cache, evicting the oldest if full.
func (c *BenchmarkCache) Put(sector string, bench *benchmark.SectorBenchmark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[sector]; ok {
		c.entries[sector] = &cacheEntry{bench: bench}
		c.moveToEnd(sector)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[sector] = &cacheEntry{bench: bench}
	c.order = append(c.order, sector)
}

// Invalidate drops a sector's cached benchmark. Called after a scan commits
// a new score for any vendor in that sector.
func (c *BenchmarkCache) Invalidate(sector string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[sector]; !ok {
		return
	}
	delete(c.entries, sector)
	for i, k := range c.order {
		if k == sector {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *BenchmarkCache) moveToEnd(sector string) {
	for i, k := range c.order {
		if k == sector {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, sector)
			return
		}
	}
}
