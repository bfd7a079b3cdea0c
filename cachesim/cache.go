// Package cachesim provides a functional cache model for the AltairX
// core using Akita cache components. It tracks placement, eviction and
// hit/miss statistics; it models no latency.
package cachesim

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache geometry parameters.
type Config struct {
	// Size in bytes
	Size int
	// Associativity (number of ways)
	Associativity int
	// BlockSize in bytes (cache line size)
	BlockSize int
}

// ICacheConfig returns the AltairX instruction cache geometry:
// 64 KiB, 4-way, 64-byte lines.
func ICacheConfig() Config {
	return Config{
		Size:          64 * 1024,
		Associativity: 4,
		BlockSize:     64,
	}
}

// DCacheConfig returns the AltairX data cache geometry:
// 32 KiB, 4-way, 64-byte lines.
func DCacheConfig() Config {
	return Config{
		Size:          32 * 1024,
		Associativity: 4,
		BlockSize:     64,
	}
}

// AccessResult contains the result of one cache access.
type AccessResult struct {
	// Hit indicates whether the access hit.
	Hit bool
	// Evicted is true if a resident block was displaced.
	Evicted bool
	// EvictedAddr is the block address displaced (if Evicted).
	EvictedAddr uint64
}

// Statistics holds cache access statistics.
type Statistics struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
}

// Cache is a set-associative cache model. Tag and replacement state
// live in an Akita cache directory; no data is held because the model
// is purely functional.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics
}

// New creates a cache with the given geometry.
func New(config Config) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Config returns the cache geometry.
func (c *Cache) Config() Config { return c.config }

// Stats returns the accumulated statistics.
func (c *Cache) Stats() Statistics { return c.stats }

// ResetStats clears the statistics.
func (c *Cache) ResetStats() { c.stats = Statistics{} }

// Read records a read access at addr.
func (c *Cache) Read(addr uint64) AccessResult {
	c.stats.Reads++
	return c.access(addr, false)
}

// Write records a write access at addr. The policy is write-allocate.
func (c *Cache) Write(addr uint64) AccessResult {
	c.stats.Writes++
	return c.access(addr, true)
}

func (c *Cache) access(addr uint64, isWrite bool) AccessResult {
	blockAddr := addr / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		if isWrite {
			block.IsDirty = true
		}
		return AccessResult{Hit: true}
	}

	c.stats.Misses++
	result := AccessResult{}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag
		if victim.IsDirty {
			c.stats.Writebacks++
		}
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = isWrite
	c.directory.Visit(victim)

	return result
}

// Invalidate drops the line holding addr, if resident.
func (c *Cache) Invalidate(addr uint64) {
	blockAddr := addr / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)
	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Reset invalidates every line and clears the statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
