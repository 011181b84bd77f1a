package slice

import "github.com/dm-vev/worldslice/world"

// biomeCache lazily memoizes the resolved biome of every 4x4x4 cell of one
// section. The cache is reset, not reallocated, when its Slice is loaded
// with a new snapshot.
type biomeCache struct {
	values [64]world.Biome
	// filled is a bitset with one bit per cell of values.
	filled uint64
}

// reset clears the fill bits of the cache. The values array is kept so that
// reuse causes no allocation.
func (c *biomeCache) reset() {
	c.filled = 0
}

// biome returns the biome of the cell holding the world coordinates passed,
// resolving and caching it on first access.
func (c *biomeCache) biome(s *Slice, sec *ClonedSection, x, y, z int) world.Biome {
	slot := ((y>>2)&3)<<4 | ((z>>2)&3)<<2 | (x>>2)&3
	if c.filled&(1<<slot) != 0 {
		return c.values[slot]
	}
	b := resolveBiome(s.w, sec, x, y, z)
	c.values[slot] = b
	c.filled |= 1 << slot
	return b
}

// resolveBiome resolves the biome at the world coordinates passed from a
// cloned section, falling back to the world's default biome for clones
// without biome data and for IDs that resolve to no registered biome.
func resolveBiome(w *world.World, sec *ClonedSection, x, y, z int) world.Biome {
	id, ok := sec.Biome(byte(x&15), byte(y&15), byte(z&15))
	if !ok {
		return w.DefaultBiome()
	}
	b, ok := world.BiomeByID(int(id))
	if !ok {
		return w.DefaultBiome()
	}
	return b
}
