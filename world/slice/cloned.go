package slice

import (
	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/chunk"
)

// ClonedSection is an immutable copy of one world section: its palette
// compressed block data, light data, biome data and block entity data.
// ClonedSections are owned by a SectionCache and may be read concurrently by
// any number of Slices once published. A ClonedSection for a missing section
// acts as a section of only air.
type ClonedSection struct {
	pos world.SubChunkPos

	// sub is a deep copy of the live section, or nil if the section did not
	// exist when the clone was made.
	sub           *chunk.Section
	blockEntities map[cube.Pos]map[string]any

	// refs and invalidated are bookkeeping of the owning SectionCache and
	// are only touched on the world's transaction goroutine.
	refs        int
	invalidated bool
}

// cloneSection copies the section at the position passed out of the live
// world. It must be called during a world transaction.
func cloneSection(tx *world.Tx, pos world.SubChunkPos) *ClonedSection {
	c := &ClonedSection{pos: pos, blockEntities: tx.SubChunkBlockEntities(pos)}
	if sub, ok := tx.SubChunk(pos); ok {
		c.sub = sub.Clone()
	}
	return c
}

// Pos returns the sub-chunk position the section was cloned from.
func (c *ClonedSection) Pos() world.SubChunkPos {
	return c.pos
}

// Empty checks if the cloned section holds no non-air blocks.
func (c *ClonedSection) Empty() bool {
	return c.sub.Empty()
}

// Block returns the block runtime ID at the section-local coordinates
// passed, each in the range 0-15.
func (c *ClonedSection) Block(x, y, z byte) uint32 {
	if c.sub == nil {
		return world.AirRuntimeID()
	}
	return c.sub.Block(x, y, z)
}

// Light returns the light value of the layer passed at the section-local
// coordinates passed. A clone of a missing section is fully lit by the sky.
func (c *ClonedSection) Light(layer chunk.LightLayer, x, y, z byte) uint8 {
	if c.sub == nil {
		if layer == chunk.SkyLight {
			return 15
		}
		return 0
	}
	return c.sub.Light(layer, x, y, z)
}

// Biome returns the biome ID at the section-local coordinates passed. The
// second return value is false if the clone holds no biome data, in which
// case callers fall back to the world's default biome.
func (c *ClonedSection) Biome(x, y, z byte) (uint32, bool) {
	if c.sub == nil {
		return 0, false
	}
	return c.sub.Biome(x, y, z), true
}

// BlockEntity returns the block entity data attached to the world block
// position passed when the clone was made.
func (c *ClonedSection) BlockEntity(pos cube.Pos) (map[string]any, bool) {
	data, ok := c.blockEntities[pos]
	return data, ok
}
