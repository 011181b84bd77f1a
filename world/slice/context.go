package slice

import (
	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
)

// Context holds everything a Slice needs to copy one snapshot: the origin
// section position, the bounding volume of the snapshot and the cloned
// sections overlapping that volume. A Context is built once per snapshot
// during a world transaction and is immutable afterwards.
type Context struct {
	origin   world.SubChunkPos
	sections [sectionTableSize]*ClonedSection
	volume   cube.Box
}

// Prepare builds a Context for the origin section position passed, acquiring
// all sections within the neighbour radius from the SectionCache. It must be
// called during a world transaction.
//
// If the origin section is missing or holds no non-air blocks, Prepare
// returns nil: there is nothing to build for it and no Slice should be
// populated, which avoids scheduling pointless build work.
func Prepare(tx *world.Tx, origin world.SubChunkPos, cache *SectionCache) *Context {
	sub, ok := tx.SubChunk(origin)
	if !ok || sub.Empty() {
		return nil
	}

	min := cube.Pos{int(origin[0]) << 4, int(origin[1]) << 4, int(origin[2]) << 4}
	max := min.Add(cube.Pos{sectionSize - 1, sectionSize - 1, sectionSize - 1})
	ctx := &Context{origin: origin, volume: cube.NewBox(min, max).Grow(NeighborBlockRadius)}

	for x := 0; x < sectionLength; x++ {
		for z := 0; z < sectionLength; z++ {
			for y := 0; y < sectionLength; y++ {
				pos := world.SubChunkPos{
					origin[0] + int32(x-NeighborSectionRadius),
					origin[1] + int32(y-NeighborSectionRadius),
					origin[2] + int32(z-NeighborSectionRadius),
				}
				ctx.sections[localSectionIndex(x, y, z)] = cache.Acquire(tx, pos)
			}
		}
	}
	return ctx
}

// Origin returns the position of the origin section of the Context.
func (ctx *Context) Origin() world.SubChunkPos {
	return ctx.origin
}

// Volume returns the bounding volume of the snapshot: the bounds of the
// origin section grown by NeighborBlockRadius on every axis.
func (ctx *Context) Volume() cube.Box {
	return ctx.volume
}
