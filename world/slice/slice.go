package slice

import (
	"fmt"
	"image/color"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/chunk"
)

// debug enables bounds assertions on slice queries. Queries outside the
// bounding volume of a Slice are caller bugs: with debug enabled they panic,
// without it their result is undefined.
const debug = false

// Slice is a dense, read-only copy of the world data within the bounding
// volume of a Context. After CopyData, all block queries are answered from a
// flat array with no palette indirection; light, block entity and biome
// queries delegate to the cloned sections.
//
// A Slice is reused across snapshots: its arrays are allocated once and only
// overwritten by CopyData. A Slice must be owned by a single goroutine at a
// time.
type Slice struct {
	w *world.World

	// blocks holds the runtime ID of every block inside the bounding
	// volume, indexed by blockIndex.
	blocks []uint32

	sections    [sectionTableSize]*ClonedSection
	biomeCaches [sectionTableSize]*biomeCache

	// tintCaches is rebuilt on every CopyData; tint sources may change
	// meaning between snapshots, so old entries are discarded rather than
	// reset.
	tintCaches map[TintResolver]*tintCache

	// prevResolver and prevTintCache memoize the most recently used
	// resolver to avoid a map lookup for bursts of queries with the same
	// resolver.
	prevResolver  TintResolver
	prevTintCache *tintCache

	// baseX, baseY and baseZ are the world coordinates of the lowest corner
	// of the section table.
	baseX, baseY, baseZ int

	origin world.SubChunkPos
	volume cube.Box
}

// New creates a Slice copying data of the World passed. The arrays of the
// Slice are allocated here and reused for every snapshot it is loaded with.
func New(w *world.World) *Slice {
	s := &Slice{w: w, blocks: make([]uint32, blockCount), tintCaches: map[TintResolver]*tintCache{}}
	for x := 0; x < sectionLength; x++ {
		for z := 0; z < sectionLength; z++ {
			for y := 0; y < sectionLength; y++ {
				s.biomeCaches[localSectionIndex(x, y, z)] = &biomeCache{}
			}
		}
	}
	return s
}

// CopyData loads the snapshot held by the Context passed into the Slice. All
// derived caches are reset and the cloned block data is decoded into the
// dense block array, clipped against the bounding volume of the Context.
// Once CopyData returns, the Slice is a consistent point-in-time snapshot:
// later mutation of the live world is never visible through it.
func (s *Slice) CopyData(ctx *Context) {
	s.origin = ctx.origin
	s.volume = ctx.volume
	s.sections = ctx.sections

	s.prevResolver = nil
	s.prevTintCache = nil
	s.tintCaches = map[TintResolver]*tintCache{}

	s.baseX = (int(s.origin[0]) - NeighborSectionRadius) << 4
	s.baseY = (int(s.origin[1]) - NeighborSectionRadius) << 4
	s.baseZ = (int(s.origin[2]) - NeighborSectionRadius) << 4

	for x := 0; x < sectionLength; x++ {
		for z := 0; z < sectionLength; z++ {
			for y := 0; y < sectionLength; y++ {
				i := localSectionIndex(x, y, z)
				s.biomeCaches[i].reset()
				s.unpackBlocks(s.sections[i], ctx.volume)
			}
		}
	}
}

// unpackBlocks decodes the blocks of one cloned section into the dense block
// array. Only the part of the section that falls inside the bounding volume
// is decoded.
func (s *Slice) unpackBlocks(c *ClonedSection, box cube.Box) {
	secMin := cube.Pos{int(c.pos[0]) << 4, int(c.pos[1]) << 4, int(c.pos[2]) << 4}
	secMax := secMin.Add(cube.Pos{sectionSize - 1, sectionSize - 1, sectionSize - 1})
	clip := box.Clip(cube.NewBox(secMin, secMax))
	min, max := clip.Min(), clip.Max()

	if c.Empty() {
		// The dense array is reused across snapshots, so regions covered by
		// empty sections must still be overwritten.
		air := world.AirRuntimeID()
		for y := min[1]; y <= max[1]; y++ {
			for z := min[2]; z <= max[2]; z++ {
				for x := min[0]; x <= max[0]; x++ {
					s.blocks[s.blockIndex(x, y, z)] = air
				}
			}
		}
		return
	}
	for y := min[1]; y <= max[1]; y++ {
		for z := min[2]; z <= max[2]; z++ {
			for x := min[0]; x <= max[0]; x++ {
				s.blocks[s.blockIndex(x, y, z)] = c.Block(byte(x&15), byte(y&15), byte(z&15))
			}
		}
	}
}

// RuntimeID returns the runtime ID of the block at the world coordinates
// passed. The coordinates must fall inside the bounding volume of the Slice.
func (s *Slice) RuntimeID(x, y, z int) uint32 {
	return s.blocks[s.blockIndex(x, y, z)]
}

// Block returns the block at the world coordinates passed. The coordinates
// must fall inside the bounding volume of the Slice.
func (s *Slice) Block(x, y, z int) world.Block {
	b, _ := world.BlockByRuntimeID(s.RuntimeID(x, y, z))
	return b
}

// Light returns the light value of the layer passed at the world coordinates
// passed, read from the cloned section holding the position. Light is not
// decoded into a dense array: it is queried far less often than blocks.
func (s *Slice) Light(layer chunk.LightLayer, x, y, z int) uint8 {
	c := s.section(x, y, z)
	return c.Light(layer, byte(x&15), byte(y&15), byte(z&15))
}

// BlockEntity returns the block entity data attached to the block at the
// position passed when its section was cloned.
func (s *Slice) BlockEntity(pos cube.Pos) (map[string]any, bool) {
	return s.section(pos[0], pos[1], pos[2]).BlockEntity(pos)
}

// Biome returns the biome at the world coordinates passed. Biome data is
// stored at a quarter of the block resolution; results are memoized per
// section in a cache that survives Slice reuse.
func (s *Slice) Biome(x, y, z int) world.Biome {
	c := s.section(x, y, z)
	i := localSectionIndex((x-s.baseX)>>4, (y-s.baseY)>>4, (z-s.baseZ)>>4)
	return s.biomeCaches[i].biome(s, c, x, y, z)
}

// BlendedTint returns the tint of the resolver passed at the world
// coordinates passed, blended over the biomes in a small kernel around the
// position. Results are memoized per resolver for the lifetime of the
// snapshot. Resolvers must be comparable values, typically pointers.
func (s *Slice) BlendedTint(x, y, z int, resolver TintResolver) color.RGBA {
	cache := s.prevTintCache
	if s.prevResolver != resolver {
		var ok bool
		if cache, ok = s.tintCaches[resolver]; !ok {
			cache = newTintCache(resolver)
			s.tintCaches[resolver] = cache
		}
		s.prevResolver, s.prevTintCache = resolver, cache
	}
	return cache.blended(s, x, y, z)
}

// Origin returns the position of the origin section of the loaded snapshot.
func (s *Slice) Origin() world.SubChunkPos {
	return s.origin
}

// Volume returns the bounding volume of the loaded snapshot.
func (s *Slice) Volume() cube.Box {
	return s.volume
}

// Range returns the height range of the world the Slice copies data of.
func (s *Slice) Range() cube.Range {
	return s.w.Range()
}

// section returns the cloned section holding the world coordinates passed.
func (s *Slice) section(x, y, z int) *ClonedSection {
	if debug && !s.volume.Contains(cube.Pos{x, y, z}) {
		panic(fmt.Sprintf("slice: query at (%v,%v,%v) outside volume %v-%v", x, y, z, s.volume.Min(), s.volume.Max()))
	}
	return s.sections[localSectionIndex((x-s.baseX)>>4, (y-s.baseY)>>4, (z-s.baseZ)>>4)]
}

// blockIndex returns the index of a block position in the dense block array
// of the Slice.
func (s *Slice) blockIndex(x, y, z int) int {
	if debug && !s.volume.Contains(cube.Pos{x, y, z}) {
		panic(fmt.Sprintf("slice: query at (%v,%v,%v) outside volume %v-%v", x, y, z, s.volume.Min(), s.volume.Max()))
	}
	min := s.volume.Min()
	x2, y2, z2 := x-min[0], y-min[1], z-min[2]
	return (y2*blockLength+z2)*blockLength + x2
}
