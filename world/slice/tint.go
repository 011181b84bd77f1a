package slice

import (
	"image/color"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
	"github.com/go-gl/mathgl/mgl64"
)

// TintResolver resolves the tint of a single biome at a horizontal world
// position, for example the grass or foliage colour of the biome. Resolvers
// are defined by consumers of a Slice; the slice package only blends and
// memoizes their results.
type TintResolver interface {
	Tint(b world.Biome, x, z int) color.RGBA
}

// tintKernelRadius is the radius in blocks of the horizontal kernel that
// BlendedTint averages resolver results over. It does not exceed
// NeighborBlockRadius, so clamped kernel samples always stay inside the
// bounding volume of the Slice.
const tintKernelRadius = 2

// tintCache memoizes the blended tints of one TintResolver per block
// position. A tintCache lives for a single snapshot: it is discarded, not
// reset, when its Slice is loaded with new data.
type tintCache struct {
	resolver TintResolver
	colors   map[cube.Pos]color.RGBA
}

// newTintCache creates an empty tintCache for the resolver passed.
func newTintCache(resolver TintResolver) *tintCache {
	return &tintCache{resolver: resolver, colors: map[cube.Pos]color.RGBA{}}
}

// blended computes or returns the memoized blended tint at the world
// coordinates passed. The blend averages the resolver's tint over the biomes
// in a horizontal kernel around the position, clamped to the bounding volume
// of the Slice.
func (c *tintCache) blended(s *Slice, x, y, z int) color.RGBA {
	pos := cube.Pos{x, y, z}
	if col, ok := c.colors[pos]; ok {
		return col
	}

	min, max := s.volume.Min(), s.volume.Max()
	var sum mgl64.Vec3
	var count float64
	for dz := -tintKernelRadius; dz <= tintKernelRadius; dz++ {
		for dx := -tintKernelRadius; dx <= tintKernelRadius; dx++ {
			sx := clampInt(x+dx, min[0], max[0])
			sz := clampInt(z+dz, min[2], max[2])

			tint := c.resolver.Tint(s.Biome(sx, y, sz), sx, sz)
			sum = sum.Add(mgl64.Vec3{float64(tint.R), float64(tint.G), float64(tint.B)})
			count++
		}
	}
	sum = sum.Mul(1 / count)

	col := color.RGBA{R: uint8(sum[0]), G: uint8(sum[1]), B: uint8(sum[2]), A: 0xff}
	c.colors[pos] = col
	return col
}

// clampInt clamps v to the inclusive range [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
