package slice

import (
	"testing"

	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/chunk"
)

func TestBiomeCacheServesCachedValue(t *testing.T) {
	w := testWorld(t)
	s := New(w)

	warmSub := chunk.NewSection(world.AirRuntimeID())
	warmSub.SetBiome(5, 5, 5, 100)
	coldSub := chunk.NewSection(world.AirRuntimeID())
	coldSub.SetBiome(5, 5, 5, 101)
	coldSub.SetBiome(9, 5, 5, 101)

	c := &biomeCache{}
	if b := c.biome(s, &ClonedSection{sub: warmSub}, 5, 5, 5); b.EncodeBiome() != 100 {
		t.Fatalf("first read = %v, want test_warm", b)
	}
	// The second read of the same cell must be served from the cache: even
	// with a section holding different data, the first result is returned.
	if b := c.biome(s, &ClonedSection{sub: coldSub}, 5, 5, 5); b.EncodeBiome() != 100 {
		t.Fatalf("cell resolved again instead of served from cache: %v", b)
	}
	// Other cells are unaffected by the filled one.
	if b := c.biome(s, &ClonedSection{sub: coldSub}, 9, 5, 5); b.EncodeBiome() != 101 {
		t.Fatalf("read of a different cell = %v, want test_cold", b)
	}
	// reset clears the fill bits: the next read resolves anew.
	c.reset()
	if b := c.biome(s, &ClonedSection{sub: coldSub}, 5, 5, 5); b.EncodeBiome() != 101 {
		t.Fatalf("read after reset = %v, want test_cold", b)
	}
}
