package slice

import (
	"testing"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/chunk"
)

func TestSectionCacheAcquireIdentity(t *testing.T) {
	w := testWorld(t)
	cache := NewSectionCache()
	pos := world.SubChunkPos{0, 4, 0}

	<-w.Exec(func(tx *world.Tx) {
		a := cache.Acquire(tx, pos)
		b := cache.Acquire(tx, pos)
		if a != b {
			t.Errorf("two acquires of %v produced distinct clones", pos)
		}
		if cache.Len() != 1 {
			t.Errorf("cache.Len() = %v, want 1", cache.Len())
		}
		cache.Release(a)
		cache.Release(b)

		cache.Invalidate(pos)
		if cache.Len() != 0 {
			t.Errorf("cache.Len() after Invalidate = %v, want 0", cache.Len())
		}
		if c := cache.Acquire(tx, pos); c == a {
			t.Errorf("invalidated clone handed out again")
		} else {
			cache.Release(c)
		}
		cache.InvalidateAll()
	})
}

func TestSectionCacheMissingSection(t *testing.T) {
	w := testWorld(t)
	cache := NewSectionCache()

	<-w.Exec(func(tx *world.Tx) {
		c := cache.Acquire(tx, world.SubChunkPos{100, 7, -100})
		if !c.Empty() {
			t.Errorf("clone of missing section not empty")
		}
		if rid := c.Block(5, 5, 5); rid != world.AirRuntimeID() {
			t.Errorf("block in missing section = %v, want air", rid)
		}
		if v := c.Light(chunk.SkyLight, 5, 5, 5); v != 15 {
			t.Errorf("sky light in missing section = %v, want 15", v)
		}
		if v := c.Light(chunk.BlockLight, 5, 5, 5); v != 0 {
			t.Errorf("block light in missing section = %v, want 0", v)
		}
		if _, ok := c.Biome(5, 5, 5); ok {
			t.Errorf("missing section reported biome data")
		}
		if _, ok := c.BlockEntity(cube.Pos{1605, 117, -1595}); ok {
			t.Errorf("missing section reported block entity data")
		}
		cache.Release(c)
		cache.InvalidateAll()
	})
}

func TestSectionCacheSnapshotIsolation(t *testing.T) {
	w := testWorld(t)
	cache := NewSectionCache()
	pos := world.SubChunkPos{0, 4, 0}

	<-w.Exec(func(tx *world.Tx) {
		tx.SetBlock(cube.Pos{1, 65, 1}, granite{})
		c := cache.Acquire(tx, pos)

		rid, _ := world.BlockRuntimeID(granite{})
		if c.Block(1, 1, 1) != rid {
			t.Errorf("clone does not hold written block")
		}
		// The clone is a deep copy: writing to the live section afterwards
		// must not show through it.
		tx.SetBlock(cube.Pos{1, 65, 1}, world.Air{})
		if c.Block(1, 1, 1) != rid {
			t.Errorf("clone changed by live section write")
		}
		cache.Release(c)
		cache.InvalidateAll()
	})
}

func TestSectionCacheUnbalancedRelease(t *testing.T) {
	w := testWorld(t)
	cache := NewSectionCache()

	<-w.Exec(func(tx *world.Tx) {
		c := cache.Acquire(tx, world.SubChunkPos{0, 4, 0})
		cache.Release(c)

		panicked := func() (panicked bool) {
			defer func() {
				panicked = recover() != nil
			}()
			cache.Release(c)
			return false
		}()
		if !panicked {
			t.Errorf("unbalanced Release did not panic")
		}
	})
}
