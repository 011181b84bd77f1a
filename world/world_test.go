package world_test

import (
	"testing"
	"time"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/internal/txguard"
	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/chunk"
)

// slate is a block used to write recognisable state in world tests.
type slate struct{}

// EncodeBlock ...
func (slate) EncodeBlock() (string, map[string]any) {
	return "worldslice:test_slate", nil
}

// tundra is a biome used to test biome reads and the default fallback.
type tundra struct{}

// EncodeBiome ...
func (tundra) EncodeBiome() int { return 110 }

// Temperature ...
func (tundra) Temperature() float64 { return 0.0 }

// Rainfall ...
func (tundra) Rainfall() float64 { return 0.4 }

// String ...
func (tundra) String() string { return "test_tundra" }

func init() {
	world.RegisterBlock(slate{})
	world.RegisterBiome(tundra{})
}

// testWorld creates a World without persistence or ticking, closed when the
// test finishes. Transaction functions run on the world's own goroutine, so
// assertions inside them use t.Errorf rather than t.Fatalf.
func testWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.Config{TickInterval: -1}.New()
	t.Cleanup(func() {
		if err := w.Close(); err != nil {
			t.Errorf("close world: %v", err)
		}
	})
	return w
}

func TestTxBlock(t *testing.T) {
	w := testWorld(t)
	pos := cube.Pos{100, 64, -40}

	<-w.Exec(func(tx *world.Tx) {
		if _, air := tx.Block(pos).(world.Air); !air {
			t.Errorf("block at %v in empty world = %T, want Air", pos, tx.Block(pos))
		}
		tx.SetBlock(pos, slate{})
		if _, ok := tx.Block(pos).(slate); !ok {
			t.Errorf("block at %v after SetBlock = %T, want slate", pos, tx.Block(pos))
		}
		// The rest of the section must still read as air.
		if _, air := tx.Block(pos.Add(cube.Pos{1, 0, 0})).(world.Air); !air {
			t.Errorf("neighbour of written block not air")
		}
		// Writes outside the height range are dropped silently.
		above := cube.Pos{0, w.Range().Max() + 1, 0}
		tx.SetBlock(above, slate{})
		if _, air := tx.Block(above).(world.Air); !air {
			t.Errorf("block above world height = %T, want Air", tx.Block(above))
		}
	})
}

func TestTxBiomeDefault(t *testing.T) {
	w := testWorld(t)

	<-w.Exec(func(tx *world.Tx) {
		pos := cube.Pos{5, 70, 5}
		if _, void := tx.Biome(pos).(world.Void); !void {
			t.Errorf("biome in empty world = %v, want Void", tx.Biome(pos))
		}
		tx.SetBiome(pos, tundra{})
		// Biomes are stored per 4x4x4 cell: every position in the cell that
		// pos falls in now reads as tundra.
		if b := tx.Biome(cube.Pos{7, 68, 4}); b.EncodeBiome() != 110 {
			t.Errorf("biome in written cell = %v, want test_tundra", b)
		}
		if _, void := tx.Biome(cube.Pos{8, 70, 5}).(world.Void); !void {
			t.Errorf("biome in adjacent cell overwritten")
		}
	})
}

func TestTxLight(t *testing.T) {
	w := testWorld(t)

	<-w.Exec(func(tx *world.Tx) {
		pos := cube.Pos{-3, 40, 17}
		if v := tx.Light(chunk.SkyLight, pos); v != 0 {
			t.Errorf("sky light in empty world = %v, want 0", v)
		}
		tx.SetLight(chunk.SkyLight, pos, 15)
		tx.SetLight(chunk.BlockLight, pos, 7)
		if v := tx.Light(chunk.SkyLight, pos); v != 15 {
			t.Errorf("sky light = %v, want 15", v)
		}
		if v := tx.Light(chunk.BlockLight, pos); v != 7 {
			t.Errorf("block light = %v, want 7", v)
		}
	})
}

func TestTxBlockEntity(t *testing.T) {
	w := testWorld(t)

	<-w.Exec(func(tx *world.Tx) {
		pos := cube.Pos{24, 80, 24}
		if _, ok := tx.BlockEntity(pos); ok {
			t.Errorf("block entity present in empty world")
		}
		tx.SetBlockEntity(pos, map[string]any{"id": "Chest"})
		data, ok := tx.BlockEntity(pos)
		if !ok || data["id"] != "Chest" {
			t.Errorf("block entity after SetBlockEntity = %v, %v", data, ok)
			return
		}
		ents := tx.SubChunkBlockEntities(world.SubChunkPosFromBlockPos(pos))
		if len(ents) != 1 {
			t.Errorf("sub-chunk block entities = %v, want 1 entry", ents)
			return
		}
		// The map returned is a copy: mutating it must not affect the world.
		ents[pos]["id"] = "Furnace"
		if data, _ := tx.BlockEntity(pos); data["id"] != "Chest" {
			t.Errorf("block entity data mutated through SubChunkBlockEntities copy")
		}
		tx.RemoveBlockEntity(pos)
		if _, ok := tx.BlockEntity(pos); ok {
			t.Errorf("block entity still present after RemoveBlockEntity")
		}
	})
}

func TestTxSubChunk(t *testing.T) {
	w := testWorld(t)

	<-w.Exec(func(tx *world.Tx) {
		if _, ok := tx.SubChunk(world.SubChunkPos{0, 4, 0}); ok {
			t.Errorf("sub-chunk present before any write")
		}
		tx.SetBlock(cube.Pos{3, 65, 3}, slate{})
		sub, ok := tx.SubChunk(world.SubChunkPos{0, 4, 0})
		if !ok {
			t.Errorf("sub-chunk absent after write")
			return
		}
		rid, _ := world.BlockRuntimeID(slate{})
		if sub.Block(3, 1, 3) != rid {
			t.Errorf("sub-chunk does not hold written block")
		}
	})
}

func TestCloseWithActiveTicker(t *testing.T) {
	// Close must return even when the ticker is mid-tick: a tick queued
	// right as the world closes still has to run before the transaction
	// loop stops.
	for i := 0; i < 100; i++ {
		w := world.Config{TickInterval: time.Millisecond}.New()

		done := make(chan struct{})
		go func() {
			_ = w.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Fatalf("Close did not return on iteration %v", i)
		}
	}
}

func TestExecAfterClose(t *testing.T) {
	w := world.Config{TickInterval: -1}.New()
	if err := w.Close(); err != nil {
		t.Fatalf("close world: %v", err)
	}

	ran := false
	<-w.Exec(func(*world.Tx) {
		ran = true
	})
	if ran {
		t.Fatalf("transaction ran on a closed world")
	}
}

func TestTxUseAfterFinish(t *testing.T) {
	w := testWorld(t)

	var leaked *world.Tx
	<-w.Exec(func(tx *world.Tx) {
		leaked = tx
	})
	if ok := txguard.Recover(leaked, func() {
		leaked.Block(cube.Pos{0, 0, 0})
	}); ok {
		t.Fatalf("use of finished transaction did not panic")
	}
	if ok := txguard.Recover(leaked, func() {
		_ = leaked.Range()
	}); ok {
		t.Fatalf("use of finished transaction did not panic")
	}
}
