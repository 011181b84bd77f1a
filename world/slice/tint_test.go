package slice

import (
	"image/color"
	"testing"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
)

// countingResolver returns a constant tint and counts how often it is asked,
// so that tests can observe memoization.
type countingResolver struct {
	calls int
	col   color.RGBA
}

// Tint ...
func (r *countingResolver) Tint(world.Biome, int, int) color.RGBA {
	r.calls++
	return r.col
}

// snapshotSlice fills the origin section of a fresh world, takes a snapshot
// of it and returns a Slice loaded with it.
func snapshotSlice(t *testing.T, w *world.World) *Slice {
	t.Helper()
	origin := world.SubChunkPos{2, 4, 2}
	<-w.Exec(func(tx *world.Tx) {
		fillSection(tx, origin)
	})
	s := New(w)
	s.CopyData(prepare(t, w, origin, NewSectionCache()))
	return s
}

func TestBlendedTintMemoized(t *testing.T) {
	w := testWorld(t)
	s := snapshotSlice(t, w)

	// A full kernel is kernelWidth^2 samples.
	const kernelWidth = tintKernelRadius*2 + 1

	r1 := &countingResolver{col: color.RGBA{R: 30, G: 120, B: 60, A: 0xff}}
	if got := s.BlendedTint(40, 70, 40, r1); got != r1.col {
		t.Fatalf("blend of constant tint = %v, want %v", got, r1.col)
	}
	if r1.calls != kernelWidth*kernelWidth {
		t.Fatalf("resolver asked %v times, want %v", r1.calls, kernelWidth*kernelWidth)
	}

	// Repeated queries at the same position are answered from the memo.
	s.BlendedTint(40, 70, 40, r1)
	if r1.calls != kernelWidth*kernelWidth {
		t.Fatalf("memoized query asked the resolver again (%v calls)", r1.calls)
	}

	// A second resolver gets its own cache; the first is unaffected, even
	// after alternating between the two.
	r2 := &countingResolver{col: color.RGBA{R: 200, A: 0xff}}
	s.BlendedTint(40, 70, 40, r2)
	s.BlendedTint(40, 70, 40, r1)
	s.BlendedTint(40, 70, 40, r2)
	if r1.calls != kernelWidth*kernelWidth || r2.calls != kernelWidth*kernelWidth {
		t.Fatalf("alternating resolvers broke memoization: %v/%v calls", r1.calls, r2.calls)
	}

	// The memo is keyed by the full position: a different Y recomputes.
	s.BlendedTint(40, 71, 40, r1)
	if r1.calls != 2*kernelWidth*kernelWidth {
		t.Fatalf("query at new Y asked the resolver %v times in total, want %v", r1.calls, 2*kernelWidth*kernelWidth)
	}
}

func TestBlendedTintDiscardedOnCopy(t *testing.T) {
	w := testWorld(t)
	origin := world.SubChunkPos{2, 4, 2}
	cache := NewSectionCache()

	<-w.Exec(func(tx *world.Tx) {
		fillSection(tx, origin)
	})
	ctx := prepare(t, w, origin, cache)
	s := New(w)
	s.CopyData(ctx)

	r := &countingResolver{col: color.RGBA{G: 90, A: 0xff}}
	s.BlendedTint(40, 70, 40, r)
	calls := r.calls

	// Loading a snapshot discards tint caches entirely: the same query is
	// recomputed afterwards.
	s.CopyData(ctx)
	s.BlendedTint(40, 70, 40, r)
	if r.calls != 2*calls {
		t.Fatalf("resolver asked %v times after reload, want %v", r.calls, 2*calls)
	}
}

// boundaryResolver tints the warm test biome red and everything else blue.
type boundaryResolver struct{}

// Tint ...
func (boundaryResolver) Tint(b world.Biome, _, _ int) color.RGBA {
	if b.EncodeBiome() == 100 {
		return color.RGBA{R: 200, A: 0xff}
	}
	return color.RGBA{B: 200, A: 0xff}
}

func TestBlendedTintAveragesKernel(t *testing.T) {
	w := testWorld(t)
	origin := world.SubChunkPos{2, 4, 2}

	<-w.Exec(func(tx *world.Tx) {
		fillSection(tx, origin)
		tx.SetBiome(cube.Pos{32, 64, 32}, warm{})
	})
	s := New(w)
	s.CopyData(prepare(t, w, origin, NewSectionCache()))

	// The kernel around (34, 34) covers 32-36 on both axes: 16 of the 25
	// samples fall in the warm 4x4 cell, 9 outside it.
	got := s.BlendedTint(34, 65, 34, boundaryResolver{})
	want := color.RGBA{R: 16 * 200 / 25, B: 9 * 200 / 25, A: 0xff}
	if got != want {
		t.Fatalf("blend across biome boundary = %v, want %v", got, want)
	}
}
