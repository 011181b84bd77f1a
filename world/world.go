package world

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world/chunk"
)

// World implements a voxel world. All mutation of a World happens on a
// single transaction queue: World.Exec queues a function that is handed a
// Tx, and all queued functions run one after another on the same goroutine.
// Reads that must be consistent with writes, such as cloning sections for a
// snapshot, must happen inside such a transaction too.
type World struct {
	conf Config
	ra   cube.Range

	set *Settings

	queue        chan transaction
	queueClosing chan struct{}
	queueing     sync.WaitGroup

	// closing stops the background loops of the World, such as its ticker.
	// It is closed before queueClosing so that loops blocked on a queued
	// transaction see it run before the transaction loop stops.
	closing chan struct{}
	running sync.WaitGroup
	o       sync.Once

	// chunks holds the columns currently loaded. The map is only accessed
	// from the transaction goroutine while the World is open.
	chunks map[ChunkPos]*Column
}

// Column is a stack of sections at a chunk position, together with the block
// entity data attached to positions in it.
type Column struct {
	sections      []*chunk.Section
	blockEntities map[cube.Pos]map[string]any
	modified      bool
}

// transaction is a function queued on a World together with the channel that
// is closed once it has run.
type transaction struct {
	c chan struct{}
	f func(tx *Tx)
}

// ExecFunc is a transaction function run on the transaction queue of a
// World.
type ExecFunc func(tx *Tx)

// Exec queues the ExecFunc passed to be run on the transaction goroutine of
// the World. The channel returned is closed once the function has run. If
// the World is closed before the function could run, the channel is closed
// without the function running.
func (w *World) Exec(f ExecFunc) <-chan struct{} {
	c := make(chan struct{})
	select {
	case w.queue <- transaction{c: c, f: f}:
	case <-w.queueClosing:
		close(c)
	}
	return c
}

// handleTransactions runs queued transactions one by one until the World is
// closed. The loop outlives the closing signal: transactions queued by
// background loops during shutdown, such as a final tick, are still served
// until queueClosing is closed.
func (w *World) handleTransactions() {
	for {
		select {
		case tx := <-w.queue:
			w.runTransaction(tx)
		case <-w.queueClosing:
			w.queueing.Done()
			return
		}
	}
}

// runTransaction runs a single transaction, invalidating the Tx afterwards
// so that leaked references fail loudly.
func (w *World) runTransaction(t transaction) {
	tx := &Tx{w: w}
	t.f(tx)
	tx.closed = true
	close(t.c)
}

// Name returns the display name of the world.
func (w *World) Name() string {
	w.set.Lock()
	defer w.set.Unlock()
	return w.set.Name
}

// Range returns the height range in blocks of the World (min and max).
func (w *World) Range() cube.Range {
	return w.ra
}

// DefaultBiome returns the Biome used for any position of the World that was
// never assigned another biome.
func (w *World) DefaultBiome() Biome {
	return w.conf.DefaultBiome
}

// CurrentTick returns the current tick counter of the world.
func (w *World) CurrentTick() int64 {
	w.set.Lock()
	defer w.set.Unlock()
	return w.set.CurrentTick
}

// Close stops the World from ticking, saves all loaded columns to the
// Provider and closes the Provider. Close blocks until all pending
// transactions have been handled.
func (w *World) Close() error {
	w.o.Do(w.close)
	return nil
}

// close stops the transaction and tick goroutines and persists the World.
func (w *World) close() {
	close(w.closing)
	w.running.Wait()

	close(w.queueClosing)
	w.queueing.Wait()

	// Transactions that raced the shutdown of the queue have their channels
	// closed without running, as documented on Exec.
drain:
	for {
		select {
		case t := <-w.queue:
			close(t.c)
		default:
			break drain
		}
	}

	w.conf.Log.Debug("Saving chunks in memory to disk...")
	for pos, col := range w.chunks {
		w.saveColumn(pos, col)
	}
	w.conf.Provider.SaveSettings(w.set)

	w.conf.Log.Debug("Closing provider...")
	if err := w.conf.Provider.Close(); err != nil {
		w.conf.Log.Error("close world provider: " + err.Error())
	}
}

// saveColumn saves a single column to the Provider if it was modified.
func (w *World) saveColumn(pos ChunkPos, col *Column) {
	if !col.modified {
		return
	}
	if err := w.conf.Provider.StoreColumn(pos, w.columnTo(col)); err != nil {
		w.conf.Log.Error("save chunk: "+err.Error(), "X", pos[0], "Z", pos[1])
		return
	}
	col.modified = false
}

// column returns the column at the position passed. If the column is not yet
// loaded, it is loaded from the Provider, or created empty if the Provider
// does not have it.
func (w *World) column(pos ChunkPos) *Column {
	if col, ok := w.chunks[pos]; ok {
		return col
	}
	col, err := w.loadColumn(pos)
	if err != nil {
		w.conf.Log.Error("load chunk: "+err.Error(), "X", pos[0], "Z", pos[1])
	}
	w.chunks[pos] = col
	return col
}

// columnIfLoaded returns the column at the position passed if it is
// currently loaded. Unlike column, it never hits the Provider.
func (w *World) columnIfLoaded(pos ChunkPos) (*Column, bool) {
	col, ok := w.chunks[pos]
	return col, ok
}

// loadColumn loads a column from the Provider. A column not present with the
// Provider results in a new empty column without error. Any other error
// results in an empty column and the error.
func (w *World) loadColumn(pos ChunkPos) (*Column, error) {
	c, err := w.conf.Provider.LoadColumn(pos)
	switch {
	case err == nil:
		return w.columnFrom(c), nil
	case errors.Is(err, leveldb.ErrNotFound):
		return w.newColumn(), nil
	default:
		return w.newColumn(), fmt.Errorf("load column %v: %w", pos, err)
	}
}

// newColumn returns a Column with no sections allocated. Sections are
// created on first write.
func (w *World) newColumn() *Column {
	return &Column{
		sections:      make([]*chunk.Section, (w.ra.Height()+1)>>4),
		blockEntities: map[cube.Pos]map[string]any{},
	}
}

// columnFrom converts a chunk.Column loaded from a Provider to a Column.
func (w *World) columnFrom(c *chunk.Column) *Column {
	col := w.newColumn()
	copy(col.sections, c.Sections)
	for _, be := range c.BlockEntities {
		col.blockEntities[be.Pos] = be.Data
	}
	return col
}

// columnTo converts a Column to a chunk.Column so that it can be passed to a
// Provider.
func (w *World) columnTo(col *Column) *chunk.Column {
	c := &chunk.Column{Sections: col.sections}
	for pos, data := range col.blockEntities {
		c.BlockEntities = append(c.BlockEntities, chunk.BlockEntity{Pos: pos, Data: maps.Clone(data)})
	}
	return c
}

// sectionIndex returns the index into the section slice of a Column for the
// block Y coordinate passed.
func (w *World) sectionIndex(y int) int {
	return (y - w.ra.Min()) >> 4
}
