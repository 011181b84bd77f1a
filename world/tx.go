package world

import (
	"maps"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world/chunk"
)

// closedPanicMessage is the message of the panic raised when a Tx is used
// after the transaction function it was passed to has returned.
const closedPanicMessage = "world.Tx: use of transaction after transaction finishes is not permitted"

// Tx represents a transaction on a World. All reading and writing of world
// data happens through a Tx. A Tx is only valid for the duration of the
// transaction function it is passed to: using it afterwards results in a
// panic.
type Tx struct {
	w      *World
	closed bool
}

// World returns the World of the Tx.
func (tx *Tx) World() *World {
	tx.mustNotBeClosed()
	return tx.w
}

// Range returns the height range of the World of the Tx.
func (tx *Tx) Range() cube.Range {
	tx.mustNotBeClosed()
	return tx.w.ra
}

// Block reads the block at the position passed. It returns Air for any
// position outside the world's height range or in a section that was never
// written.
func (tx *Tx) Block(pos cube.Pos) Block {
	tx.mustNotBeClosed()
	sub, ok := tx.section(pos)
	if !ok {
		return Air{}
	}
	b, _ := BlockByRuntimeID(sub.Block(uint8(pos[0]&15), uint8(pos[1]&15), uint8(pos[2]&15)))
	return b
}

// SetBlock writes a block at the position passed. Positions outside the
// world's height range are ignored. SetBlock panics if the block passed was
// not registered using RegisterBlock.
func (tx *Tx) SetBlock(pos cube.Pos, b Block) {
	tx.mustNotBeClosed()
	if pos.OutOfBounds(tx.w.ra) {
		return
	}
	rid, ok := BlockRuntimeID(b)
	if !ok {
		name, _ := b.EncodeBlock()
		panic("set block: block " + name + " not registered")
	}
	sub := tx.sectionOrCreate(pos)
	sub.SetBlock(uint8(pos[0]&15), uint8(pos[1]&15), uint8(pos[2]&15), rid)
}

// Biome reads the biome at the position passed. Biomes are stored at a
// quarter of the block resolution: the biome returned covers the whole 4x4x4
// cell the position falls in. The world's default biome is returned for any
// position never assigned another biome.
func (tx *Tx) Biome(pos cube.Pos) Biome {
	tx.mustNotBeClosed()
	sub, ok := tx.section(pos)
	if !ok {
		return tx.w.conf.DefaultBiome
	}
	b, ok := BiomeByID(int(sub.Biome(uint8(pos[0]&15), uint8(pos[1]&15), uint8(pos[2]&15))))
	if !ok {
		return tx.w.conf.DefaultBiome
	}
	return b
}

// SetBiome writes the biome at the position passed, overwriting the whole
// 4x4x4 cell the position falls in. Positions outside the world's height
// range are ignored.
func (tx *Tx) SetBiome(pos cube.Pos, b Biome) {
	tx.mustNotBeClosed()
	if pos.OutOfBounds(tx.w.ra) {
		return
	}
	sub := tx.sectionOrCreate(pos)
	sub.SetBiome(uint8(pos[0]&15), uint8(pos[1]&15), uint8(pos[2]&15), uint32(b.EncodeBiome()))
}

// Light reads the light value of the layer passed at the position passed.
func (tx *Tx) Light(layer chunk.LightLayer, pos cube.Pos) uint8 {
	tx.mustNotBeClosed()
	sub, ok := tx.section(pos)
	if !ok {
		return 0
	}
	return sub.Light(layer, uint8(pos[0]&15), uint8(pos[1]&15), uint8(pos[2]&15))
}

// SetLight writes the light value of the layer passed at the position
// passed. The value must be in the range 0-15.
func (tx *Tx) SetLight(layer chunk.LightLayer, pos cube.Pos, v uint8) {
	tx.mustNotBeClosed()
	if pos.OutOfBounds(tx.w.ra) {
		return
	}
	sub := tx.sectionOrCreate(pos)
	sub.SetLight(layer, uint8(pos[0]&15), uint8(pos[1]&15), uint8(pos[2]&15), v)
}

// BlockEntity reads the data attached to the block at the position passed.
func (tx *Tx) BlockEntity(pos cube.Pos) (map[string]any, bool) {
	tx.mustNotBeClosed()
	col, ok := tx.w.columnIfLoaded(chunkPosFromBlockPos(pos))
	if !ok {
		return nil, false
	}
	data, ok := col.blockEntities[pos]
	return data, ok
}

// SetBlockEntity attaches data to the block at the position passed,
// replacing any data previously attached to it.
func (tx *Tx) SetBlockEntity(pos cube.Pos, data map[string]any) {
	tx.mustNotBeClosed()
	if pos.OutOfBounds(tx.w.ra) {
		return
	}
	col := tx.w.column(chunkPosFromBlockPos(pos))
	col.blockEntities[pos] = data
	col.modified = true
}

// RemoveBlockEntity removes the data attached to the block at the position
// passed, if any.
func (tx *Tx) RemoveBlockEntity(pos cube.Pos) {
	tx.mustNotBeClosed()
	col, ok := tx.w.columnIfLoaded(chunkPosFromBlockPos(pos))
	if !ok {
		return
	}
	delete(col.blockEntities, pos)
	col.modified = true
}

// SubChunk returns the live section at the sub-chunk position passed, if its
// column is currently loaded and the section was ever written. The section
// returned is owned by the World: it may only be read during the transaction
// and must be cloned before it is shared with another goroutine.
func (tx *Tx) SubChunk(pos SubChunkPos) (*chunk.Section, bool) {
	tx.mustNotBeClosed()
	col, ok := tx.w.columnIfLoaded(chunkPosFromSubChunkPos(pos))
	if !ok {
		return nil, false
	}
	i := tx.w.sectionIndex(int(pos[1]) << 4)
	if i < 0 || i >= len(col.sections) || col.sections[i] == nil {
		return nil, false
	}
	return col.sections[i], true
}

// SubChunkBlockEntities returns a copy of all block entity data attached to
// positions within the sub-chunk at the position passed.
func (tx *Tx) SubChunkBlockEntities(pos SubChunkPos) map[cube.Pos]map[string]any {
	tx.mustNotBeClosed()
	col, ok := tx.w.columnIfLoaded(chunkPosFromSubChunkPos(pos))
	if !ok {
		return nil
	}
	var m map[cube.Pos]map[string]any
	for p, data := range col.blockEntities {
		if SubChunkPosFromBlockPos(p) != pos {
			continue
		}
		if m == nil {
			m = map[cube.Pos]map[string]any{}
		}
		m[p] = maps.Clone(data)
	}
	return m
}

// section returns the section holding the block position passed, without
// creating it if absent.
func (tx *Tx) section(pos cube.Pos) (*chunk.Section, bool) {
	if pos.OutOfBounds(tx.w.ra) {
		return nil, false
	}
	col := tx.w.column(chunkPosFromBlockPos(pos))
	i := tx.w.sectionIndex(pos[1])
	if col.sections[i] == nil {
		return nil, false
	}
	return col.sections[i], true
}

// sectionOrCreate returns the section holding the block position passed,
// creating it if it was never written. The column is marked modified.
func (tx *Tx) sectionOrCreate(pos cube.Pos) *chunk.Section {
	col := tx.w.column(chunkPosFromBlockPos(pos))
	i := tx.w.sectionIndex(pos[1])
	if col.sections[i] == nil {
		col.sections[i] = chunk.NewSection(AirRuntimeID())
	}
	col.modified = true
	return col.sections[i]
}

// mustNotBeClosed panics if the transaction of the Tx has finished.
func (tx *Tx) mustNotBeClosed() {
	if tx.closed {
		panic(closedPanicMessage)
	}
}
