package chunk

// LightLayer identifies one of the two light layers stored in a Section.
type LightLayer uint8

const (
	// BlockLight is the light layer for light emitted by blocks.
	BlockLight LightLayer = iota
	// SkyLight is the light layer for light coming from the sky.
	SkyLight
)

// Section is a 16x16x16 cube of blocks that forms part of a column. Block
// data is palette compressed, light data is stored in nibble arrays and biome
// data is stored at a quarter of the block resolution.
type Section struct {
	// air is the runtime ID of the air block used as the zero value of the
	// Section.
	air uint32
	// count holds the amount of non-air blocks in the Section. It is
	// maintained by SetBlock so that emptiness checks are constant time.
	count uint16

	storage *PalettedStorage

	// blockLight and skyLight hold one nibble of light per block.
	blockLight [2048]uint8
	skyLight   [2048]uint8

	// biomes holds one biome ID per 4x4x4 cell of the Section. The zero
	// value refers to the default biome of the world the Section is in.
	biomes [64]uint32
}

// NewSection creates a new Section filled with the air runtime ID passed.
func NewSection(air uint32) *Section {
	return &Section{air: air, storage: newPalettedStorage(air)}
}

// Empty checks if the Section consists of only air blocks.
func (sub *Section) Empty() bool {
	return sub == nil || sub.count == 0
}

// Block returns the runtime ID of the block at the x, y and z passed. The
// coordinates must be in the range 0-15.
func (sub *Section) Block(x, y, z byte) uint32 {
	return sub.storage.At(x, y, z)
}

// SetBlock sets the runtime ID of a block at the x, y and z passed. The
// coordinates must be in the range 0-15.
func (sub *Section) SetBlock(x, y, z byte, rid uint32) {
	before := sub.storage.At(x, y, z)
	if before == rid {
		return
	}
	if before == sub.air {
		sub.count++
	} else if rid == sub.air {
		sub.count--
	}
	sub.storage.Set(x, y, z, rid)
}

// Light returns the light value of the layer passed at the x, y and z passed.
func (sub *Section) Light(layer LightLayer, x, y, z byte) uint8 {
	if layer == SkyLight {
		return nibbleAt(&sub.skyLight, x, y, z)
	}
	return nibbleAt(&sub.blockLight, x, y, z)
}

// SetLight sets the light value of the layer passed at the x, y and z passed.
// The value must be in the range 0-15.
func (sub *Section) SetLight(layer LightLayer, x, y, z byte, v uint8) {
	if layer == SkyLight {
		setNibble(&sub.skyLight, x, y, z, v)
		return
	}
	setNibble(&sub.blockLight, x, y, z, v)
}

// Biome returns the biome ID at the x, y and z passed. The coordinates are
// block coordinates in the range 0-15: biome data is stored per 4x4x4 cell,
// so the coordinates are truncated to that resolution.
func (sub *Section) Biome(x, y, z byte) uint32 {
	return sub.biomes[biomeOffset(x, y, z)]
}

// SetBiome sets the biome ID at the x, y and z passed, overwriting the value
// of the whole 4x4x4 cell that the coordinates fall in.
func (sub *Section) SetBiome(x, y, z byte, id uint32) {
	sub.biomes[biomeOffset(x, y, z)] = id
}

// Clone returns a deep copy of the Section. The copy shares no mutable state
// with the original and is safe for concurrent reading once published.
func (sub *Section) Clone() *Section {
	c := &Section{air: sub.air, count: sub.count, storage: sub.storage.clone()}
	c.blockLight = sub.blockLight
	c.skyLight = sub.skyLight
	c.biomes = sub.biomes
	return c
}

// biomeOffset converts block coordinates in the range 0-15 to an offset into
// the biome array of a Section.
func biomeOffset(x, y, z byte) uint8 {
	return (y>>2)<<4 | (z>>2)<<2 | x>>2
}

// nibbleAt reads a 4-bit value from the nibble array passed.
func nibbleAt(a *[2048]uint8, x, y, z byte) uint8 {
	i := uint16(y)<<7 | uint16(z)<<3 | uint16(x)>>1
	if x&1 == 1 {
		return a[i] >> 4
	}
	return a[i] & 0xf
}

// setNibble writes a 4-bit value to the nibble array passed.
func setNibble(a *[2048]uint8, x, y, z byte, v uint8) {
	i := uint16(y)<<7 | uint16(z)<<3 | uint16(x)>>1
	if x&1 == 1 {
		a[i] = a[i]&0xf | v<<4
		return
	}
	a[i] = a[i]&0xf0 | v&0xf
}
