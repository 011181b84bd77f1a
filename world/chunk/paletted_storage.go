package chunk

// storageSize is the amount of values stored in a PalettedStorage: 16*16*16.
const storageSize = 4096

// PalettedStorage is a storage of 4096 blocks encoded in a variable amount of
// uint32 words. Each block is a palette index packed into a fixed amount of
// bits. The bits-per-index sizes are padded so that an index never spans two
// words, keeping lookups branchless.
type PalettedStorage struct {
	// bitsPerIndex is the amount of bits required to store one palette index.
	// A bitsPerIndex of 0 means the storage holds a single (uniform) value.
	bitsPerIndex uint16
	// indexMask masks off a single palette index after shifting.
	indexMask uint32
	// words holds the packed palette indices. It is nil if bitsPerIndex is 0.
	words   []uint32
	palette *Palette
}

// newPalettedStorage creates a PalettedStorage filled with the single value
// passed. No words are allocated until a second distinct value is set.
func newPalettedStorage(v uint32) *PalettedStorage {
	return &PalettedStorage{palette: newPalette(v)}
}

// Palette returns the Palette of the PalettedStorage.
func (storage *PalettedStorage) Palette() *Palette {
	return storage.palette
}

// Words returns the packed palette index words of the PalettedStorage. The
// slice is nil for a uniform storage and must not be modified by callers.
func (storage *PalettedStorage) Words() []uint32 {
	return storage.words
}

// BitsPerIndex returns the amount of bits used to pack one palette index.
func (storage *PalettedStorage) BitsPerIndex() uint16 {
	return storage.bitsPerIndex
}

// At returns the value at the x, y and z passed. The coordinates must be in
// the range 0-15.
func (storage *PalettedStorage) At(x, y, z byte) uint32 {
	return storage.palette.Value(storage.paletteIndex(offsetOf(x, y, z)))
}

// Set sets a value at the x, y and z passed. The coordinates must be in the
// range 0-15. The underlying storage grows if the value does not yet fit the
// palette.
func (storage *PalettedStorage) Set(x, y, z byte, v uint32) {
	index := storage.palette.Index(v)
	if index == -1 {
		if storage.palette.Len() == 1<<storage.bitsPerIndex {
			storage.resize(bitsNeeded(storage.palette.Len() + 1))
		}
		index = storage.palette.Add(v)
	}
	storage.setPaletteIndex(offsetOf(x, y, z), uint16(index))
}

// clone returns a deep copy of the PalettedStorage safe for concurrent
// reading.
func (storage *PalettedStorage) clone() *PalettedStorage {
	words := make([]uint32, len(storage.words))
	copy(words, storage.words)
	return &PalettedStorage{
		bitsPerIndex: storage.bitsPerIndex,
		indexMask:    storage.indexMask,
		words:        words,
		palette:      storage.palette.clone(),
	}
}

// paletteIndex reads the palette index at the offset passed.
func (storage *PalettedStorage) paletteIndex(offset uint16) uint16 {
	if storage.bitsPerIndex == 0 {
		return 0
	}
	indicesPerWord := 32 / storage.bitsPerIndex
	word := storage.words[offset/indicesPerWord]
	shift := (offset % indicesPerWord) * storage.bitsPerIndex
	return uint16((word >> shift) & storage.indexMask)
}

// setPaletteIndex writes the palette index at the offset passed.
func (storage *PalettedStorage) setPaletteIndex(offset, index uint16) {
	if storage.bitsPerIndex == 0 {
		// A uniform storage can only hold index 0. Callers resize before
		// adding a second palette entry, so index is always 0 here.
		return
	}
	indicesPerWord := 32 / storage.bitsPerIndex
	w := &storage.words[offset/indicesPerWord]
	shift := (offset % indicesPerWord) * storage.bitsPerIndex
	*w = *w&^(storage.indexMask<<shift) | uint32(index)<<shift
}

// resize grows the PalettedStorage to the bits-per-index size passed, copying
// all palette indices over to the new layout.
func (storage *PalettedStorage) resize(bits uint8) {
	newBits := uint16(bits)
	newMask := uint32(1)<<newBits - 1
	indicesPerWord := 32 / newBits
	words := make([]uint32, (storageSize+int(indicesPerWord)-1)/int(indicesPerWord))

	for offset := uint16(0); offset < storageSize; offset++ {
		index := uint32(storage.paletteIndex(offset))
		w := &words[offset/indicesPerWord]
		shift := (offset % indicesPerWord) * newBits
		*w |= index << shift
	}
	storage.bitsPerIndex, storage.indexMask, storage.words = newBits, newMask, words
}

// newPalettedStorageFromData creates a PalettedStorage from raw data as read
// from disk. The word slice length must match the bits-per-index passed.
func newPalettedStorageFromData(bits uint16, words []uint32, palette *Palette) *PalettedStorage {
	return &PalettedStorage{
		bitsPerIndex: bits,
		indexMask:    uint32(1)<<bits - 1,
		words:        words,
		palette:      palette,
	}
}

// offsetOf converts local section coordinates in the range 0-15 to an offset
// into a PalettedStorage.
func offsetOf(x, y, z byte) uint16 {
	return uint16(y)<<8 | uint16(z)<<4 | uint16(x)
}
