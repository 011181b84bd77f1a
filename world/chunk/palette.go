package chunk

// paletteSizes holds the bits-per-index sizes that a PalettedStorage may use.
// Values are padded so that indices never span two uint32 words.
var paletteSizes = [...]uint8{0, 1, 2, 4, 8, 16}

// Palette is a palette of block runtime IDs that every PalettedStorage has.
// Storages hold 'palette indices' rather than runtime IDs themselves. These
// palette indices are converted to a runtime ID using the Palette.
type Palette struct {
	values []uint32
}

// newPalette creates a Palette with the initial runtime ID passed.
func newPalette(first uint32) *Palette {
	return &Palette{values: []uint32{first}}
}

// Len returns the amount of unique values in the Palette.
func (palette *Palette) Len() int {
	return len(palette.values)
}

// Add adds a runtime ID to the Palette and returns the palette index it was
// placed at.
func (palette *Palette) Add(rid uint32) int {
	palette.values = append(palette.values, rid)
	return len(palette.values) - 1
}

// Index loops through the values of the Palette and looks for the index of
// the runtime ID passed. -1 is returned if the runtime ID is not present.
func (palette *Palette) Index(rid uint32) int {
	for i, v := range palette.values {
		if v == rid {
			return i
		}
	}
	return -1
}

// Value returns the runtime ID at the palette index passed.
func (palette *Palette) Value(i uint16) uint32 {
	return palette.values[i]
}

// Values returns the underlying values of the Palette. The slice must not be
// modified by callers.
func (palette *Palette) Values() []uint32 {
	return palette.values
}

// clone returns a deep copy of the Palette.
func (palette *Palette) clone() *Palette {
	values := make([]uint32, len(palette.values))
	copy(values, palette.values)
	return &Palette{values: values}
}

// bitsNeeded returns the smallest padded bits-per-index size able to hold n
// distinct palette indices.
func bitsNeeded(n int) uint8 {
	for _, size := range paletteSizes {
		if n <= 1<<size {
			return size
		}
	}
	// 16 bits cover every possible palette size for a 16x16x16 section.
	return 16
}
