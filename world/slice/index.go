package slice

const (
	// sectionSize is the number of blocks on each axis of a section.
	sectionSize = 16

	// NeighborBlockRadius is the number of blocks outward from the origin
	// section that a Slice captures.
	NeighborBlockRadius = 2

	// blockLength is the number of blocks on each axis of a Slice.
	blockLength = sectionSize + NeighborBlockRadius*2
	// blockCount is the number of blocks contained by a Slice.
	blockCount = blockLength * blockLength * blockLength

	// NeighborSectionRadius is the number of sections outward from the
	// origin section that a Slice captures: the smallest section radius
	// covering NeighborBlockRadius.
	NeighborSectionRadius = (NeighborBlockRadius + sectionSize - 1) / sectionSize

	// sectionLength is the number of sections on each axis of a Slice.
	sectionLength = 1 + NeighborSectionRadius*2

	// tableBits is the number of bits needed for each axis component in the
	// section lookup table. The table length per axis is the smallest power
	// of two that fits sectionLength, so that multiplications in hot paths
	// reduce to shifts.
	tableBits   = 2
	tableLength = 1 << tableBits

	// sectionTableSize is the array size of the section lookup table.
	sectionTableSize = tableLength * tableLength * tableLength
)

// localBlockIndex packs block coordinates relative to a section, each in the
// range 0-15, into an offset in the range [0, 4096). Callers guarantee the
// coordinates are in range: no bounds are checked.
func localBlockIndex(x, y, z int) int {
	return y<<8 | z<<4 | x
}

// localSectionIndex packs section coordinates relative to a Slice, each in
// the range [0, sectionLength), into an offset in the section lookup table.
// Callers guarantee the coordinates are in range: no bounds are checked.
func localSectionIndex(x, y, z int) int {
	return y<<(tableBits*2) | z<<tableBits | x
}
