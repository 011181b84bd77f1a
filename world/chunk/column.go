package chunk

import "github.com/dm-vev/worldslice/cube"

// Column represents the data of a vertical stack of Sections as it is moved
// between a world and its provider.
type Column struct {
	// Sections holds the Sections of the Column ordered from the bottom of
	// the world range upwards. Entries may be nil for sections that were
	// never written.
	Sections []*Section
	// BlockEntities holds the extra data attached to individual block
	// positions in the Column.
	BlockEntities []BlockEntity
}

// BlockEntity is a block position with a map of arbitrary data attached to
// it, such as the contents of a container.
type BlockEntity struct {
	Pos  cube.Pos
	Data map[string]any
}

// StateToRuntimeID converts a block state to a runtime ID. It is set by the
// world package before any chunk data is encoded or decoded.
var StateToRuntimeID func(name string, properties map[string]any) (rid uint32, found bool)

// RuntimeIDToState converts a runtime ID to a block state. It is set by the
// world package before any chunk data is encoded or decoded.
var RuntimeIDToState func(rid uint32) (name string, properties map[string]any, found bool)
