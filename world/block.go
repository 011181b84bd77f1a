package world

import (
	"fmt"
	"slices"

	"github.com/brentp/intintmap"
	"github.com/dm-vev/worldslice/world/chunk"
	"github.com/segmentio/fasthash/fnv1"
)

// Block is a block that may be placed in or found in a world. Blocks are
// identified by their state: a name and a set of properties.
type Block interface {
	// EncodeBlock converts the block to its encoded representation: the
	// name of the block and the properties that identify its state.
	EncodeBlock() (name string, properties map[string]any)
}

var (
	// blocks holds a list of all registered Blocks indexed by their runtime
	// ID.
	blocks []Block
	// states holds the encoded state of every registered block, indexed by
	// runtime ID, so that states may be persisted without re-encoding.
	states []blockState
	// hashes holds a mapping of state hashes to runtime IDs.
	hashes = intintmap.New(1024, 0.999)
)

// blockState is the encoded state of a registered block.
type blockState struct {
	name       string
	properties map[string]any
}

// RegisterBlock registers a Block and assigns the next runtime ID to it.
// RegisterBlock panics if a block with the same encoded state was already
// registered. Blocks must be registered before any world is opened and may
// not be registered concurrently.
func RegisterBlock(b Block) {
	name, properties := b.EncodeBlock()
	h := int64(stateHash(name, properties))
	if _, ok := hashes.Get(h); ok {
		panic(fmt.Sprintf("block %v %+v with same state hash already registered", name, properties))
	}
	rid := int64(len(blocks))
	blocks = append(blocks, b)
	states = append(states, blockState{name: name, properties: properties})
	hashes.Put(h, rid)
}

// BlockRuntimeID attempts to return the runtime ID of the Block passed. If no
// such block was registered, false is returned.
func BlockRuntimeID(b Block) (uint32, bool) {
	name, properties := b.EncodeBlock()
	return stateToRuntimeID(name, properties)
}

// BlockByRuntimeID attempts to return the Block registered with the runtime
// ID passed. If no block with this runtime ID was registered, false is
// returned.
func BlockByRuntimeID(rid uint32) (Block, bool) {
	if rid >= uint32(len(blocks)) {
		return nil, false
	}
	return blocks[rid], true
}

// AirRuntimeID returns the runtime ID of the air block. Air is registered
// before any other block, so its runtime ID is always 0.
func AirRuntimeID() uint32 {
	return 0
}

// stateToRuntimeID looks up the runtime ID of an encoded block state.
func stateToRuntimeID(name string, properties map[string]any) (uint32, bool) {
	rid, ok := hashes.Get(int64(stateHash(name, properties)))
	return uint32(rid), ok
}

// runtimeIDToState returns the encoded block state registered with a runtime
// ID.
func runtimeIDToState(rid uint32) (string, map[string]any, bool) {
	if rid >= uint32(len(states)) {
		return "", nil, false
	}
	s := states[rid]
	return s.name, s.properties, true
}

// stateHash produces a hash of an encoded block state. Properties are hashed
// in sorted key order so that the hash does not depend on map iteration
// order.
func stateHash(name string, properties map[string]any) uint64 {
	h := fnv1.HashString64(name)
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		h = fnv1.AddString64(h, k)
		h = fnv1.AddString64(h, fmt.Sprint(properties[k]))
	}
	return h
}

// Air is the block present in all empty space of a world. It holds no state.
type Air struct{}

// EncodeBlock ...
func (Air) EncodeBlock() (string, map[string]any) {
	return "worldslice:air", nil
}

func init() {
	RegisterBlock(Air{})
	chunk.StateToRuntimeID = stateToRuntimeID
	chunk.RuntimeIDToState = runtimeIDToState
}
