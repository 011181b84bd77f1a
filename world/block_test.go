package world

import "testing"

// pebble is a block registered for registry tests only.
type pebble struct{}

// EncodeBlock ...
func (pebble) EncodeBlock() (string, map[string]any) {
	return "worldslice:test_pebble", nil
}

func TestBlockRegistry(t *testing.T) {
	RegisterBlock(pebble{})

	rid, ok := BlockRuntimeID(pebble{})
	if !ok {
		t.Fatalf("runtime ID of registered block not found")
	}
	if rid == AirRuntimeID() {
		t.Fatalf("registered block must not share the air runtime ID")
	}
	b, ok := BlockByRuntimeID(rid)
	if !ok {
		t.Fatalf("block with runtime ID %v not found", rid)
	}
	if _, isPebble := b.(pebble); !isPebble {
		t.Fatalf("block with runtime ID %v = %T, want pebble", rid, b)
	}

	if air, ok := BlockByRuntimeID(AirRuntimeID()); !ok {
		t.Fatalf("air not registered")
	} else if _, isAir := air.(Air); !isAir {
		t.Fatalf("runtime ID 0 = %T, want Air", air)
	}
}

func TestStateHashOrderIndependent(t *testing.T) {
	a := stateHash("worldslice:x", map[string]any{"a": 1, "b": 2, "c": 3})
	b := stateHash("worldslice:x", map[string]any{"c": 3, "b": 2, "a": 1})
	if a != b {
		t.Fatalf("state hash depends on property order: %v != %v", a, b)
	}
	if a == stateHash("worldslice:x", map[string]any{"a": 1, "b": 2, "c": 4}) {
		t.Fatalf("state hash ignores property values")
	}
}
