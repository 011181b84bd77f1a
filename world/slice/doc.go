// Package slice implements bounded snapshots of world data for use off the
// world's transaction goroutine, such as by mesh build workers.
//
// A snapshot is produced in two steps. Prepare runs inside a world
// transaction: it clones the origin section and its neighbours through a
// SectionCache and collects them in a Context. CopyData may then run on any
// goroutine: it decodes the cloned sections of a Context into the dense
// arrays of a Slice, after which the Slice answers point queries without
// touching the live world.
//
// Slices are not safe for use by multiple goroutines at once, but the
// cloned data they contain is immutable and safe from modification by the
// world. Slices hold large arrays and are meant to be reused through a Pool.
package slice
