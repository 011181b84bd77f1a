package world

import (
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/dm-vev/worldslice/world/chunk"
)

// Provider represents a value that may provide world data to a World value.
// It usually does the reading and writing of the world data so that the
// World may use it.
type Provider interface {
	// Settings loads the settings of the world saved by the Provider into
	// the Settings passed. Fields without saved values are left untouched.
	Settings(*Settings)
	// SaveSettings saves the settings of the world so that they may be
	// loaded again the next time the world is opened.
	SaveSettings(*Settings)
	// LoadColumn loads the data of the column at the position passed. If no
	// column is saved at this position, an error wrapping
	// leveldb.ErrNotFound is returned.
	LoadColumn(pos ChunkPos) (*chunk.Column, error)
	// StoreColumn saves the data of the column at the position passed.
	StoreColumn(pos ChunkPos, col *chunk.Column) error

	Close() error
}

// NopProvider implements a Provider that does not store any world data. It
// is the default Provider of a world Config.
type NopProvider struct{}

// Settings ...
func (NopProvider) Settings(*Settings) {}

// SaveSettings ...
func (NopProvider) SaveSettings(*Settings) {}

// LoadColumn ...
func (NopProvider) LoadColumn(ChunkPos) (*chunk.Column, error) {
	return nil, leveldb.ErrNotFound
}

// StoreColumn ...
func (NopProvider) StoreColumn(ChunkPos, *chunk.Column) error {
	return nil
}

// Close ...
func (NopProvider) Close() error {
	return nil
}
