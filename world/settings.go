package world

import (
	"sync"

	"github.com/google/uuid"
)

// Settings holds the settings of a World. The Settings struct is protected
// by its embedded mutex: fields may only be read or written while the mutex
// is held.
type Settings struct {
	sync.Mutex
	// Name is the display name of the World.
	Name string
	// ID is a unique identifier assigned to the World when it is first
	// created. It is persisted by the Provider of the World.
	ID uuid.UUID
	// CurrentTick is the current tick of the World. It is incremented every
	// time the World ticks.
	CurrentTick int64
}

// defaultSettings returns the Settings used by worlds that were not loaded
// from a Provider.
func defaultSettings() *Settings {
	return &Settings{Name: "World", ID: uuid.New()}
}
