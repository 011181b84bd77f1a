package world

import (
	"log/slog"
	"time"

	"github.com/dm-vev/worldslice/cube"
)

// Config may be used to create a new World. It holds a variety of fields
// that influence the World.
type Config struct {
	// Log is the logger that the World uses to log errors and debug
	// messages. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// Provider is the Provider that the World reads its data from and
	// writes its data to. If nil, Provider is set to NopProvider and no
	// data is persisted.
	Provider Provider
	// Range is the height range of the World in blocks. If zero, Range is
	// set to a range of 0-255.
	Range cube.Range
	// DefaultBiome is the Biome returned for any position that was never
	// assigned a biome, and the fallback for sections without biome data.
	// If nil, DefaultBiome is set to Void.
	DefaultBiome Biome
	// TickInterval is the interval at which the World ticks. If zero,
	// TickInterval is set to 50 milliseconds. Setting TickInterval to a
	// negative duration disables ticking entirely.
	TickInterval time.Duration
}

// New creates a World using the Config. The World may be used immediately.
// It must be closed using World.Close once it is no longer used.
func (conf Config) New() *World {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Provider == nil {
		conf.Provider = NopProvider{}
	}
	if conf.Range == (cube.Range{}) {
		conf.Range = cube.Range{0, 255}
	}
	if conf.DefaultBiome == nil {
		conf.DefaultBiome = Void{}
	}
	if conf.TickInterval == 0 {
		conf.TickInterval = time.Second / 20
	}
	w := &World{
		conf:         conf,
		ra:           conf.Range,
		set:          defaultSettings(),
		queue:        make(chan transaction, 128),
		queueClosing: make(chan struct{}),
		closing:      make(chan struct{}),
		chunks:       map[ChunkPos]*Column{},
	}
	w.conf.Provider.Settings(w.set)

	w.queueing.Add(1)
	go w.handleTransactions()
	if conf.TickInterval > 0 {
		w.running.Add(1)
		go ticker{interval: conf.TickInterval}.tickLoop(w)
	}
	return w
}
