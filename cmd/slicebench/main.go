// Command slicebench seeds a small world, then repeatedly snapshots and
// queries it the way a mesh builder would: snapshot contexts are prepared on
// the world's transaction goroutine and consumed by a pool of workers.
package main

import (
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/internal/txguard"
	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/biome"
	"github.com/dm-vev/worldslice/world/chunk"
	"github.com/dm-vev/worldslice/world/mcdb"
	"github.com/dm-vev/worldslice/world/slice"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := slog.Default()
	conf, err := readConfig()
	if err != nil {
		log.Error("read config: " + err.Error())
		os.Exit(1)
	}

	var provider world.Provider = world.NopProvider{}
	if conf.World.SaveData {
		db, err := mcdb.Config{Log: log}.Open(conf.World.Folder)
		if err != nil {
			log.Error("open world: " + err.Error())
			os.Exit(1)
		}
		provider = db
	}

	w := world.Config{Log: log, Provider: provider, DefaultBiome: biome.Plains{}}.New()
	defer func() {
		if err := w.Close(); err != nil {
			log.Error("close world: " + err.Error())
		}
	}()

	if !txguard.Exec(w, seed(conf.Bench.Area)) {
		log.Error("world closed before it could be seeded")
		return
	}

	pool := slice.NewPool(w)
	cache := slice.NewSectionCache()
	resolver := &grassResolver{}

	for frame := 0; frame < conf.Bench.Frames; frame++ {
		start := time.Now()

		var ctxs []*slice.Context
		<-w.Exec(func(tx *world.Tx) {
			for sx := int32(-conf.Bench.Area); sx <= int32(conf.Bench.Area); sx++ {
				for sz := int32(-conf.Bench.Area); sz <= int32(conf.Bench.Area); sz++ {
					if ctx := slice.Prepare(tx, world.SubChunkPos{sx, 0, sz}, cache); ctx != nil {
						ctxs = append(ctxs, ctx)
					}
				}
			}
		})

		var g errgroup.Group
		g.SetLimit(conf.Bench.Workers)
		for _, ctx := range ctxs {
			g.Go(func() error {
				s := pool.Get()
				s.CopyData(ctx)
				sample(s, resolver)
				pool.Put(s)
				return nil
			})
		}
		_ = g.Wait()

		if !txguard.Exec(w, func(*world.Tx) {
			for _, ctx := range ctxs {
				cache.ReleaseContext(ctx)
			}
			cache.InvalidateAll()
		}) {
			log.Error("world closed before slices could be released")
			return
		}

		log.Info("Built slices.", "frame", frame, "slices", len(ctxs), "elapsed", time.Since(start))
	}

	if tick, ok := txguard.ExecValue(w, func(tx *world.Tx) int64 {
		return tx.World().CurrentTick()
	}); ok {
		log.Info("Bench complete.", "ticks", tick)
	}
}

// sample runs the kind of point queries a mesh builder issues against a
// freshly copied slice.
func sample(s *slice.Slice, resolver slice.TintResolver) {
	min, max := s.Volume().Min(), s.Volume().Max()
	for y := min[1]; y <= max[1]; y++ {
		for z := min[2]; z <= max[2]; z++ {
			for x := min[0]; x <= max[0]; x++ {
				if s.RuntimeID(x, y, z) == world.AirRuntimeID() {
					continue
				}
				_ = s.Light(chunk.SkyLight, x, y, z)
				_ = s.Biome(x, y, z)
				_ = s.BlendedTint(x, y, z, resolver)
			}
		}
	}
}

// seed returns a transaction function that fills a flat stone platform of
// (2*area+1)² sections around the origin, with varying biomes and a few
// block entities.
func seed(area int) world.ExecFunc {
	return func(tx *world.Tx) {
		r := area*16 + 15
		for x := -area * 16; x <= r; x++ {
			for z := -area * 16; z <= r; z++ {
				for y := 0; y < 4; y++ {
					tx.SetBlock(cube.Pos{x, y, z}, stone{})
				}
				tx.SetLight(chunk.SkyLight, cube.Pos{x, 4, z}, 15)
				if (x>>4+z>>4)%2 == 0 {
					tx.SetBiome(cube.Pos{x, 0, z}, biome.Forest{})
				} else {
					tx.SetBiome(cube.Pos{x, 0, z}, biome.Ocean{})
				}
			}
		}
		tx.SetBlockEntity(cube.Pos{0, 3, 0}, map[string]any{"kind": "marker"})
	}
}

// stone is the block the platform is built of.
type stone struct{}

func init() {
	world.RegisterBlock(stone{})
}

// EncodeBlock ...
func (stone) EncodeBlock() (string, map[string]any) {
	return "worldslice:stone", nil
}

// grassResolver tints grass-like surfaces by biome temperature and rainfall.
type grassResolver struct{}

// Tint ...
func (*grassResolver) Tint(b world.Biome, x, z int) color.RGBA {
	warm := mgl64.Vec3{191, 183, 85}
	cool := mgl64.Vec3{71, 205, 51}
	v := warm.Mul(b.Temperature()).Add(cool.Mul(1 - b.Temperature())).Mul(0.5 + b.Rainfall()/2)
	return color.RGBA{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2]), A: 0xff}
}

// config is the TOML configuration of slicebench.
type config struct {
	World struct {
		// Folder is the folder world data is saved to.
		Folder string
		// SaveData controls whether the world is persisted with the
		// LevelDB provider between runs.
		SaveData bool
	}
	Bench struct {
		// Workers is the number of goroutines copying and querying slices.
		Workers int
		// Frames is the number of snapshot/query cycles to run.
		Frames int
		// Area is the radius, in sections, of the seeded platform.
		Area int
	}
}

// defaultConfig returns the configuration used when no config.toml exists.
func defaultConfig() config {
	c := config{}
	c.World.Folder = "world"
	c.Bench.Workers = 4
	c.Bench.Frames = 10
	c.Bench.Area = 2
	return c
}

// readConfig reads config.toml, creating it with default values if it does
// not yet exist.
func readConfig() (config, error) {
	c := defaultConfig()
	if _, err := os.Stat("config.toml"); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, err
		}
		if err := os.WriteFile("config.toml", data, 0644); err != nil {
			return c, err
		}
		return c, nil
	}
	data, err := os.ReadFile("config.toml")
	if err != nil {
		return c, err
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}
