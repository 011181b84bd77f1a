package world

import "fmt"

// Biome is a region type of a world. Biomes are stored at a quarter of the
// block resolution and drive visual blending such as grass and foliage
// tints.
type Biome interface {
	// EncodeBiome returns the numerical ID of the biome as it is stored in
	// sections and on disk.
	EncodeBiome() int
	// Temperature returns the temperature of the biome, in the range 0-1.
	Temperature() float64
	// Rainfall returns the rainfall of the biome, in the range 0-1.
	Rainfall() float64
	// String returns the name of the biome.
	String() string
}

// biomes holds a map of registered Biomes indexed by their IDs.
var biomes = map[int]Biome{}

// RegisterBiome registers a Biome so that it can be resolved from the IDs
// stored in sections. RegisterBiome panics if a biome with the same ID was
// already registered.
func RegisterBiome(b Biome) {
	id := b.EncodeBiome()
	if _, ok := biomes[id]; ok {
		panic(fmt.Sprintf("biome with ID %v already registered", id))
	}
	biomes[id] = b
}

// BiomeByID attempts to return the Biome registered with the ID passed. If
// no biome with this ID was registered, false is returned.
func BiomeByID(id int) (Biome, bool) {
	b, ok := biomes[id]
	return b, ok
}

// Void is the biome used for any region of a world that was never assigned
// another biome. It is also the fallback for sections without biome data.
type Void struct{}

// EncodeBiome ...
func (Void) EncodeBiome() int { return 0 }

// Temperature ...
func (Void) Temperature() float64 { return 0.5 }

// Rainfall ...
func (Void) Rainfall() float64 { return 0.5 }

// String ...
func (Void) String() string { return "void" }

func init() {
	RegisterBiome(Void{})
}
