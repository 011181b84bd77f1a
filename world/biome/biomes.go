// Package biome registers the standard biomes of the module with the world
// package.
package biome

import "github.com/dm-vev/worldslice/world"

// Plains is a flat, temperate biome.
type Plains struct{}

// EncodeBiome ...
func (Plains) EncodeBiome() int { return 1 }

// Temperature ...
func (Plains) Temperature() float64 { return 0.8 }

// Rainfall ...
func (Plains) Rainfall() float64 { return 0.4 }

// String ...
func (Plains) String() string { return "plains" }

// Forest is a temperate biome with high rainfall.
type Forest struct{}

// EncodeBiome ...
func (Forest) EncodeBiome() int { return 2 }

// Temperature ...
func (Forest) Temperature() float64 { return 0.7 }

// Rainfall ...
func (Forest) Rainfall() float64 { return 0.8 }

// String ...
func (Forest) String() string { return "forest" }

// Ocean is a cold, wet biome covering large bodies of water.
type Ocean struct{}

// EncodeBiome ...
func (Ocean) EncodeBiome() int { return 3 }

// Temperature ...
func (Ocean) Temperature() float64 { return 0.5 }

// Rainfall ...
func (Ocean) Rainfall() float64 { return 0.5 }

// String ...
func (Ocean) String() string { return "ocean" }

func init() {
	world.RegisterBiome(Plains{})
	world.RegisterBiome(Forest{})
	world.RegisterBiome(Ocean{})
}
