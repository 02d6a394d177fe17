// Package sampler reads climate points and surface estimates off a compiled
// noise router.
package sampler

import (
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/biome"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/router"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
)

// MultiNoise samples the six climate roots at biome coordinates. It is not
// safe for concurrent use.
type MultiNoise struct {
	stack *density.Stack
	roots [6]int
}

var climateRoots = [6]string{
	router.Temperature,
	router.Vegetation,
	router.Continents,
	router.Erosion,
	router.Depth,
	router.Ridges,
}

// NewMultiNoise builds a sampler whose flat caches cover the biome columns
// named by opts.
func NewMultiNoise(p *density.Proto, opts density.StackOptions) *MultiNoise {
	s := &MultiNoise{stack: p.ColumnStack(opts, climateRoots[:]...)}
	for i, name := range climateRoots {
		s.roots[i] = s.stack.Index(name)
	}
	return s
}

// Sample returns the quantized climate at the biome cell (bx, by, bz).
func (s *MultiNoise) Sample(bx, by, bz int) biome.NoisePoint {
	pos := density.Pos{
		X: mathutil.BiomeToBlock(bx),
		Y: mathutil.BiomeToBlock(by),
		Z: mathutil.BiomeToBlock(bz),
	}
	var v [6]int64
	for i, idx := range s.roots {
		v[i] = biome.Quantize(float32(s.stack.Sample(idx, pos, nil)))
	}
	return biome.NoisePoint{
		Temperature:     v[0],
		Humidity:        v[1],
		Continentalness: v[2],
		Erosion:         v[3],
		Depth:           v[4],
		Weirdness:       v[5],
	}
}

// BiomeSource resolves biomes through a multi-noise sampler and a shared
// search tree, reusing the previous leaf as a search hint.
type BiomeSource struct {
	noise    *MultiNoise
	searcher *biome.Searcher[biome.Biome]
}

func NewBiomeSource(n *MultiNoise, tree *biome.SearchTree[biome.Biome]) *BiomeSource {
	return &BiomeSource{noise: n, searcher: tree.NewSearcher()}
}

// Biome returns the biome at the biome cell (bx, by, bz).
func (s *BiomeSource) Biome(bx, by, bz int) biome.Biome {
	return s.searcher.Get(s.noise.Sample(bx, by, bz))
}
