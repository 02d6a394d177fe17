// Package gen builds overworld chunks from the compiled noise router.
package gen

import (
	"sync"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/biome"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/router"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/sampler"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/terrain"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

// DefaultSeaLevel is the overworld sea level.
const DefaultSeaLevel = 63

// Options selects the router variant and sea level.
type Options struct {
	SeaLevel    int
	LargeBiomes bool
	Amplified   bool
	// OreVeins enables the large copper and iron veins.
	OreVeins bool
}

// DefaultOptions is the vanilla overworld.
func DefaultOptions() Options { return Options{SeaLevel: DefaultSeaLevel, OreVeins: true} }

// DefaultGenerator produces vanilla-like overworld terrain with multi-noise
// biomes, sea-level fluids, ore veins and a biome surface.
//
// The compiled router and the biome tree are built once and shared; each
// Generate call owns its stacks, so Generate is safe for concurrent use.
type DefaultGenerator struct {
	proto   *density.Proto
	tree    *biome.SearchTree[biome.Biome]
	opts    Options
	shape   terrain.Shape
	fluid   terrain.FluidPicker
	surface *terrain.SurfaceBuilder

	// point queries reuse the column samplers of the last chunk asked about
	pointMu sync.Mutex
	point   *columnSamplers
}

type columnSamplers struct {
	pos     chunk.Pos
	climate *sampler.MultiNoise
	heights *sampler.SurfaceHeight
}

// NewDefaultGenerator creates a vanilla DefaultGenerator from a seed.
func NewDefaultGenerator(seed int64, params noise.Registry) *DefaultGenerator {
	return NewDefaultGeneratorWith(seed, params, DefaultOptions())
}

func NewDefaultGeneratorWith(seed int64, params noise.Registry, opts Options) *DefaultGenerator {
	roots := router.OverworldWith(router.Options{LargeBiomes: opts.LargeBiomes, Amplified: opts.Amplified})
	p := density.NewProto(seed, params, roots)
	shape := terrain.OverworldShape()
	return &DefaultGenerator{
		proto:   p,
		tree:    biome.NewBiomeTree(biome.OverworldEntries()),
		opts:    opts,
		shape:   shape,
		fluid:   terrain.NewFluidPicker(opts.SeaLevel),
		surface: terrain.NewSurfaceBuilder(p.Random, shape, opts.SeaLevel),
	}
}

// Proto returns the compiled router shared by every chunk.
func (g *DefaultGenerator) Proto() *density.Proto { return g.proto }

func (g *DefaultGenerator) Tree() *biome.SearchTree[biome.Biome] { return g.tree }

func (g *DefaultGenerator) stackOptions(pos chunk.Pos) density.StackOptions {
	return density.NewStackOptions(pos.StartX(), pos.StartZ(), g.shape.H, g.shape.V, g.shape.Height/g.shape.V)
}

// BiomeSource returns a biome source whose caches cover chunk pos.
func (g *DefaultGenerator) BiomeSource(pos chunk.Pos) *sampler.BiomeSource {
	return sampler.NewBiomeSource(sampler.NewMultiNoise(g.proto, g.stackOptions(pos)), g.tree)
}

// samplersAt returns the point samplers covering pos, building them when pos
// differs from the previous query. The caller holds pointMu.
func (g *DefaultGenerator) samplersAt(pos chunk.Pos) *columnSamplers {
	if g.point == nil || g.point.pos != pos {
		opts := g.stackOptions(pos)
		g.point = &columnSamplers{
			pos:     pos,
			climate: sampler.NewMultiNoise(g.proto, opts),
			heights: sampler.NewSurfaceHeight(g.proto, opts, g.surfaceOptions()),
		}
	}
	return g.point
}

// ClimateAt samples the climate at a block and resolves its biome, without
// the blending applied to generated chunks.
func (g *DefaultGenerator) ClimateAt(x, y, z int) (biome.NoisePoint, biome.Biome) {
	g.pointMu.Lock()
	defer g.pointMu.Unlock()
	n := g.samplersAt(chunk.PosOfBlock(x, z)).climate
	p := n.Sample(mathutil.BiomeFromBlock(x), mathutil.BiomeFromBlock(y), mathutil.BiomeFromBlock(z))
	return p, g.tree.Get(p)
}

func (g *DefaultGenerator) Generate(chunkX, chunkZ int) *chunk.ChunkData {
	pos := chunk.Pos{X: chunkX, Z: chunkZ}
	c := chunk.New(pos)

	// Pass 1: biome grid.
	terrain.FillBiomes(c, g.BiomeSource(pos))

	// Pass 2: stone, fluids and ore veins.
	terrain.NewNoiseGenerator(g.proto, pos, g.shape, g.fluid, g.opts.OreVeins).PopulateNoise(c)

	// Pass 3: surface materials, deepslate and bedrock.
	heights := sampler.NewSurfaceHeight(g.proto, g.stackOptions(pos), g.surfaceOptions())
	g.surface.Build(c, heights)
	return c
}

func (g *DefaultGenerator) surfaceOptions() sampler.SurfaceOptions {
	o := sampler.DefaultSurfaceOptions()
	o.MinY, o.MaxY = g.shape.MinY, g.shape.MinY+g.shape.Height
	return o
}

// HeightAt estimates the surface y at a block column without generating the
// chunk. Columns with no surface report the sea level. Queries within one
// chunk share their flat caches; moving to another chunk rebuilds them.
func (g *DefaultGenerator) HeightAt(blockX, blockZ int) int {
	g.pointMu.Lock()
	h := g.samplersAt(chunk.PosOfBlock(blockX, blockZ)).heights.EstimateHeight(blockX, blockZ)
	g.pointMu.Unlock()
	if h == sampler.NoSurface {
		return g.opts.SeaLevel
	}
	return h
}
