package gen

import (
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

// Layer is one horizontal band of a flat world.
type Layer struct {
	State  block.State
	Height int
}

// DefaultLayers is the classic superflat preset: bedrock, two stone, dirt
// and grass from the bottom of the world.
var DefaultLayers = []Layer{
	{block.Bedrock, 1},
	{block.Stone, 2},
	{block.Dirt, 1},
	{block.GrassBlock, 1},
}

// plainsBiome is the registry index of minecraft:plains.
const plainsBiome = 39

// FlatGenerator generates every chunk from the same stack of layers.
type FlatGenerator struct {
	layers []Layer
	top    int
}

// NewFlatGenerator creates a FlatGenerator with the default layers.
func NewFlatGenerator(_ int64) *FlatGenerator { return NewFlatGeneratorWith(DefaultLayers) }

func NewFlatGeneratorWith(layers []Layer) *FlatGenerator {
	top := chunk.MinY - 1
	for _, l := range layers {
		top += l.Height
	}
	return &FlatGenerator{layers: layers, top: top}
}

func (g *FlatGenerator) Generate(chunkX, chunkZ int) *chunk.ChunkData {
	c := chunk.New(chunk.Pos{X: chunkX, Z: chunkZ})
	y := chunk.MinY
	for _, l := range g.layers {
		for range l.Height {
			for x := range chunk.Width {
				for z := range chunk.Width {
					c.SetBlock(x, y, z, l.State)
				}
			}
			y++
		}
	}
	for i := range c.Biomes {
		for j := range c.Biomes[i] {
			c.Biomes[i][j] = plainsBiome
		}
	}
	return c
}

func (g *FlatGenerator) HeightAt(_, _ int) int { return g.top }
