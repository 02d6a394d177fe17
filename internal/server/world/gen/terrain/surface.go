package terrain

import (
	"math"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/biome"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/sampler"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/random"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

const (
	bedrockLayers  = 5
	deepslateStart = 0
	deepslateEnd   = 8
)

// Material is the surface layer of a biome.
type Material struct {
	Top, Filler block.State
	// Underwater replaces Top below a fluid.
	Underwater block.State
}

var defaultMaterial = Material{Top: block.GrassBlock, Filler: block.Dirt, Underwater: block.Dirt}

// MaterialOf returns the surface layer placed in b.
func MaterialOf(b biome.Biome) Material {
	switch b {
	case biome.Desert, biome.Beach, biome.SnowyBeach, biome.WarmOcean, biome.LukewarmOcean, biome.DeepLukewarmOcean:
		return Material{Top: block.Sand, Filler: block.Sandstone, Underwater: block.Sand}
	case biome.Badlands, biome.ErodedBadlands, biome.WoodedBadlands:
		return Material{Top: block.RedSand, Filler: block.OrangeTerracotta, Underwater: block.RedSand}
	case biome.Ocean, biome.DeepOcean, biome.ColdOcean, biome.DeepColdOcean, biome.FrozenOcean, biome.DeepFrozenOcean:
		return Material{Top: block.Gravel, Filler: block.Gravel, Underwater: block.Gravel}
	case biome.WindsweptGravellyHills:
		return Material{Top: block.Gravel, Filler: block.Gravel, Underwater: block.Gravel}
	case biome.StonyPeaks, biome.StonyShore:
		return Material{Top: block.Stone, Filler: block.Stone, Underwater: block.Stone}
	case biome.JaggedPeaks, biome.SnowySlopes:
		return Material{Top: block.SnowBlock, Filler: block.Stone, Underwater: block.Stone}
	case biome.FrozenPeaks:
		return Material{Top: block.PackedIce, Filler: block.Stone, Underwater: block.Stone}
	case biome.SnowyPlains, biome.IceSpikes, biome.Grove:
		return Material{Top: block.SnowBlock, Filler: block.Dirt, Underwater: block.Dirt}
	case biome.MushroomFields:
		return Material{Top: block.Mycelium, Filler: block.Dirt, Underwater: block.Dirt}
	case biome.MangroveSwamp:
		return Material{Top: block.Mud, Filler: block.Mud, Underwater: block.Mud}
	case biome.OldGrowthPineTaiga, biome.OldGrowthSpruceTaiga:
		return Material{Top: block.Podzol, Filler: block.Dirt, Underwater: block.Dirt}
	case biome.River, biome.FrozenRiver:
		return Material{Top: block.GrassBlock, Filler: block.Dirt, Underwater: block.Sand}
	case biome.LushCaves:
		return Material{Top: block.MossBlock, Filler: block.Dirt, Underwater: block.Clay}
	}
	return defaultMaterial
}

func freezes(b biome.Biome) bool {
	return b == biome.FrozenOcean || b == biome.DeepFrozenOcean || b == biome.FrozenRiver
}

// SurfaceBuilder replaces the stone skin of a noise filled chunk with biome
// materials and lays the deepslate and bedrock gradients.
type SurfaceBuilder struct {
	shape     Shape
	seaLevel  int
	blendSeed int64
	base      random.Positional
	bedrock   random.Positional
	deepslate random.Positional
}

func NewSurfaceBuilder(r density.WorldRandom, shape Shape, seaLevel int) *SurfaceBuilder {
	return &SurfaceBuilder{
		shape:     shape,
		seaLevel:  seaLevel,
		blendSeed: biome.HashSeed(r.Seed),
		base:      r.Base,
		bedrock:   r.Base.FromHashOf("minecraft:bedrock_floor").ForkPositional(),
		deepslate: r.Base.FromHashOf("minecraft:deepslate").ForkPositional(),
	}
}

// gradient reports whether the block at y lies on the true side of a vertical
// gradient running from trueAt to falseAt.
func gradient(rnd random.Positional, x, y, z, trueAt, falseAt int) bool {
	if y <= trueAt {
		return true
	}
	if y >= falseAt {
		return false
	}
	chance := mathutil.Map(float64(y), float64(trueAt), float64(falseAt), 1, 0)
	return float64(rnd.At(x, y, z).NextFloat()) < chance
}

func (s *SurfaceBuilder) surfaceDepth(x, z int) int {
	return 3 + int(s.base.At(x, 0, z).NextIntn(3))
}

func (s *SurfaceBuilder) biomeAt(c *chunk.ChunkData, x, y, z int) biome.Biome {
	bx, by, bz := biome.BlendPos(s.shape.MinY, s.shape.Height, s.blendSeed, x, y, z)
	startX := mathutil.BiomeFromBlock(c.Pos.StartX())
	startZ := mathutil.BiomeFromBlock(c.Pos.StartZ())
	// Blending may pick a neighbouring chunk's cell; clamp to ours.
	lx := min(max(bx-startX, 0), 3)
	lz := min(max(bz-startZ, 0), 3)
	return biome.Biome(c.Biome(lx<<2, mathutil.BiomeToBlock(by), lz<<2))
}

// Build applies the surface to c. heights, when not nil, bounds the surface
// rules to blocks near the preliminary surface so caves keep bare stone.
func (s *SurfaceBuilder) Build(c *chunk.ChunkData, heights *sampler.SurfaceHeight) {
	startX, startZ := c.Pos.StartX(), c.Pos.StartZ()
	maxY := s.shape.MinY + s.shape.Height - 1
	for lx := range chunk.Width {
		for lz := range chunk.Width {
			x, z := startX+lx, startZ+lz
			minSurface := s.shape.MinY
			depthLimit := s.surfaceDepth(x, z)
			if heights != nil {
				if h := heights.EstimateHeight(x, z); h != sampler.NoSurface {
					minSurface = h + depthLimit - 8
				}
			}
			s.column(c, lx, lz, x, z, maxY, minSurface, depthLimit)
		}
	}
	c.RecalculateHeightmaps()
}

func (s *SurfaceBuilder) column(c *chunk.ChunkData, lx, lz, x, z, maxY, minSurface, depthLimit int) {
	top := c.TopY(chunk.WorldSurface, lx, lz)
	waterY := math.MinInt
	depth := 0
	for y := min(top, maxY); y >= s.shape.MinY; y-- {
		st := c.GetBlock(lx, y, lz)
		switch {
		case st.IsAir():
			depth, waterY = 0, math.MinInt
			continue
		case st.IsFluid():
			if waterY == math.MinInt {
				waterY = y + 1
				if st == block.Water && y == s.seaLevel-1 && freezes(s.biomeAt(c, x, y, z)) {
					c.SetBlockNoHeightmapUpdate(lx, y, lz, block.Ice)
				}
			}
			depth = 0
			continue
		}
		depth++
		if st != block.Stone {
			continue
		}
		if depth <= depthLimit && y >= minSurface {
			m := MaterialOf(s.biomeAt(c, x, y, z))
			switch {
			case depth > 1:
				c.SetBlockNoHeightmapUpdate(lx, y, lz, m.Filler)
			case waterY != math.MinInt && y+1 < waterY:
				c.SetBlockNoHeightmapUpdate(lx, y, lz, m.Underwater)
			default:
				c.SetBlockNoHeightmapUpdate(lx, y, lz, m.Top)
			}
			continue
		}
		if gradient(s.deepslate, x, y, z, deepslateStart, deepslateEnd) {
			c.SetBlockNoHeightmapUpdate(lx, y, lz, block.Deepslate)
		}
	}
	for y := s.shape.MinY; y < s.shape.MinY+bedrockLayers; y++ {
		if gradient(s.bedrock, x, y, z, s.shape.MinY, s.shape.MinY+bedrockLayers) {
			c.SetBlockNoHeightmapUpdate(lx, y, lz, block.Bedrock)
		}
	}
}
