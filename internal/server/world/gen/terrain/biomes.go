package terrain

import (
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/sampler"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

// FillBiomes samples the 4x4x4 biome grid of every section of c.
func FillBiomes(c *chunk.ChunkData, src *sampler.BiomeSource) {
	startX := mathutil.BiomeFromBlock(c.Pos.StartX())
	startZ := mathutil.BiomeFromBlock(c.Pos.StartZ())
	bottom := mathutil.BiomeFromBlock(chunk.MinY)
	for i := range chunk.SectionCount {
		for y := range 4 {
			by := i*4 + y
			for z := range 4 {
				for x := range 4 {
					c.SetBiome(x, by, z, uint8(src.Biome(startX+x, bottom+by, startZ+z)))
				}
			}
		}
	}
}
