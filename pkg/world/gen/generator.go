// Package gen defines the chunk generator contract and a flat debug generator.
package gen

import "github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	Generate(chunkX, chunkZ int) *chunk.ChunkData
	// HeightAt returns the y of the topmost solid block, possibly estimated.
	HeightAt(blockX, blockZ int) int
}
