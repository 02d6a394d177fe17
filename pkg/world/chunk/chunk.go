// Package chunk is the in-memory model of one generated chunk column: block
// states in collapsing sections, per-section biome grids and heightmaps.
package chunk

import (
	"fmt"

	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
)

// Column geometry.
const (
	Width         = 16
	Area          = Width * Width
	MinY          = -64
	Height        = 384
	MaxY          = MinY + Height - 1
	SectionVolume = Area * 16
	SectionCount  = Height / 16
	// BiomesPerSection is the 4x4x4 biome grid of one section.
	BiomesPerSection = 64
)

// Pos identifies a chunk by its X and Z coordinates.
type Pos struct{ X, Z int }

func (p Pos) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Z) }

// StartX is the first block x of the chunk.
func (p Pos) StartX() int { return p.X << 4 }

func (p Pos) StartZ() int { return p.Z << 4 }

// PosOfBlock returns the chunk holding block (x, z).
func PosOfBlock(x, z int) Pos { return Pos{x >> 4, z >> 4} }

// BiomeSection holds one section's biome ids, indexed (y<<2|z)<<2|x.
type BiomeSection [BiomesPerSection]uint8

// ChunkData is a chunk column. It is not safe for concurrent use.
type ChunkData struct {
	Pos        Pos
	Heightmaps Heightmaps
	Biomes     [SectionCount]BiomeSection

	blocks Blocks
	dirty  bool
}

// New returns an all-air chunk at pos.
func New(pos Pos) *ChunkData { return &ChunkData{Pos: pos} }

// InRange reports whether y lies inside the column.
func InRange(y int) bool { return y >= MinY && y <= MaxY }

// GetBlock returns the state at chunk-relative (x, z) and absolute y. Blocks
// outside the column read as air.
func (c *ChunkData) GetBlock(x, y, z int) block.State {
	if !InRange(y) {
		return block.Air
	}
	return c.blocks.get(x&15, y, z&15)
}

// SetBlock writes v and updates both heightmaps.
func (c *ChunkData) SetBlock(x, y, z int, v block.State) {
	if !InRange(y) {
		return
	}
	x, z = x&15, z&15
	c.SetBlockNoHeightmapUpdate(x, y, z, v)
	c.updateHeightmap(WorldSurface, x, y, z, !v.IsAir())
	c.updateHeightmap(MotionBlocking, x, y, z, v.BlocksMotion())
}

// SetBlockNoHeightmapUpdate writes v and leaves the heightmaps alone.
func (c *ChunkData) SetBlockNoHeightmapUpdate(x, y, z int, v block.State) {
	if !InRange(y) {
		return
	}
	c.blocks.set(x&15, y, z&15, v)
	c.dirty = true
}

func matches(kind HeightmapKind, s block.State) bool {
	if kind == WorldSurface {
		return !s.IsAir()
	}
	return s.BlocksMotion()
}

func (c *ChunkData) updateHeightmap(kind HeightmapKind, x, y, z int, match bool) {
	h := c.Heightmaps.Of(kind)
	cur, at := h.Get(x, z), y-MinY+1
	switch {
	case match && at > cur:
		h.Set(x, z, at)
	case !match && at == cur:
		h.Set(x, z, c.scanDown(kind, x, y-1, z))
	}
}

func (c *ChunkData) scanDown(kind HeightmapKind, x, y, z int) int {
	for ; y >= MinY; y-- {
		if matches(kind, c.blocks.get(x, y, z)) {
			return y - MinY + 1
		}
	}
	return 0
}

// RecalculateHeightmaps rebuilds both heightmaps from the blocks.
func (c *ChunkData) RecalculateHeightmaps() {
	for x := range Width {
		for z := range Width {
			for _, kind := range []HeightmapKind{MotionBlocking, WorldSurface} {
				c.Heightmaps.Set(kind, x, z, c.scanDown(kind, x, MaxY, z))
			}
		}
	}
}

// TopY returns the kind's topmost block y of column (x, z), or MinY-1 when
// the column holds none.
func (c *ChunkData) TopY(kind HeightmapKind, x, z int) int {
	return c.Heightmaps.Get(kind, x&15, z&15) + MinY - 1
}

// Blocks exposes the section storage for encoding.
func (c *ChunkData) Blocks() *Blocks { return &c.blocks }

// Biome returns the biome id of the cell holding chunk-relative (x, z) and
// absolute y.
func (c *ChunkData) Biome(x, y, z int) uint8 {
	y = min(max(y, MinY), MaxY)
	return c.Biomes[(y-MinY)>>4][(y>>2&3)<<4|(z>>2&3)<<2|x>>2&3]
}

// SetBiome sets the biome id at biome cell (bx, by, bz) relative to the
// chunk, with by counted from the bottom of the column.
func (c *ChunkData) SetBiome(bx, by, bz int, id uint8) {
	c.Biomes[by>>2][(by&3)<<4|bz<<2|bx] = id
	c.dirty = true
}

func (c *ChunkData) Dirty() bool { return c.dirty }

func (c *ChunkData) MarkDirty() { c.dirty = true }

func (c *ChunkData) ClearDirty() { c.dirty = false }

// NonAirSections counts sections holding anything except air.
func (c *ChunkData) NonAirSections() int {
	n := 0
	for i := range SectionCount {
		sec := c.blocks.Section(i)
		if s, ok := sec.Homogeneous(); ok && s.IsAir() {
			continue
		}
		n++
	}
	return n
}
