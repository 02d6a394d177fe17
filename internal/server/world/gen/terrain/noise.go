// Package terrain turns a compiled noise router into chunk blocks: the noise
// pass with cell interpolation, the biome grid and the surface layer.
package terrain

import (
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/router"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

// Shape is the vertical extent and interpolation cell size of a dimension.
type Shape struct {
	MinY, Height int
	// H and V are the cell's horizontal and vertical block counts.
	H, V int
}

// OverworldShape is the overworld's -64..319 column with 4x8x4 cells.
func OverworldShape() Shape { return Shape{MinY: chunk.MinY, Height: chunk.Height, H: 4, V: 8} }

func (s Shape) vCells() int   { return s.Height / s.V }
func (s Shape) minCellY() int { return mathutil.FloorDiv(s.MinY, s.V) }

// NoiseGenerator fills one chunk from the router's final density. It owns its
// stack and is not safe for concurrent use.
type NoiseGenerator struct {
	stack  *density.Stack
	shape  Shape
	pos    chunk.Pos
	fluid  FluidPicker
	ores   *oreVeins
	hCells int

	startCellX, startCellZ int
	fillID, resultID       uint64

	densityIdx, toggleIdx, ridgedIdx, gapIdx int

	// sample state of the block being resolved
	at   density.Pos
	opts density.SampleOptions
}

// NewNoiseGenerator prepares the chunk at pos. Ore veins are placed when
// withOres is set.
func NewNoiseGenerator(p *density.Proto, pos chunk.Pos, shape Shape, fluid FluidPicker, withOres bool) *NoiseGenerator {
	startX, startZ := pos.StartX(), pos.StartZ()
	g := &NoiseGenerator{
		stack:      p.ChunkStack(density.NewStackOptions(startX, startZ, shape.H, shape.V, shape.vCells())),
		shape:      shape,
		pos:        pos,
		fluid:      fluid,
		hCells:     chunk.Width / shape.H,
		startCellX: mathutil.FloorDiv(startX, shape.H),
		startCellZ: mathutil.FloorDiv(startZ, shape.H),
	}
	if withOres {
		g.ores = &oreVeins{rnd: p.Random.Ore}
	}
	g.densityIdx = g.stack.Index(router.ChunkDensity)
	g.toggleIdx = g.stack.Index(router.VeinToggle)
	g.ridgedIdx = g.stack.Index(router.VeinRidged)
	g.gapIdx = g.stack.Index(router.VeinGap)
	return g
}

func (g *NoiseGenerator) cell() density.Cell { return density.Cell{H: g.shape.H, V: g.shape.V} }

// columnMapper maps a fill index to the corner y of one interpolator column.
type columnMapper struct {
	x, z     int
	minCellY int
	v        int
}

func (m columnMapper) At(index int, opts *density.SampleOptions) density.Pos {
	if opts != nil {
		opts.CacheResultID++
		opts.FillIndex = index
	}
	return density.Pos{X: m.x, Y: (index + m.minCellY) * m.v, Z: m.z}
}

// cellMapper maps a fill index to a block of the current cell, top layer
// first.
type cellMapper struct {
	startX, startY, startZ int
	h, v                   int
}

func (m cellMapper) At(index int, opts *density.SampleOptions) density.Pos {
	cz := index % m.h
	xy := index / m.h
	cx := xy % m.h
	cy := m.v - 1 - xy/m.h
	if opts != nil {
		opts.FillIndex = index
		opts.Cell.X, opts.Cell.Y, opts.Cell.Z = cx, cy, cz
	}
	return density.Pos{X: m.startX + cx, Y: m.startY + cy, Z: m.startZ + cz}
}

func (g *NoiseGenerator) sampleDensity(start bool, cellX int) {
	x := cellX * g.shape.H
	for cz := 0; cz <= g.hCells; cz++ {
		g.fillID++
		m := columnMapper{x: x, z: (g.startCellZ + cz) * g.shape.H, minCellY: g.shape.minCellY(), v: g.shape.V}
		opts := &density.SampleOptions{
			CellCaches:    true,
			Cell:          g.cell(),
			CacheResultID: g.resultID,
			CacheFillID:   g.fillID,
		}
		g.stack.FillInterpolatorColumns(start, cz, m, opts)
		g.resultID = opts.CacheResultID
	}
	g.fillID++
}

func (g *NoiseGenerator) onSampledCellCorners(cellX, cellY, cellZ int) {
	g.stack.OnSampledCellCorners(cellY, cellZ)
	g.fillID++
	m := cellMapper{
		startX: (g.startCellX + cellX) * g.shape.H,
		startY: (cellY + g.shape.minCellY()) * g.shape.V,
		startZ: (g.startCellZ + cellZ) * g.shape.H,
		h:      g.shape.H,
		v:      g.shape.V,
	}
	opts := &density.SampleOptions{
		CellCaches:    true,
		Populating:    true,
		Cell:          g.cell(),
		CacheResultID: g.resultID,
		CacheFillID:   g.fillID,
	}
	g.stack.FillCellCaches(m, opts)
	g.fillID++
}

func (g *NoiseGenerator) sample(idx int) float64 { return g.stack.Sample(idx, g.at, &g.opts) }

func (g *NoiseGenerator) toggle() float64 { return g.sample(g.toggleIdx) }
func (g *NoiseGenerator) ridged() float64 { return g.sample(g.ridgedIdx) }
func (g *NoiseGenerator) gap() float64    { return g.sample(g.gapIdx) }

// blockState resolves the block at start+offset of the current cell.
func (g *NoiseGenerator) blockState(start, offset density.Pos) block.State {
	g.at = density.Pos{X: start.X + offset.X, Y: start.Y + offset.Y, Z: start.Z + offset.Z}
	cell := g.cell()
	cell.X, cell.Y, cell.Z = offset.X, offset.Y, offset.Z
	g.opts = density.SampleOptions{
		CellCaches:    true,
		Cell:          cell,
		CacheResultID: g.resultID,
		CacheFillID:   g.fillID,
	}
	if g.sample(g.densityIdx) <= 0 {
		return g.fluid.Open(g.at.Y)
	}
	if g.ores != nil {
		if s, ok := g.ores.sample(g, g.at.X, g.at.Y, g.at.Z); ok {
			return s
		}
	}
	return block.Stone
}

// PopulateNoise fills c with stone, fluids and ore veins and updates its
// heightmaps.
func (g *NoiseGenerator) PopulateNoise(c *chunk.ChunkData) {
	h, v := g.shape.H, g.shape.V
	minCellY := g.shape.minCellY()

	g.resultID = 0
	g.sampleDensity(true, g.startCellX)
	for cx := range g.hCells {
		g.sampleDensity(false, g.startCellX+cx+1)
		sx := (g.startCellX + cx) * h
		for cz := range g.hCells {
			sz := (g.startCellZ + cz) * h
			for cy := g.shape.vCells() - 1; cy >= 0; cy-- {
				g.onSampledCellCorners(cx, cy, cz)
				sy := (minCellY + cy) * v
				for ly := v - 1; ly >= 0; ly-- {
					g.stack.InterpolateY(float64(ly) / float64(v))
					for lx := range h {
						g.stack.InterpolateX(float64(lx) / float64(h))
						for lz := range h {
							g.resultID++
							g.stack.InterpolateZ(float64(lz) / float64(h))
							s := g.blockState(density.Pos{X: sx, Y: sy, Z: sz}, density.Pos{X: lx, Y: ly, Z: lz})
							if s != block.Air {
								c.SetBlock(cx*h+lx, sy+ly, cz*h+lz, s)
							}
						}
					}
				}
			}
		}
		g.stack.SwapBuffers()
	}
}
