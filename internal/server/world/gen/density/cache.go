package density

import (
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
)

// interpolator trilinearly interpolates its input between cell corners. The
// two buffers hold one y-z plane of corner values each: start is the plane at
// the current cell x, end the plane one cell further.
type interpolator struct {
	input  int
	r      Range
	vCells int

	start, end []float64

	first  [8]float64
	second [4]float64
	third  [2]float64
	result float64
}

func newInterpolator(input int, r Range, opts StackOptions) *interpolator {
	n := (opts.VCells + 1) * (opts.HCells + 1)
	return &interpolator{
		input:  input,
		r:      r,
		vCells: opts.VCells,
		start:  make([]float64, n),
		end:    make([]float64, n),
	}
}

func (c *interpolator) Range() Range { return c.r }

func (c *interpolator) index(cellY, cellZ int) int {
	return cellZ*(c.vCells+1) + cellY
}

func (c *interpolator) column(start bool, cellZ int) []float64 {
	buf := c.end
	if start {
		buf = c.start
	}
	i := cellZ * (c.vCells + 1)
	return buf[i : i+c.vCells+1]
}

func (c *interpolator) onSampledCellCorners(cellY, cellZ int) {
	c.first[0] = c.start[c.index(cellY, cellZ)]
	c.first[1] = c.start[c.index(cellY, cellZ+1)]
	c.first[4] = c.end[c.index(cellY, cellZ)]
	c.first[5] = c.end[c.index(cellY, cellZ+1)]
	c.first[2] = c.start[c.index(cellY+1, cellZ)]
	c.first[3] = c.start[c.index(cellY+1, cellZ+1)]
	c.first[6] = c.end[c.index(cellY+1, cellZ)]
	c.first[7] = c.end[c.index(cellY+1, cellZ+1)]
}

func (c *interpolator) interpolateY(delta float64) {
	c.second[0] = mathutil.Lerp(delta, c.first[0], c.first[2])
	c.second[2] = mathutil.Lerp(delta, c.first[4], c.first[6])
	c.second[1] = mathutil.Lerp(delta, c.first[1], c.first[3])
	c.second[3] = mathutil.Lerp(delta, c.first[5], c.first[7])
}

func (c *interpolator) interpolateX(delta float64) {
	c.third[0] = mathutil.Lerp(delta, c.second[0], c.second[2])
	c.third[1] = mathutil.Lerp(delta, c.second[1], c.second[3])
}

func (c *interpolator) interpolateZ(delta float64) {
	c.result = mathutil.Lerp(delta, c.third[0], c.third[1])
}

func (c *interpolator) swap() {
	c.start, c.end = c.end, c.start
}

func (c *interpolator) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	if !opts.CellCaches {
		return SampleFromStack(prefix[:c.input+1], pos, opts)
	}
	if !opts.Populating {
		return c.result
	}
	cell := opts.Cell
	return mathutil.Lerp3(
		float64(cell.X)/float64(cell.H),
		float64(cell.Y)/float64(cell.V),
		float64(cell.Z)/float64(cell.H),
		c.first[0], c.first[4], c.first[2], c.first[6],
		c.first[1], c.first[5], c.first[3], c.first[7],
	)
}

func (c *interpolator) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	if opts.Populating {
		fillDependent(c, prefix, out, m, opts)
		return
	}
	FillFromStack(prefix[:c.input+1], out, m, opts)
}

// flatCache holds its input sampled at y=0 on the chunk's biome grid.
type flatCache struct {
	input  int
	r      Range
	startX int
	startZ int
	end    int
	cache  []float64
}

func newFlatCache(input int, r Range, opts StackOptions, stack []Component) *flatCache {
	c := &flatCache{
		input:  input,
		r:      r,
		startX: opts.StartBiomeX,
		startZ: opts.StartBiomeZ,
		end:    opts.HorizontalBiomeEnd,
		cache:  make([]float64, (opts.HorizontalBiomeEnd+1)*(opts.HorizontalBiomeEnd+1)),
	}
	skip := &SampleOptions{}
	for i := 0; i <= c.end; i++ {
		x := mathutil.BiomeToBlock(c.startX + i)
		for j := 0; j <= c.end; j++ {
			z := mathutil.BiomeToBlock(c.startZ + j)
			c.cache[c.index(i, j)] = SampleFromStack(stack[:input+1], Pos{X: x, Z: z}, skip)
		}
	}
	return c
}

func (c *flatCache) index(i, j int) int { return i*(c.end+1) + j }

func (c *flatCache) Range() Range { return c.r }

func (c *flatCache) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	i := mathutil.BiomeFromBlock(pos.X) - c.startX
	j := mathutil.BiomeFromBlock(pos.Z) - c.startZ
	if i >= 0 && j >= 0 && i <= c.end && j <= c.end {
		return c.cache[c.index(i, j)]
	}
	return SampleFromStack(prefix[:c.input+1], pos, opts)
}

func (c *flatCache) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	fillDependent(c, prefix, out, m, opts)
}

// cache2D remembers the last column it was sampled at.
type cache2D struct {
	input  int
	r      Range
	column uint64
	valid  bool
	last   float64
}

func newCache2D(input int, r Range) *cache2D {
	return &cache2D{input: input, r: r}
}

func (c *cache2D) Range() Range { return c.r }

func (c *cache2D) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	col := mathutil.PackColumn(pos.X, pos.Z)
	if c.valid && col == c.column {
		return c.last
	}
	v := SampleFromStack(prefix[:c.input+1], pos, opts)
	c.column, c.last, c.valid = col, v, true
	return v
}

func (c *cache2D) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	fillDependent(c, prefix, out, m, opts)
}

// cacheOnce keeps the last single result and the last filled slice, keyed by
// the sample identifiers of the pass that produced them.
type cacheOnce struct {
	input    int
	r        Range
	resultID uint64
	fillID   uint64
	last     float64
	cache    []float64
}

func (c *cacheOnce) Range() Range { return c.r }

func (c *cacheOnce) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	if !opts.CellCaches {
		return SampleFromStack(prefix[:c.input+1], pos, opts)
	}
	if c.fillID == opts.CacheFillID && len(c.cache) > 0 {
		return c.cache[opts.FillIndex]
	}
	if c.resultID == opts.CacheResultID {
		return c.last
	}
	v := SampleFromStack(prefix[:c.input+1], pos, opts)
	c.resultID, c.last = opts.CacheResultID, v
	return v
}

func (c *cacheOnce) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	if c.fillID == opts.CacheFillID && len(c.cache) > 0 {
		copy(out, c.cache)
		return
	}
	FillFromStack(prefix[:c.input+1], out, m, opts)
	if len(c.cache) != len(out) {
		c.cache = make([]float64, len(out))
	}
	copy(c.cache, out)
	c.fillID = opts.CacheFillID
}

// cellCache holds its input for every block of the current cell.
type cellCache struct {
	input int
	r     Range
	cache []float64
}

func newCellCache(input int, r Range, opts StackOptions) *cellCache {
	return &cellCache{input: input, r: r, cache: make([]float64, opts.H*opts.H*opts.V)}
}

func (c *cellCache) Range() Range { return c.r }

func (c *cellCache) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	if !opts.CellCaches {
		return SampleFromStack(prefix[:c.input+1], pos, opts)
	}
	cell := opts.Cell
	return c.cache[((cell.V-1-cell.Y)*cell.H+cell.X)*cell.H+cell.Z]
}

func (c *cellCache) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	fillDependent(c, prefix, out, m, opts)
}
