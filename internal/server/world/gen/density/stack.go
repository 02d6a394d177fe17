package density

import (
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
)

// StackOptions sizes the caches of one chunk.
type StackOptions struct {
	// H and V are the cell's horizontal and vertical block counts.
	H, V int
	// HCells and VCells are the chunk's cell counts per axis.
	HCells, VCells int

	StartBiomeX, StartBiomeZ int
	HorizontalBiomeEnd       int
}

// NewStackOptions returns the options for the chunk whose first block is
// (startX, startZ), using cells of h by v blocks over vCells cell rows.
func NewStackOptions(startX, startZ, h, v, vCells int) StackOptions {
	hCells := 16 / h
	return StackOptions{
		H:                  h,
		V:                  v,
		HCells:             hCells,
		VCells:             vCells,
		StartBiomeX:        mathutil.BiomeFromBlock(startX),
		StartBiomeZ:        mathutil.BiomeFromBlock(startZ),
		HorizontalBiomeEnd: mathutil.BiomeFromBlock(hCells * h),
	}
}

// Stack is a component stack with its own caches. It is not safe for
// concurrent use.
type Stack struct {
	proto         *Proto
	components    []Component
	interpolators []*interpolator
	cellCaches    []*cellCache
}

func (p *Proto) maxIndex(roots []string) int {
	if len(roots) == 0 {
		return len(p.components) - 1
	}
	m := -1
	for _, name := range roots {
		m = max(m, p.Index(name))
	}
	return m
}

// ChunkStack materializes the proto up to the highest of roots (all of it
// when roots is empty), turning every cache marker into a fresh cache.
func (p *Proto) ChunkStack(opts StackOptions, roots ...string) *Stack {
	last := p.maxIndex(roots)
	s := &Stack{proto: p, components: make([]Component, 0, last+1)}
	for _, comp := range p.components[:last+1] {
		w, ok := comp.(*wrapper)
		if !ok {
			s.components = append(s.components, comp)
			continue
		}
		in, r := w.input, s.components[w.input].Range()
		var c Component
		switch w.kind {
		case Interpolated:
			ip := newInterpolator(in, r, opts)
			s.interpolators = append(s.interpolators, ip)
			c = ip
		case CellCache:
			cc := newCellCache(in, r, opts)
			s.cellCaches = append(s.cellCaches, cc)
			c = cc
		case CacheOnce:
			c = &cacheOnce{input: in, r: r}
		case Cache2D:
			c = newCache2D(in, r)
		case FlatCache:
			c = newFlatCache(in, r, opts, s.components)
		}
		s.components = append(s.components, c)
	}
	return s
}

// ColumnStack materializes the proto for column-wise sampling. Cache2D and
// flat caches are kept; every other marker reads through.
func (p *Proto) ColumnStack(opts StackOptions, roots ...string) *Stack {
	last := p.maxIndex(roots)
	s := &Stack{proto: p, components: make([]Component, 0, last+1)}
	for _, comp := range p.components[:last+1] {
		w, ok := comp.(*wrapper)
		if !ok {
			s.components = append(s.components, comp)
			continue
		}
		in, r := w.input, s.components[w.input].Range()
		switch w.kind {
		case Cache2D:
			s.components = append(s.components, newCache2D(in, r))
		case FlatCache:
			s.components = append(s.components, newFlatCache(in, r, opts, s.components))
		default:
			s.components = append(s.components, &passThrough{input: in, r: r})
		}
	}
	return s
}

// SimpleStack materializes the proto up to a single root for column-wise
// sampling.
func (p *Proto) SimpleStack(root string, opts StackOptions) *Stack { return p.ColumnStack(opts, root) }

// Index returns the stack index of a root.
func (s *Stack) Index(name string) int {
	i := s.proto.Index(name)
	if i >= len(s.components) {
		panic("density: root " + name + " is not materialized in this stack")
	}
	return i
}

func (s *Stack) Proto() *Proto { return s.proto }

// Sample evaluates the component at index. Nil opts skips the cell caches.
func (s *Stack) Sample(index int, pos Pos, opts *SampleOptions) float64 {
	if opts == nil {
		opts = &SampleOptions{}
	}
	return SampleFromStack(s.components[:index+1], pos, opts)
}

func (s *Stack) Fill(index int, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(s.components[:index+1], out, m, opts)
}

func (s *Stack) Range(index int) Range { return s.components[index].Range() }

// FillInterpolatorColumns fills one y column of every interpolator's start
// or end plane.
func (s *Stack) FillInterpolatorColumns(start bool, cellZ int, m IndexMapper, opts *SampleOptions) {
	for _, ip := range s.interpolators {
		FillFromStack(s.components[:ip.input+1], ip.column(start, cellZ), m, opts)
	}
}

// FillCellCaches fills every cell cache for the current cell.
func (s *Stack) FillCellCaches(m IndexMapper, opts *SampleOptions) {
	for _, cc := range s.cellCaches {
		FillFromStack(s.components[:cc.input+1], cc.cache, m, opts)
	}
}

func (s *Stack) OnSampledCellCorners(cellY, cellZ int) {
	for _, ip := range s.interpolators {
		ip.onSampledCellCorners(cellY, cellZ)
	}
}

func (s *Stack) InterpolateY(delta float64) {
	for _, ip := range s.interpolators {
		ip.interpolateY(delta)
	}
}

func (s *Stack) InterpolateX(delta float64) {
	for _, ip := range s.interpolators {
		ip.interpolateX(delta)
	}
}

func (s *Stack) InterpolateZ(delta float64) {
	for _, ip := range s.interpolators {
		ip.interpolateZ(delta)
	}
}

// SwapBuffers moves every interpolator's end plane to its start.
func (s *Stack) SwapBuffers() {
	for _, ip := range s.interpolators {
		ip.swap()
	}
}
