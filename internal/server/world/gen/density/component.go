package density

// Pos is a block position.
type Pos struct {
	X, Y, Z int
}

// Range bounds every value a component can produce.
type Range struct {
	Min, Max float64
}

// Cell locates a block inside its interpolation cell.
type Cell struct {
	X, Y, Z int
	// H and V are the cell's horizontal and vertical block counts.
	H, V int
}

// SampleOptions carries the per-sample state the chunk caches read. The zero
// value skips every cell cache, which is how column samplers evaluate.
type SampleOptions struct {
	// CellCaches enables interpolators, cell caches and cache-once. When false
	// those components evaluate their input directly.
	CellCaches bool
	// Populating is set while interpolators and cell caches are being filled.
	Populating bool
	Cell       Cell

	CacheResultID uint64
	CacheFillID   uint64
	FillIndex     int
}

// IndexMapper maps a fill index to a position. When opts is non-nil the
// mapper also advances the cache identifiers in it.
type IndexMapper interface {
	At(index int, opts *SampleOptions) Pos
}

// MapperFunc adapts a function to IndexMapper.
type MapperFunc func(index int, opts *SampleOptions) Pos

func (f MapperFunc) At(index int, opts *SampleOptions) Pos { return f(index, opts) }

// Component is one entry of a component stack. prefix holds every entry
// below it; a component refers to its inputs by their stack index.
type Component interface {
	Range() Range
	Sample(prefix []Component, pos Pos, opts *SampleOptions) float64
	Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions)
}

// SampleFromStack samples the topmost component of stack.
func SampleFromStack(stack []Component, pos Pos, opts *SampleOptions) float64 {
	last := len(stack) - 1
	return stack[last].Sample(stack[:last], pos, opts)
}

// FillFromStack fills out with the topmost component of stack.
func FillFromStack(stack []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	last := len(stack) - 1
	stack[last].Fill(stack[:last], out, m, opts)
}

// fillIndependent fills from a component that never reads the stack or the
// cache state.
func fillIndependent(c Component, out []float64, m IndexMapper) {
	for i := range out {
		out[i] = c.Sample(nil, m.At(i, nil), nil)
	}
}

func fillDependent(c Component, prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	for i := range out {
		pos := m.At(i, opts)
		out[i] = c.Sample(prefix, pos, opts)
	}
}
