package sampler

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/router"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
)

// NoSurface is returned when no column sample crosses the surface cutoff.
const NoSurface = math.MaxInt32

const surfaceCutoff = 0.390625

// SurfaceOptions bounds the estimator's column scan.
type SurfaceOptions struct {
	MinY, MaxY int
	Step       int
}

// DefaultSurfaceOptions scans the overworld every 8 blocks.
func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{MinY: -64, MaxY: 320, Step: 8}
}

// SurfaceHeight estimates the preliminary surface of biome aligned columns.
// Results are memoized per column. It is not safe for concurrent use.
type SurfaceHeight struct {
	stack *density.Stack
	root  int
	opts  SurfaceOptions
	cache map[uint64]int
}

// NewSurfaceHeight panics when opts.Step is not positive.
func NewSurfaceHeight(p *density.Proto, stackOpts density.StackOptions, opts SurfaceOptions) *SurfaceHeight {
	if opts.Step <= 0 {
		panic(fmt.Sprintf("sampler: surface scan step %d is not positive", opts.Step))
	}
	s := &SurfaceHeight{
		stack: p.SimpleStack(router.InitialDensityWithoutJaggedness, stackOpts),
		opts:  opts,
		cache: make(map[uint64]int),
	}
	s.root = s.stack.Index(router.InitialDensityWithoutJaggedness)
	return s
}

// EstimateHeight returns the highest scanned y of the column holding block
// (x, z) where the initial density exceeds the cutoff, or NoSurface.
func (s *SurfaceHeight) EstimateHeight(x, z int) int {
	x = mathutil.BiomeToBlock(mathutil.BiomeFromBlock(x))
	z = mathutil.BiomeToBlock(mathutil.BiomeFromBlock(z))
	key := mathutil.PackColumn(x, z)
	if h, ok := s.cache[key]; ok {
		return h
	}
	h := s.scan(x, z)
	s.cache[key] = h
	return h
}

func (s *SurfaceHeight) scan(x, z int) int {
	for y := s.opts.MaxY; y >= s.opts.MinY; y -= s.opts.Step {
		if s.stack.Sample(s.root, density.Pos{X: x, Y: y, Z: z}, nil) > surfaceCutoff {
			return y
		}
	}
	return NoSurface
}
