package noise

import (
	"math"

	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/random"
)

var (
	skew2   = 0.5 * (math.Sqrt(3) - 1)
	unskew2 = (3 - math.Sqrt(3)) / 6
)

// Simplex produces 2D simplex noise from a seeded permutation table.
type Simplex struct {
	perm       [512]int
	XO, YO, ZO float64
}

// NewSimplex draws the offsets and the permutation from r.
func NewSimplex(r random.Source) *Simplex {
	s := &Simplex{
		XO: r.NextDouble() * 256,
		YO: r.NextDouble() * 256,
		ZO: r.NextDouble() * 256,
	}
	for i := range 256 {
		s.perm[i] = i
	}
	for i := range 256 {
		j := int(r.NextIntn(int32(256 - i)))
		s.perm[i], s.perm[i+j] = s.perm[i+j], s.perm[i]
	}
	return s
}

func (s *Simplex) p(i int) int {
	return s.perm[i&0xFF]
}

func cornerNoise(g int, x, y, z, falloff float64) float64 {
	t := falloff - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * grad(g, x, y, z)
}

// Sample2D returns 2D simplex noise at (x, y), roughly in [-1, 1].
func (s *Simplex) Sample2D(x, y float64) float64 {
	f := (x + y) * skew2
	i := mathutil.Floor(x + f)
	j := mathutil.Floor(y + f)
	g := float64(i+j) * unskew2
	x0 := x - (float64(i) - g)
	y0 := y - (float64(j) - g)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii := i & 0xFF
	jj := j & 0xFF
	g0 := s.p(ii+s.p(jj)) % 12
	g1 := s.p(ii+i1+s.p(jj+j1)) % 12
	g2 := s.p(ii+1+s.p(jj+1)) % 12

	n0 := cornerNoise(g0, x0, y0, 0, 0.5)
	n1 := cornerNoise(g1, x1, y1, 0, 0.5)
	n2 := cornerNoise(g2, x2, y2, 0, 0.5)
	return 70 * (n0 + n1 + n2)
}
