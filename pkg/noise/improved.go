package noise

import (
	"math"

	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/random"
)

// gradients are the 12 cube-edge directions padded to 16 entries.
var gradients = [16][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
	{1, 1, 0}, {0, -1, 1}, {-1, 1, 0}, {0, -1, -1},
}

var yEpsilon = float64(float32(1e-7))

// Improved is a single octave of improved Perlin noise.
type Improved struct {
	perm       [256]uint8
	XO, YO, ZO float64
}

// NewImproved draws the origin offset and permutation table from r.
func NewImproved(r random.Source) *Improved {
	n := &Improved{
		XO: r.NextDouble() * 256,
		YO: r.NextDouble() * 256,
		ZO: r.NextDouble() * 256,
	}
	for i := range n.perm {
		n.perm[i] = uint8(i)
	}
	for i := range 256 {
		j := int(r.NextIntn(int32(256 - i)))
		n.perm[i], n.perm[i+j] = n.perm[i+j], n.perm[i]
	}
	return n
}

func (n *Improved) p(i int) int {
	return int(n.perm[i&0xFF])
}

// Sample evaluates the noise at (x, y, z). A non-zero yScale quantizes the
// y lattice offset, clamped to yMax when 0 <= yMax < the fractional y.
func (n *Improved) Sample(x, y, z, yScale, yMax float64) float64 {
	dx := x + n.XO
	dy := y + n.YO
	dz := z + n.ZO
	ix := mathutil.Floor(dx)
	iy := mathutil.Floor(dy)
	iz := mathutil.Floor(dz)
	fx := dx - float64(ix)
	fy := dy - float64(iy)
	fz := dz - float64(iz)

	var shift float64
	if yScale != 0 {
		r := fy
		if yMax >= 0 && yMax < fy {
			r = yMax
		}
		shift = math.Floor(r/yScale+yEpsilon) * yScale
	}
	return n.sampleAndLerp(ix, iy, iz, fx, fy-shift, fz, fy)
}

func (n *Improved) sampleAndLerp(x, y, z int, dx, dy, dz, fadeY float64) float64 {
	i := n.p(x)
	j := n.p(x + 1)
	k := n.p(i + y)
	l := n.p(i + y + 1)
	m := n.p(j + y)
	o := n.p(j + y + 1)

	d000 := grad(n.p(k+z), dx, dy, dz)
	d100 := grad(n.p(m+z), dx-1, dy, dz)
	d010 := grad(n.p(l+z), dx, dy-1, dz)
	d110 := grad(n.p(o+z), dx-1, dy-1, dz)
	d001 := grad(n.p(k+z+1), dx, dy, dz-1)
	d101 := grad(n.p(m+z+1), dx-1, dy, dz-1)
	d011 := grad(n.p(l+z+1), dx, dy-1, dz-1)
	d111 := grad(n.p(o+z+1), dx-1, dy-1, dz-1)

	return mathutil.Lerp3(
		mathutil.Smoothstep(dx), mathutil.Smoothstep(fadeY), mathutil.Smoothstep(dz),
		d000, d100, d010, d110, d001, d101, d011, d111,
	)
}

func grad(hash int, x, y, z float64) float64 {
	g := gradients[hash&15]
	return g[0]*x + g[1]*y + g[2]*z
}
