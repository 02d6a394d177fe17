// Package random implements the seeded pseudo-random sources world generation
// depends on. Both sources reproduce their reference sequences bit for bit.
package random

// Source is a seeded random number generator.
type Source interface {
	NextInt() int32
	// NextIntn returns a value in [0, bound). bound must be positive.
	NextIntn(bound int32) int32
	NextLong() int64
	NextBool() bool
	NextFloat() float32
	NextDouble() float64
	NextGaussian() float64
	// Skip advances the source by n integer draws.
	Skip(n int)
	// Fork returns an independent source seeded from this one.
	Fork() Source
	// ForkPositional returns a splitter seeded from this one.
	ForkPositional() Positional
}

// Positional derives sources from block positions or names.
type Positional interface {
	At(x, y, z int) Source
	FromHashOf(name string) Source
}

const (
	floatUnit = float32(5.9604645e-8)
)

// doubleUnit is a float literal widened to double, exactly as the reference does.
var doubleUnit = float64(float32(1.110223e-16))

// gaussian implements the Marsaglia polar method shared by both sources.
type gaussian struct {
	next    float64
	hasNext bool
}

func (g *gaussian) sample(nextDouble func() float64) float64 {
	if g.hasNext {
		g.hasNext = false
		return g.next
	}
	for {
		d := 2*nextDouble() - 1
		e := 2*nextDouble() - 1
		f := d*d + e*e
		if f < 1 && f != 0 {
			m := sqrt(-2 * log(f) / f)
			g.next = e * m
			g.hasNext = true
			return d * m
		}
	}
}

func (g *gaussian) reset() {
	g.hasNext = false
}
