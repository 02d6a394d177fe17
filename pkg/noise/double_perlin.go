package noise

import (
	"math"

	"github.com/OCharnyshevich/worldgen-server/pkg/random"
)

const secondInputFactor = 1.0181268882175227

// DoublePerlin averages two octave noises sampled at slightly different scales.
type DoublePerlin struct {
	first, second *Perlin
	valueFactor   float64
	maxValue      float64
	params        Params
}

// NewDoublePerlin builds a double Perlin noise with modern octave seeding.
func NewDoublePerlin(r random.Source, p Params) *DoublePerlin {
	return newDoublePerlin(r, p, false)
}

// NewLegacyDoublePerlin seeds both octave noises sequentially from r.
func NewLegacyDoublePerlin(r random.Source, p Params) *DoublePerlin {
	return newDoublePerlin(r, p, true)
}

func newDoublePerlin(r random.Source, p Params, legacy bool) *DoublePerlin {
	first := NewPerlin(r, p.FirstOctave, p.Amplitudes, legacy)
	second := NewPerlin(r, p.FirstOctave, p.Amplitudes, legacy)

	lo, hi := math.MaxInt, math.MinInt
	for i, a := range p.Amplitudes {
		if a != 0 {
			lo = min(lo, i)
			hi = max(hi, i)
		}
	}
	factor := (1.0 / 6.0) / expectedDeviation(hi-lo)
	return &DoublePerlin{
		first:       first,
		second:      second,
		valueFactor: factor,
		maxValue:    (first.MaxValue() + second.MaxValue()) * factor,
		params:      p,
	}
}

func expectedDeviation(octaves int) float64 {
	return 0.1 * (1 + 1/float64(octaves+1))
}

func (d *DoublePerlin) Sample(x, y, z float64) float64 {
	sx := x * secondInputFactor
	sy := y * secondInputFactor
	sz := z * secondInputFactor
	return (d.first.Sample(x, y, z) + d.second.Sample(sx, sy, sz)) * d.valueFactor
}

func (d *DoublePerlin) MaxValue() float64 { return d.maxValue }

func (d *DoublePerlin) Params() Params { return d.params }
