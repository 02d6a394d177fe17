package noise

import (
	"fmt"
	"math"
	"sort"

	"github.com/OCharnyshevich/worldgen-server/pkg/random"
)

const wrapPeriod = 33554432.0

// Wrap folds d into [-2^24, 2^24] so octave inputs keep their precision.
func Wrap(d float64) float64 {
	return d - math.Floor(d/wrapPeriod+0.5)*wrapPeriod
}

// Perlin sums octaves of Improved noise, halving amplitude per octave.
type Perlin struct {
	octaves     []*Improved
	amplitudes  []float64
	firstOctave int

	lowestFreqInputFactor float64
	lowestFreqValueFactor float64
	maxValue              float64
}

// NewPerlin builds an octave noise starting at firstOctave. The modern
// initialization derives each octave from a positional hash of its index; the
// legacy one draws every octave from r in sequence, skipping silent octaves.
func NewPerlin(r random.Source, firstOctave int, amplitudes []float64, legacy bool) *Perlin {
	count := len(amplitudes)
	j := -firstOctave
	p := &Perlin{
		octaves:     make([]*Improved, count),
		amplitudes:  amplitudes,
		firstOctave: firstOctave,
	}

	if legacy {
		first := NewImproved(r)
		if j >= 0 && j < count && amplitudes[j] != 0 {
			p.octaves[j] = first
		}
		for k := j - 1; k >= 0; k-- {
			if k < count && amplitudes[k] != 0 {
				p.octaves[k] = NewImproved(r)
			} else {
				r.Skip(262)
			}
		}
		if j < count-1 {
			panic(fmt.Sprintf("noise: positive octaves are not supported (first octave %d, %d amplitudes)", firstOctave, count))
		}
	} else {
		splitter := r.ForkPositional()
		for k, a := range amplitudes {
			if a != 0 {
				p.octaves[k] = NewImproved(splitter.FromHashOf(fmt.Sprintf("octave_%d", firstOctave+k)))
			}
		}
	}

	p.lowestFreqInputFactor = math.Pow(2, float64(-j))
	p.lowestFreqValueFactor = math.Pow(2, float64(count-1)) / (math.Pow(2, float64(count)) - 1)
	p.maxValue = p.EdgeValue(2)
	return p
}

// AmplitudesFromOctaves converts a set of octave indices into a first octave
// and a dense amplitude list with 1 at every listed octave.
func AmplitudesFromOctaves(octaves []int) (int, []float64) {
	if len(octaves) == 0 {
		panic("noise: need some octaves")
	}
	sorted := append([]int(nil), octaves...)
	sort.Ints(sorted)
	first := sorted[0]
	last := sorted[len(sorted)-1]
	amplitudes := make([]float64, last-first+1)
	for _, o := range sorted {
		amplitudes[o-first] = 1
	}
	return first, amplitudes
}

// Sample returns the summed noise at (x, y, z).
func (p *Perlin) Sample(x, y, z float64) float64 {
	var sum float64
	freq := p.lowestFreqInputFactor
	amp := p.lowestFreqValueFactor
	for i, o := range p.octaves {
		if o != nil {
			v := o.Sample(Wrap(x*freq), Wrap(y*freq), Wrap(z*freq), 0, 0)
			sum += p.amplitudes[i] * v * amp
		}
		freq *= 2
		amp /= 2
	}
	return sum
}

// Octave returns the i-th octave counted from the highest frequency, or nil.
func (p *Perlin) Octave(i int) *Improved {
	return p.octaves[len(p.octaves)-1-i]
}

// EdgeValue bounds the sum assuming every octave returns d.
func (p *Perlin) EdgeValue(d float64) float64 {
	var sum float64
	amp := p.lowestFreqValueFactor
	for i, o := range p.octaves {
		if o != nil {
			sum += p.amplitudes[i] * d * amp
		}
		amp /= 2
	}
	return sum
}

// MaxBrokenValue is the bound used by the blended terrain noise.
func (p *Perlin) MaxBrokenValue(d float64) float64 {
	return p.EdgeValue(d + 2)
}

func (p *Perlin) MaxValue() float64 { return p.maxValue }

func (p *Perlin) FirstOctave() int { return p.firstOctave }

func (p *Perlin) Amplitudes() []float64 { return p.amplitudes }
