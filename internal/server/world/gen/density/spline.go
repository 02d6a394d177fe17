package density

import (
	"fmt"
	"math"
	"sort"
)

// Spline is a cubic Hermite spline over a coordinate function. Point values
// are either fixed or nested splines.
type Spline struct {
	coordinate *Function
	points     []SplinePoint
}

type SplinePoint struct {
	Location   float32
	Value      SplineValue
	Derivative float32
}

// SplineValue is a fixed value or a nested spline.
type SplineValue struct {
	fixed  float32
	spline *Spline
}

func Fixed(v float32) SplineValue { return SplineValue{fixed: v} }

func (s *Spline) Value() SplineValue { return SplineValue{spline: s} }

func (s *Spline) Coordinate() *Function { return s.coordinate }

func (s *Spline) Points() []SplinePoint { return s.points }

// SplineBuilder collects points in ascending location order.
type SplineBuilder struct {
	coordinate *Function
	points     []SplinePoint
}

func NewSpline(coordinate *Function) *SplineBuilder {
	return &SplineBuilder{coordinate: coordinate}
}

// Add appends a point with zero derivative.
func (b *SplineBuilder) Add(location float32, v SplineValue) *SplineBuilder {
	return b.AddD(location, v, 0)
}

// AddD appends a point. It panics if location does not ascend.
func (b *SplineBuilder) AddD(location float32, v SplineValue, derivative float32) *SplineBuilder {
	if n := len(b.points); n > 0 && location <= b.points[n-1].Location {
		panic(fmt.Sprintf("density: spline point %v registered after %v", location, b.points[n-1].Location))
	}
	b.points = append(b.points, SplinePoint{Location: location, Value: v, Derivative: derivative})
	return b
}

// Build panics on an empty spline.
func (b *SplineBuilder) Build() *Spline {
	if len(b.points) == 0 {
		panic("density: spline without points")
	}
	return &Spline{coordinate: b.coordinate, points: b.points}
}

// compiledSpline is a spline bound to stack indices.
type compiledSpline struct {
	input       int
	fixed       float32
	locations   []float32
	values      []*compiledSpline
	derivatives []float32
	min, max    float32
}

func (s *compiledSpline) leaf() bool { return s.values == nil }

// linearExtend continues the curve past an end point along its derivative.
func linearExtend(loc float32, locations []float32, v float32, derivatives []float32, i int) float32 {
	d := derivatives[i]
	if d == 0 {
		return v
	}
	return v + float32(d*(loc-locations[i]))
}

func lerp32(delta, start, end float32) float32 {
	return start + float32(delta*(end-start))
}

// findInterval returns the index of the last location <= loc, or -1.
func findInterval(locations []float32, loc float32) int {
	return sort.Search(len(locations), func(i int) bool { return loc < locations[i] }) - 1
}

func (s *compiledSpline) sample(prefix []Component, pos Pos, opts *SampleOptions) float32 {
	if s.leaf() {
		return s.fixed
	}
	loc := float32(SampleFromStack(prefix[:s.input+1], pos, opts))
	i := findInterval(s.locations, loc)
	last := len(s.locations) - 1
	if i < 0 {
		return linearExtend(loc, s.locations, s.values[0].sample(prefix, pos, opts), s.derivatives, 0)
	}
	if i == last {
		return linearExtend(loc, s.locations, s.values[last].sample(prefix, pos, opts), s.derivatives, last)
	}

	g, h := s.locations[i], s.locations[i+1]
	k := (loc - g) / (h - g)
	p := s.values[i].sample(prefix, pos, opts)
	q := s.values[i+1].sample(prefix, pos, opts)
	r := float32(s.derivatives[i]*(h-g)) - (q - p)
	t := float32(-s.derivatives[i+1]*(h-g)) + (q - p)
	return lerp32(k, p, q) + float32(float32(k*(1-k))*lerp32(k, r, t))
}

// bounds computes the value range of a spline whose coordinate spans
// [cmin, cmax]. Nested bounds must already be set.
func (s *compiledSpline) bounds(cmin, cmax float32) {
	if s.leaf() {
		s.min, s.max = s.fixed, s.fixed
		return
	}
	last := len(s.locations) - 1
	lo := float32(math.Inf(1))
	hi := float32(math.Inf(-1))

	if cmin < s.locations[0] {
		a := linearExtend(cmin, s.locations, s.values[0].min, s.derivatives, 0)
		b := linearExtend(cmin, s.locations, s.values[0].max, s.derivatives, 0)
		lo = min(lo, a, b)
		hi = max(hi, a, b)
	}
	if cmax > s.locations[last] {
		a := linearExtend(cmax, s.locations, s.values[last].min, s.derivatives, last)
		b := linearExtend(cmax, s.locations, s.values[last].max, s.derivatives, last)
		lo = min(lo, a, b)
		hi = max(hi, a, b)
	}
	for _, v := range s.values {
		lo = min(lo, v.min)
		hi = max(hi, v.max)
	}
	for m := 0; m < last; m++ {
		t, u := s.derivatives[m], s.derivatives[m+1]
		if t == 0 && u == 0 {
			continue
		}
		o := s.locations[m+1] - s.locations[m]
		p, q := s.values[m].min, s.values[m].max
		r, w2 := s.values[m+1].min, s.values[m+1].max
		v := t * o
		w := u * o
		x := min(p, r)
		y := max(q, w2)
		z := v - w2 + p
		aa := v - r + q
		ab := -w + r - q
		ac := -w + w2 - p
		lo = min(lo, x+float32(0.25*min(z, ab)))
		hi = max(hi, y+float32(0.25*max(aa, ac)))
	}
	s.min, s.max = lo, hi
}

type splineFunc struct {
	spline *compiledSpline
}

func (f *splineFunc) Range() Range {
	return Range{Min: float64(f.spline.min), Max: float64(f.spline.max)}
}

func (f *splineFunc) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	return float64(f.spline.sample(prefix, pos, opts))
}

func (f *splineFunc) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	fillDependent(f, prefix, out, m, opts)
}
