package density

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
)

type constant struct {
	value float64
}

func (c *constant) Range() Range { return Range{c.value, c.value} }

func (c *constant) Sample([]Component, Pos, *SampleOptions) float64 { return c.value }

func (c *constant) Fill(_ []Component, out []float64, _ IndexMapper, _ *SampleOptions) {
	for i := range out {
		out[i] = c.value
	}
}

type noiseFunc struct {
	sampler *noise.DoublePerlin
	xzScale float64
	yScale  float64
}

func (n *noiseFunc) Range() Range {
	m := n.sampler.MaxValue()
	return Range{-m, m}
}

func (n *noiseFunc) Sample(_ []Component, pos Pos, _ *SampleOptions) float64 {
	return n.sampler.Sample(float64(pos.X)*n.xzScale, float64(pos.Y)*n.yScale, float64(pos.Z)*n.xzScale)
}

func (n *noiseFunc) Fill(_ []Component, out []float64, m IndexMapper, _ *SampleOptions) {
	fillIndependent(n, out, m)
}

// shift samples 4*noise(x/4, y/4, z/4) on a permutation of the block axes.
type shift struct {
	sampler *noise.DoublePerlin
	b       bool
}

func (s *shift) Range() Range {
	m := s.sampler.MaxValue() * 4
	return Range{-m, m}
}

func (s *shift) Sample(_ []Component, pos Pos, _ *SampleOptions) float64 {
	x, y, z := float64(pos.X), 0.0, float64(pos.Z)
	if s.b {
		x, y, z = float64(pos.Z), float64(pos.X), 0
	}
	return s.sampler.Sample(x*0.25, y*0.25, z*0.25) * 4
}

func (s *shift) Fill(_ []Component, out []float64, m IndexMapper, _ *SampleOptions) {
	fillIndependent(s, out, m)
}

type shiftedNoise struct {
	x, y, z int
	sampler *noise.DoublePerlin
	xzScale float64
	yScale  float64
}

func (n *shiftedNoise) Range() Range {
	m := n.sampler.MaxValue()
	return Range{-m, m}
}

func (n *shiftedNoise) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	x := float64(float64(pos.X)*n.xzScale) + SampleFromStack(prefix[:n.x+1], pos, opts)
	y := float64(float64(pos.Y)*n.yScale) + SampleFromStack(prefix[:n.y+1], pos, opts)
	z := float64(float64(pos.Z)*n.xzScale) + SampleFromStack(prefix[:n.z+1], pos, opts)
	return n.sampler.Sample(x, y, z)
}

func (n *shiftedNoise) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	fillDependent(n, prefix, out, m, opts)
}

// blendedNoise is the legacy three-octave-set terrain noise.
type blendedNoise struct {
	lower, upper, main *noise.Perlin

	xzMultiplier, yMultiplier float64
	xzFactor, yFactor         float64
	smear                     float64
	maxValue                  float64
}

func (b *blendedNoise) Range() Range { return Range{-b.maxValue, b.maxValue} }

func (b *blendedNoise) Sample(_ []Component, pos Pos, _ *SampleOptions) float64 {
	d := float64(pos.X) * b.xzMultiplier
	e := float64(pos.Y) * b.yMultiplier
	f := float64(pos.Z) * b.xzMultiplier
	g := d / b.xzFactor
	h := e / b.yFactor
	i := f / b.xzFactor
	j := b.yMultiplier * b.smear
	k := j / b.yFactor

	var n float64
	o := 1.0
	for p := 0; p < 8; p++ {
		if oct := b.main.Octave(p); oct != nil {
			n += oct.Sample(noise.Wrap(g*o), noise.Wrap(h*o), noise.Wrap(i*o), k*o, h*o) / o
		}
		o /= 2
	}

	q := (n/10 + 1) / 2
	var l, m float64
	o = 1
	for r := 0; r < 16; r++ {
		s, t, u := noise.Wrap(d*o), noise.Wrap(e*o), noise.Wrap(f*o)
		v := j * o
		if q < 1 {
			if oct := b.lower.Octave(r); oct != nil {
				l += oct.Sample(s, t, u, v, e*o) / o
			}
		}
		if q > 0 {
			if oct := b.upper.Octave(r); oct != nil {
				m += oct.Sample(s, t, u, v, e*o) / o
			}
		}
		o /= 2
	}
	return mathutil.ClampedLerp(l/512, m/512, q) / 128
}

func (b *blendedNoise) Fill(_ []Component, out []float64, m IndexMapper, _ *SampleOptions) {
	fillIndependent(b, out, m)
}

type endIslands struct {
	simplex *noise.Simplex
}

func (e *endIslands) Range() Range { return Range{-0.84375, 0.5625} }

func (e *endIslands) Sample(_ []Component, pos Pos, _ *SampleOptions) float64 {
	return (float64(e.height(pos.X/8, pos.Z/8)) - 8) / 128
}

func (e *endIslands) height(x, z int) float32 {
	i, j := x/2, z/2
	k, l := x%2, z%2
	f := 100 - float32(math32.Sqrt(float32(x*x+z*z))*8)
	f = mathutil.Clamp32(f, -100, 80)
	for m := -12; m <= 12; m++ {
		for n := -12; n <= 12; n++ {
			o, p := int64(i+m), int64(j+n)
			if o*o+p*p <= 4096 || e.simplex.Sample2D(float64(o), float64(p)) >= float64(float32(-0.9)) {
				continue
			}
			g := math32.Mod(float32(math32.Abs(float32(o))*3439)+float32(math32.Abs(float32(p))*147), 13) + 9
			h := float32(k - m*2)
			s := float32(l - n*2)
			t := 100 - float32(math32.Sqrt(float32(h*h)+float32(s*s))*g)
			f = max(f, mathutil.Clamp32(t, -100, 80))
		}
	}
	return f
}

func (e *endIslands) Fill(_ []Component, out []float64, m IndexMapper, _ *SampleOptions) {
	fillIndependent(e, out, m)
}

type yClampedGradient struct {
	fromY, toY         float64
	fromValue, toValue float64
}

func (g *yClampedGradient) Range() Range {
	return Range{min(g.fromValue, g.toValue), max(g.fromValue, g.toValue)}
}

func (g *yClampedGradient) Sample(_ []Component, pos Pos, _ *SampleOptions) float64 {
	return mathutil.ClampedMap(float64(pos.Y), g.fromY, g.toY, g.fromValue, g.toValue)
}

func (g *yClampedGradient) Fill(_ []Component, out []float64, m IndexMapper, _ *SampleOptions) {
	fillIndependent(g, out, m)
}

// mulRange is the bound of a product of two ranges.
func mulRange(a, b Range) Range {
	switch {
	case a.Min > 0 && b.Min > 0:
		return Range{a.Min * b.Min, a.Max * b.Max}
	case a.Max < 0 && b.Max < 0:
		return Range{a.Max * b.Max, a.Min * b.Min}
	default:
		return Range{min(a.Min*b.Max, a.Max*b.Min), max(a.Min*b.Min, a.Max*b.Max)}
	}
}

func binaryRange(op BinaryOp, a, b Range) Range {
	switch op {
	case OpAdd:
		return Range{a.Min + b.Min, a.Max + b.Max}
	case OpMul:
		return mulRange(a, b)
	case OpMin:
		return Range{min(a.Min, b.Min), min(a.Max, b.Max)}
	default:
		return Range{max(a.Min, b.Min), max(a.Max, b.Max)}
	}
}

type linear struct {
	input int
	mul   bool
	arg   float64
	r     Range
}

func (l *linear) Range() Range { return l.r }

func (l *linear) apply(v float64) float64 {
	if l.mul {
		return v * l.arg
	}
	return v + l.arg
}

func (l *linear) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	return l.apply(SampleFromStack(prefix[:l.input+1], pos, opts))
}

func (l *linear) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:l.input+1], out, m, opts)
	for i, v := range out {
		out[i] = l.apply(v)
	}
}

// binaryFunc evaluates b only when it can change the result: never after a
// zero product, and never when a already lies outside b's range for min/max.
type binaryFunc struct {
	op   BinaryOp
	a, b int
	r    Range
}

func (f *binaryFunc) Range() Range { return f.r }

func (f *binaryFunc) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	a := SampleFromStack(prefix[:f.a+1], pos, opts)
	bs := prefix[:f.b+1]
	switch f.op {
	case OpAdd:
		return a + SampleFromStack(bs, pos, opts)
	case OpMul:
		if a == 0 {
			return 0
		}
		return a * SampleFromStack(bs, pos, opts)
	case OpMin:
		if a < prefix[f.b].Range().Min {
			return a
		}
		return min(a, SampleFromStack(bs, pos, opts))
	default:
		if a > prefix[f.b].Range().Max {
			return a
		}
		return max(a, SampleFromStack(bs, pos, opts))
	}
}

func (f *binaryFunc) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:f.a+1], out, m, opts)
	bs := prefix[:f.b+1]
	br := prefix[f.b].Range()
	for i, v := range out {
		switch f.op {
		case OpAdd:
			out[i] = v + SampleFromStack(bs, m.At(i, opts), opts)
		case OpMul:
			if v != 0 {
				out[i] = v * SampleFromStack(bs, m.At(i, opts), opts)
			}
		case OpMin:
			if v >= br.Min {
				out[i] = min(v, SampleFromStack(bs, m.At(i, opts), opts))
			}
		default:
			if v <= br.Max {
				out[i] = max(v, SampleFromStack(bs, m.At(i, opts), opts))
			}
		}
	}
}

func applyUnary(op UnaryOp, v float64) float64 {
	switch op {
	case OpAbs:
		return math.Abs(v)
	case OpSquare:
		return v * v
	case OpCube:
		return v * v * v
	case OpHalfNegative:
		if v > 0 {
			return v
		}
		return v * 0.5
	case OpQuarterNegative:
		if v > 0 {
			return v
		}
		return v * 0.25
	default:
		c := mathutil.Clamp(v, -1, 1)
		return c/2 - c*c*c/24
	}
}

func unaryRange(op UnaryOp, in Range) Range {
	lo, hi := applyUnary(op, in.Min), applyUnary(op, in.Max)
	if op == OpAbs || op == OpSquare {
		return Range{max(in.Min, 0), max(lo, hi)}
	}
	return Range{lo, hi}
}

type unaryFunc struct {
	op    UnaryOp
	input int
	r     Range
}

func (u *unaryFunc) Range() Range { return u.r }

func (u *unaryFunc) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	return applyUnary(u.op, SampleFromStack(prefix[:u.input+1], pos, opts))
}

func (u *unaryFunc) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:u.input+1], out, m, opts)
	for i, v := range out {
		out[i] = applyUnary(u.op, v)
	}
}

type clampFunc struct {
	input  int
	lo, hi float64
}

func (c *clampFunc) Range() Range { return Range{c.lo, c.hi} }

func (c *clampFunc) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	return mathutil.Clamp(SampleFromStack(prefix[:c.input+1], pos, opts), c.lo, c.hi)
}

func (c *clampFunc) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:c.input+1], out, m, opts)
	for i, v := range out {
		out[i] = mathutil.Clamp(v, c.lo, c.hi)
	}
}

type rangeChoice struct {
	input, whenIn, whenOut int
	lo, hi                 float64
	r                      Range
}

func (c *rangeChoice) Range() Range { return c.r }

func (c *rangeChoice) choose(v float64) int {
	if v >= c.lo && v < c.hi {
		return c.whenIn
	}
	return c.whenOut
}

func (c *rangeChoice) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	v := SampleFromStack(prefix[:c.input+1], pos, opts)
	return SampleFromStack(prefix[:c.choose(v)+1], pos, opts)
}

func (c *rangeChoice) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:c.input+1], out, m, opts)
	for i, v := range out {
		out[i] = SampleFromStack(prefix[:c.choose(v)+1], m.At(i, opts), opts)
	}
}

type weirdScaled struct {
	input   int
	sampler *noise.DoublePerlin
	rarity  RarityMapper
}

func (w *weirdScaled) Range() Range {
	m := w.sampler.MaxValue() * w.rarity.maxMultiplier()
	return Range{-m, m}
}

func (w *weirdScaled) scaled(pos Pos, v float64) float64 {
	s := w.rarity.scale(v)
	return s * math.Abs(w.sampler.Sample(float64(pos.X)/s, float64(pos.Y)/s, float64(pos.Z)/s))
}

func (w *weirdScaled) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	return w.scaled(pos, SampleFromStack(prefix[:w.input+1], pos, opts))
}

func (w *weirdScaled) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:w.input+1], out, m, opts)
	for i, v := range out {
		out[i] = w.scaled(m.At(i, opts), v)
	}
}

// passThrough forwards to its input. Wrappers the current stack does not
// cache become one of these.
type passThrough struct {
	input int
	r     Range
}

func (p *passThrough) Range() Range { return p.r }

func (p *passThrough) Sample(prefix []Component, pos Pos, opts *SampleOptions) float64 {
	return SampleFromStack(prefix[:p.input+1], pos, opts)
}

func (p *passThrough) Fill(prefix []Component, out []float64, m IndexMapper, opts *SampleOptions) {
	FillFromStack(prefix[:p.input+1], out, m, opts)
}

// wrapper marks a cache point in the shared stack. On its own it behaves as
// a pass-through.
type wrapper struct {
	passThrough
	kind WrapperType
}
