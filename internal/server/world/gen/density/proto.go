package density

import (
	"fmt"

	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
	"github.com/OCharnyshevich/worldgen-server/pkg/random"
)

// WorldRandom holds the positional random factories derived from a seed.
type WorldRandom struct {
	Seed    int64
	Base    random.Positional
	Aquifer random.Positional
	Ore     random.Positional
}

func NewWorldRandom(seed int64) WorldRandom {
	base := random.NewXoroshiro(seed).ForkPositional()
	return WorldRandom{
		Seed:    seed,
		Base:    base,
		Aquifer: base.FromHashOf("minecraft:aquifer").ForkPositional(),
		Ore:     base.FromHashOf("minecraft:ore").ForkPositional(),
	}
}

// Root names a function whose value callers read from a stack.
type Root struct {
	Name string
	Fn   *Function
}

// Proto is a seeded, compiled set of density functions. It is immutable and
// safe to share between goroutines; per-chunk state lives in a Stack.
type Proto struct {
	Random     WorldRandom
	components []Component
	roots      map[string]int
	names      []string
}

type compiler struct {
	rnd        WorldRandom
	params     noise.Registry
	noises     map[string]*noise.DoublePerlin
	seen       map[*Function]int
	splines    map[*Spline]*compiledSpline
	components []Component
}

// NewProto compiles roots against seed. Shared subtrees compile once. It
// panics when a function names a noise missing from params.
func NewProto(seed int64, params noise.Registry, roots []Root) *Proto {
	c := &compiler{
		rnd:     NewWorldRandom(seed),
		params:  params,
		noises:  make(map[string]*noise.DoublePerlin),
		seen:    make(map[*Function]int),
		splines: make(map[*Spline]*compiledSpline),
	}
	p := &Proto{Random: c.rnd, roots: make(map[string]int, len(roots))}
	for _, r := range roots {
		if _, dup := p.roots[r.Name]; dup {
			panic(fmt.Sprintf("density: duplicate root %q", r.Name))
		}
		p.roots[r.Name] = c.compile(r.Fn)
		p.names = append(p.names, r.Name)
	}
	p.components = c.components
	return p
}

// Index returns the stack index of a root. It panics on unknown names.
func (p *Proto) Index(name string) int {
	i, ok := p.roots[name]
	if !ok {
		panic(fmt.Sprintf("density: unknown root %q", name))
	}
	return i
}

func (p *Proto) Roots() []string { return p.names }

func (p *Proto) Len() int { return len(p.components) }

// Range returns the value bound of a root.
func (p *Proto) Range(name string) Range {
	return p.components[p.Index(name)].Range()
}

// Sample evaluates a root with every cache marker read through. The result
// matches a skip-cache sample of any stack built from p.
func (p *Proto) Sample(name string, pos Pos) float64 {
	return SampleFromStack(p.components[:p.Index(name)+1], pos, &SampleOptions{})
}

func (c *compiler) noise(id string) *noise.DoublePerlin {
	if n, ok := c.noises[id]; ok {
		return n
	}
	n := noise.NewDoublePerlin(c.rnd.Base.FromHashOf(id), c.params.Get(id))
	c.noises[id] = n
	return n
}

func (c *compiler) push(comp Component) int {
	c.components = append(c.components, comp)
	return len(c.components) - 1
}

func (c *compiler) rangeOf(i int) Range { return c.components[i].Range() }

func (c *compiler) compile(f *Function) int {
	if i, ok := c.seen[f]; ok {
		return i
	}
	i := c.push(c.build(f))
	c.seen[f] = i
	return i
}

func (c *compiler) build(f *Function) Component {
	switch f.kind {
	case KindConstant:
		return &constant{value: f.value}
	case KindBlendAlpha:
		return &constant{value: 1}
	case KindBlendOffset, KindBeardifier:
		return &constant{value: 0}
	case KindNoise:
		return &noiseFunc{sampler: c.noise(f.noise), xzScale: f.xzScale, yScale: f.yScale}
	case KindShiftA, KindShiftB:
		return &shift{sampler: c.noise(f.noise), b: f.kind == KindShiftB}
	case KindShiftedNoise:
		x := c.compile(f.inputs[0])
		y := c.compile(f.inputs[1])
		z := c.compile(f.inputs[2])
		return &shiftedNoise{x: x, y: y, z: z, sampler: c.noise(f.noise), xzScale: f.xzScale, yScale: f.yScale}
	case KindBlendedNoise:
		return c.blendedNoise(f.blended)
	case KindEndIslands:
		r := random.NewLegacy(c.rnd.Seed)
		r.Skip(17292)
		return &endIslands{simplex: noise.NewSimplex(r)}
	case KindYClampedGradient:
		return &yClampedGradient{
			fromY:     float64(f.fromY),
			toY:       float64(f.toY),
			fromValue: f.fromValue,
			toValue:   f.toValue,
		}
	case KindBinary:
		a := c.compile(f.inputs[0])
		b := c.compile(f.inputs[1])
		return &binaryFunc{op: f.binary, a: a, b: b, r: binaryRange(f.binary, c.rangeOf(a), c.rangeOf(b))}
	case KindLinear:
		in := c.compile(f.inputs[0])
		arg := Range{f.value, f.value}
		return &linear{input: in, mul: f.binary == OpMul, arg: f.value, r: binaryRange(f.binary, c.rangeOf(in), arg)}
	case KindUnary:
		in := c.compile(f.inputs[0])
		return &unaryFunc{op: f.unary, input: in, r: unaryRange(f.unary, c.rangeOf(in))}
	case KindClamp:
		return &clampFunc{input: c.compile(f.inputs[0]), lo: f.lo, hi: f.hi}
	case KindRangeChoice:
		in := c.compile(f.inputs[0])
		whenIn := c.compile(f.inputs[1])
		whenOut := c.compile(f.inputs[2])
		a, b := c.rangeOf(whenIn), c.rangeOf(whenOut)
		return &rangeChoice{
			input:   in,
			whenIn:  whenIn,
			whenOut: whenOut,
			lo:      f.lo,
			hi:      f.hi,
			r:       Range{min(a.Min, b.Min), max(a.Max, b.Max)},
		}
	case KindWeirdScaled:
		return &weirdScaled{input: c.compile(f.inputs[0]), sampler: c.noise(f.noise), rarity: f.rarity}
	case KindSpline:
		return &splineFunc{spline: c.spline(f.spline)}
	case KindWrapper:
		in := c.compile(f.inputs[0])
		return &wrapper{passThrough: passThrough{input: in, r: c.rangeOf(in)}, kind: f.wrapper}
	case KindBlendDensity:
		in := c.compile(f.inputs[0])
		return &passThrough{input: in, r: c.rangeOf(in)}
	}
	panic(fmt.Sprintf("density: unknown function kind %d", f.kind))
}

func (c *compiler) blendedNoise(cfg BlendedNoiseConfig) Component {
	r := c.rnd.Base.FromHashOf("minecraft:terrain")
	first, lowerAmps := noise.AmplitudesFromOctaves(octaveRange(-15, 0))
	lower := noise.NewPerlin(r, first, lowerAmps, true)
	upper := noise.NewPerlin(r, first, lowerAmps, true)
	first, mainAmps := noise.AmplitudesFromOctaves(octaveRange(-7, 0))
	main := noise.NewPerlin(r, first, mainAmps, true)

	b := &blendedNoise{
		lower:        lower,
		upper:        upper,
		main:         main,
		xzMultiplier: 684.412 * cfg.XZScale,
		yMultiplier:  684.412 * cfg.YScale,
		xzFactor:     cfg.XZFactor,
		yFactor:      cfg.YFactor,
		smear:        cfg.SmearScale,
	}
	b.maxValue = lower.MaxBrokenValue(b.yMultiplier)
	return b
}

func octaveRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for o := from; o <= to; o++ {
		out = append(out, o)
	}
	return out
}

// spline compiles every coordinate of s and its nested splines, then binds
// the tree to their indices and computes its bounds bottom up.
func (c *compiler) spline(s *Spline) *compiledSpline {
	if cs, ok := c.splines[s]; ok {
		return cs
	}
	in := c.compile(s.coordinate)
	cs := &compiledSpline{
		input:       in,
		locations:   make([]float32, len(s.points)),
		values:      make([]*compiledSpline, len(s.points)),
		derivatives: make([]float32, len(s.points)),
	}
	for i, p := range s.points {
		cs.locations[i] = p.Location
		cs.derivatives[i] = p.Derivative
		if p.Value.spline != nil {
			cs.values[i] = c.spline(p.Value.spline)
		} else {
			leaf := &compiledSpline{fixed: p.Value.fixed}
			leaf.bounds(0, 0)
			cs.values[i] = leaf
		}
	}
	r := c.rangeOf(in)
	cs.bounds(float32(r.Min), float32(r.Max))
	c.splines[s] = cs
	return cs
}
