// Package density builds and evaluates density functions: scalar fields over
// block positions composed from noises, arithmetic, splines and caches.
//
// A Function tree is seed independent. NewProto compiles named roots against
// a world seed into a flat component stack shared read-only by every chunk.
// Each chunk then materializes its own Stack on top of it, replacing the cache
// markers with mutable per-chunk caches.
package density

// Kind identifies the node type of a Function.
type Kind uint8

const (
	KindConstant Kind = iota
	KindNoise
	KindShiftA
	KindShiftB
	KindShiftedNoise
	KindBlendedNoise
	KindEndIslands
	KindYClampedGradient
	KindBinary
	KindLinear
	KindUnary
	KindClamp
	KindRangeChoice
	KindWeirdScaled
	KindSpline
	KindWrapper
	KindBlendAlpha
	KindBlendOffset
	KindBlendDensity
	KindBeardifier
)

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpMul
	OpMin
	OpMax
)

type UnaryOp uint8

const (
	OpAbs UnaryOp = iota
	OpSquare
	OpCube
	OpHalfNegative
	OpQuarterNegative
	OpSqueeze
)

// WrapperType selects the per-chunk cache a wrapper turns into.
type WrapperType uint8

const (
	Interpolated WrapperType = iota
	FlatCache
	Cache2D
	CacheOnce
	CellCache
)

func (w WrapperType) String() string {
	switch w {
	case Interpolated:
		return "interpolated"
	case FlatCache:
		return "flat_cache"
	case Cache2D:
		return "cache_2d"
	case CacheOnce:
		return "cache_once"
	case CellCache:
		return "cache_all_in_cell"
	}
	return "unknown"
}

// RarityMapper turns a cave input value into a noise scale.
type RarityMapper uint8

const (
	// Tunnels is the spaghetti tunnel mapping.
	Tunnels RarityMapper = iota
	// Caves is the spaghetti cave mapping.
	Caves
)

func (m RarityMapper) scale(v float64) float64 {
	if m == Tunnels {
		switch {
		case v < -0.5:
			return 0.75
		case v < 0:
			return 1
		case v < 0.5:
			return 1.5
		default:
			return 2
		}
	}
	switch {
	case v < -0.75:
		return 0.5
	case v < -0.5:
		return 0.75
	case v < 0.5:
		return 1
	case v < 0.75:
		return 2
	default:
		return 3
	}
}

func (m RarityMapper) maxMultiplier() float64 {
	if m == Tunnels {
		return 2
	}
	return 3
}

// BlendedNoiseConfig configures the legacy blended terrain noise.
type BlendedNoiseConfig struct {
	XZScale, YScale   float64
	XZFactor, YFactor float64
	SmearScale        float64
}

// Function is a node of a density function tree. Nodes are immutable once
// built and may be shared; sharing a node shares its compiled component.
type Function struct {
	kind   Kind
	inputs []*Function

	value   float64
	binary  BinaryOp
	unary   UnaryOp
	wrapper WrapperType
	rarity  RarityMapper

	noise   string
	xzScale float64
	yScale  float64

	fromY, toY         int
	fromValue, toValue float64

	lo, hi float64

	blended BlendedNoiseConfig
	spline  *Spline
}

func (f *Function) Kind() Kind { return f.kind }

// Constant returns a function with the same value everywhere.
func Constant(v float64) *Function {
	return &Function{kind: KindConstant, value: v}
}

// Noise samples the named noise at (x*xzScale, y*yScale, z*xzScale).
func Noise(id string, xzScale, yScale float64) *Function {
	return &Function{kind: KindNoise, noise: id, xzScale: xzScale, yScale: yScale}
}

// ShiftA samples 4*noise(x/4, 0, z/4).
func ShiftA(id string) *Function {
	return &Function{kind: KindShiftA, noise: id}
}

// ShiftB samples 4*noise(z/4, x/4, 0).
func ShiftB(id string) *Function {
	return &Function{kind: KindShiftB, noise: id}
}

// ShiftedNoise samples the named noise with its coordinates offset by the
// three shift functions.
func ShiftedNoise(shiftX, shiftY, shiftZ *Function, xzScale, yScale float64, id string) *Function {
	return &Function{
		kind:    KindShiftedNoise,
		inputs:  []*Function{shiftX, shiftY, shiftZ},
		noise:   id,
		xzScale: xzScale,
		yScale:  yScale,
	}
}

func BlendedNoise(cfg BlendedNoiseConfig) *Function {
	return &Function{kind: KindBlendedNoise, blended: cfg}
}

// EndIslands is the end dimension island field.
func EndIslands() *Function {
	return &Function{kind: KindEndIslands}
}

// YClampedGradient maps y from [fromY, toY] onto [fromValue, toValue],
// clamping outside.
func YClampedGradient(fromY, toY int, fromValue, toValue float64) *Function {
	return &Function{kind: KindYClampedGradient, fromY: fromY, toY: toY, fromValue: fromValue, toValue: toValue}
}

func binary(op BinaryOp, a, b *Function) *Function {
	if op == OpAdd || op == OpMul {
		if a.kind == KindConstant {
			return &Function{kind: KindLinear, binary: op, inputs: []*Function{b}, value: a.value}
		}
		if b.kind == KindConstant {
			return &Function{kind: KindLinear, binary: op, inputs: []*Function{a}, value: b.value}
		}
	}
	return &Function{kind: KindBinary, binary: op, inputs: []*Function{a, b}}
}

// Add and Mul with a constant operand fold into a single linear node.
func Add(a, b *Function) *Function { return binary(OpAdd, a, b) }

func Mul(a, b *Function) *Function { return binary(OpMul, a, b) }

func Min(a, b *Function) *Function { return binary(OpMin, a, b) }

func Max(a, b *Function) *Function { return binary(OpMax, a, b) }

// Lerp interpolates from a to b by delta, in the form the terrain router uses.
func Lerp(delta, a, b *Function) *Function {
	if a.kind == KindConstant {
		return Add(Mul(delta, Add(b, Constant(-a.value))), a)
	}
	d := delta.CacheOnce()
	inv := Add(Mul(d, Constant(-1)), Constant(1))
	return Add(Mul(a, inv), Mul(b, d))
}

func (f *Function) unaryOp(op UnaryOp) *Function {
	return &Function{kind: KindUnary, unary: op, inputs: []*Function{f}}
}

func (f *Function) Abs() *Function { return f.unaryOp(OpAbs) }
func (f *Function) Square() *Function { return f.unaryOp(OpSquare) }
func (f *Function) Cube() *Function { return f.unaryOp(OpCube) }
func (f *Function) HalfNegative() *Function { return f.unaryOp(OpHalfNegative) }
func (f *Function) QuarterNegative() *Function { return f.unaryOp(OpQuarterNegative) }
func (f *Function) Squeeze() *Function { return f.unaryOp(OpSqueeze) }

func (f *Function) Clamp(lo, hi float64) *Function {
	return &Function{kind: KindClamp, inputs: []*Function{f}, lo: lo, hi: hi}
}

// RangeChoice evaluates whenIn where lo <= input < hi and whenOut elsewhere.
func RangeChoice(input *Function, lo, hi float64, whenIn, whenOut *Function) *Function {
	return &Function{kind: KindRangeChoice, inputs: []*Function{input, whenIn, whenOut}, lo: lo, hi: hi}
}

// WeirdScaled samples the named noise at a scale picked from the input value.
func WeirdScaled(input *Function, id string, rarity RarityMapper) *Function {
	return &Function{kind: KindWeirdScaled, inputs: []*Function{input}, noise: id, rarity: rarity}
}

func SplineFunc(s *Spline) *Function {
	return &Function{kind: KindSpline, spline: s}
}

func wrap(w WrapperType, f *Function) *Function {
	return &Function{kind: KindWrapper, wrapper: w, inputs: []*Function{f}}
}

func (f *Function) Interpolated() *Function { return wrap(Interpolated, f) }
func (f *Function) FlatCache() *Function { return wrap(FlatCache, f) }
func (f *Function) Cache2D() *Function { return wrap(Cache2D, f) }
func (f *Function) CacheOnce() *Function { return wrap(CacheOnce, f) }
func (f *Function) CellCache() *Function { return wrap(CellCache, f) }

// BlendAlpha, BlendOffset and BlendDensity are the old-terrain blending
// hooks. Without blending data they are 1, 0 and the identity.
func BlendAlpha() *Function { return &Function{kind: KindBlendAlpha} }
func BlendOffset() *Function { return &Function{kind: KindBlendOffset} }

func BlendDensity(f *Function) *Function {
	return &Function{kind: KindBlendDensity, inputs: []*Function{f}}
}

// Beardifier is the structure terrain adaptation hook. It contributes zero.
func Beardifier() *Function { return &Function{kind: KindBeardifier} }
