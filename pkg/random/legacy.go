package random

const (
	lcgMultiplier int64 = 0x5DEECE66D
	lcgAddend     int64 = 0xB
	lcgMask       int64 = 1<<48 - 1
)

// Legacy is the 48-bit linear congruential generator.
type Legacy struct {
	seed int64
	g    gaussian
}

var _ Source = (*Legacy)(nil)

func NewLegacy(seed int64) *Legacy {
	return &Legacy{seed: (seed ^ lcgMultiplier) & lcgMask}
}

// SetSeed resets the generator as if freshly constructed.
func (r *Legacy) SetSeed(seed int64) {
	r.seed = (seed ^ lcgMultiplier) & lcgMask
	r.g.reset()
}

func (r *Legacy) next(bits uint) int32 {
	r.seed = (r.seed*lcgMultiplier + lcgAddend) & lcgMask
	return int32(r.seed >> (48 - bits))
}

func (r *Legacy) NextInt() int32 { return r.next(32) }

func (r *Legacy) NextIntn(bound int32) int32 {
	if bound <= 0 {
		panic("random: bound must be positive")
	}
	if bound&-bound == bound {
		return int32((int64(bound) * int64(r.next(31))) >> 31)
	}
	for {
		j := r.next(31)
		k := j % bound
		if j-k+(bound-1) >= 0 {
			return k
		}
	}
}

func (r *Legacy) NextLong() int64 {
	hi := int64(r.next(32))
	lo := int64(r.next(32))
	return hi<<32 + lo
}

func (r *Legacy) NextBool() bool { return r.next(1) != 0 }

func (r *Legacy) NextFloat() float32 { return float32(r.next(24)) * floatUnit }

func (r *Legacy) NextDouble() float64 {
	hi := int64(r.next(26))
	lo := int64(r.next(27))
	return float64(hi<<27+lo) * doubleUnit
}

func (r *Legacy) NextGaussian() float64 { return r.g.sample(r.NextDouble) }

func (r *Legacy) Skip(n int) {
	for range n {
		r.next(32)
	}
}

func (r *Legacy) Fork() Source { return NewLegacy(r.NextLong()) }

func (r *Legacy) ForkPositional() Positional { return LegacyPositional{seed: r.NextLong()} }

// LegacyPositional splits legacy sources by position or name.
type LegacyPositional struct {
	seed int64
}

func (p LegacyPositional) At(x, y, z int) Source {
	return NewLegacy(GetSeed(int32(x), int32(y), int32(z)) ^ p.seed)
}

func (p LegacyPositional) FromHashOf(name string) Source {
	return NewLegacy(int64(JavaStringHash(name)) ^ p.seed)
}
