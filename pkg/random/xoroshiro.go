package random

import (
	"crypto/md5"
	"encoding/binary"
	"math"
	"math/bits"
)

const (
	goldenRatio64 uint64 = 0x9E3779B97F4A7C15
	silverRatio64 uint64 = 0x6A09E667F3BCC909
)

var (
	sqrt = math.Sqrt
	log  = math.Log
)

// Xoroshiro is a xoroshiro128++ source.
type Xoroshiro struct {
	lo, hi uint64
	g      gaussian
}

var _ Source = (*Xoroshiro)(nil)

// NewXoroshiro upgrades a 64-bit seed to 128 bits and returns a source.
func NewXoroshiro(seed int64) *Xoroshiro {
	lo, hi := upgradeSeed(seed)
	return NewXoroshiroFrom(lo, hi)
}

// NewXoroshiroFrom returns a source with the raw 128-bit state lo, hi.
func NewXoroshiroFrom(lo, hi uint64) *Xoroshiro {
	if lo|hi == 0 {
		lo, hi = goldenRatio64, silverRatio64
	}
	return &Xoroshiro{lo: lo, hi: hi}
}

func upgradeSeed(seed int64) (uint64, uint64) {
	lo := uint64(seed) ^ silverRatio64
	hi := lo + goldenRatio64
	return mixStafford13(lo), mixStafford13(hi)
}

func mixStafford13(z uint64) uint64 {
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

func (x *Xoroshiro) nextRaw() uint64 {
	l, m := x.lo, x.hi
	n := bits.RotateLeft64(l+m, 17) + l
	m ^= l
	x.lo = bits.RotateLeft64(l, 49) ^ m ^ m<<21
	x.hi = bits.RotateLeft64(m, 28)
	return n
}

func (x *Xoroshiro) nextBits(n uint) uint64 {
	return x.nextRaw() >> (64 - n)
}

func (x *Xoroshiro) NextLong() int64 { return int64(x.nextRaw()) }

func (x *Xoroshiro) NextInt() int32 { return int32(x.nextRaw()) }

func (x *Xoroshiro) NextIntn(bound int32) int32 {
	if bound <= 0 {
		panic("random: bound must be positive")
	}
	b := uint64(bound)
	l := uint64(uint32(x.NextInt()))
	m := l * b
	n := m & 0xFFFFFFFF
	if n < b {
		j := uint64(uint32(-bound) % uint32(bound))
		for n < j {
			l = uint64(uint32(x.NextInt()))
			m = l * b
			n = m & 0xFFFFFFFF
		}
	}
	return int32(m >> 32)
}

func (x *Xoroshiro) NextBool() bool { return x.nextRaw()&1 != 0 }

func (x *Xoroshiro) NextFloat() float32 { return float32(x.nextBits(24)) * floatUnit }

func (x *Xoroshiro) NextDouble() float64 { return float64(x.nextBits(53)) * doubleUnit }

func (x *Xoroshiro) NextGaussian() float64 { return x.g.sample(x.NextDouble) }

func (x *Xoroshiro) Skip(n int) {
	for range n {
		x.nextRaw()
	}
}

func (x *Xoroshiro) Fork() Source {
	return NewXoroshiroFrom(x.nextRaw(), x.nextRaw())
}

func (x *Xoroshiro) ForkPositional() Positional {
	return XoroshiroPositional{lo: x.nextRaw(), hi: x.nextRaw()}
}

// XoroshiroPositional splits xoroshiro sources by position or name.
type XoroshiroPositional struct {
	lo, hi uint64
}

func (p XoroshiroPositional) At(x, y, z int) Source {
	seed := uint64(GetSeed(int32(x), int32(y), int32(z)))
	return NewXoroshiroFrom(seed^p.lo, p.hi)
}

// FromHashOf seeds a source from the MD5 digest of name.
func (p XoroshiroPositional) FromHashOf(name string) Source {
	sum := md5.Sum([]byte(name))
	lo := binary.BigEndian.Uint64(sum[0:8])
	hi := binary.BigEndian.Uint64(sum[8:16])
	return NewXoroshiroFrom(lo^p.lo, hi^p.hi)
}
