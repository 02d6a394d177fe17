package random

import "testing"

func TestLegacyMatchesJavaRandom(t *testing.T) {
	tests := []struct {
		seed int64
		want int32
	}{
		{0, -1155484576},
		{42, -1170105035},
	}
	for _, tt := range tests {
		if got := NewLegacy(tt.seed).NextInt(); got != tt.want {
			t.Errorf("NewLegacy(%d).NextInt() = %d, want %d", tt.seed, got, tt.want)
		}
	}
}

func TestXoroshiroNextInt(t *testing.T) {
	if got := NewXoroshiro(513513513).NextInt(); got != 404174895 {
		t.Errorf("NewXoroshiro(513513513).NextInt() = %d, want 404174895", got)
	}
}

func TestXoroshiroZeroStateIsReplaced(t *testing.T) {
	x := NewXoroshiroFrom(0, 0)
	if x.lo == 0 && x.hi == 0 {
		t.Fatal("all-zero state must be replaced")
	}
}

func TestNextIntnBounds(t *testing.T) {
	sources := map[string]Source{
		"xoroshiro": NewXoroshiro(1),
		"legacy":    NewLegacy(1),
	}
	for name, src := range sources {
		for _, bound := range []int32{1, 2, 7, 16, 256, 1000003} {
			for range 200 {
				v := src.NextIntn(bound)
				if v < 0 || v >= bound {
					t.Fatalf("%s: NextIntn(%d) = %d, out of range", name, bound, v)
				}
			}
		}
	}
}

func TestFloatAndDoubleRange(t *testing.T) {
	for _, src := range []Source{NewXoroshiro(99), NewLegacy(99)} {
		for range 1000 {
			if f := src.NextFloat(); f < 0 || f >= 1 {
				t.Fatalf("NextFloat() = %v, out of [0,1)", f)
			}
			if d := src.NextDouble(); d < 0 || d >= 1 {
				t.Fatalf("NextDouble() = %v, out of [0,1)", d)
			}
		}
	}
}

func TestSkipMatchesDraws(t *testing.T) {
	for _, pair := range [][2]Source{
		{NewXoroshiro(7), NewXoroshiro(7)},
		{NewLegacy(7), NewLegacy(7)},
	} {
		a, b := pair[0], pair[1]
		a.Skip(262)
		for range 262 {
			b.NextInt()
		}
		if x, y := a.NextLong(), b.NextLong(); x != y {
			t.Errorf("after Skip(262): %d != %d", x, y)
		}
	}
}

func TestPositionalIsDeterministic(t *testing.T) {
	for _, p := range []Positional{
		NewXoroshiro(12345).ForkPositional(),
		NewLegacy(12345).ForkPositional(),
	} {
		a := p.At(10, -20, 30).NextLong()
		b := p.At(10, -20, 30).NextLong()
		if a != b {
			t.Errorf("At(10,-20,30) not deterministic: %d != %d", a, b)
		}
		if c := p.At(11, -20, 30).NextLong(); c == a {
			t.Errorf("At(11,-20,30) collided with At(10,-20,30)")
		}
		h1 := p.FromHashOf("minecraft:temperature").NextLong()
		h2 := p.FromHashOf("minecraft:temperature").NextLong()
		if h1 != h2 {
			t.Errorf("FromHashOf not deterministic: %d != %d", h1, h2)
		}
	}
}

func TestGaussianPairs(t *testing.T) {
	a := NewXoroshiro(5)
	b := NewXoroshiro(5)
	g1 := a.NextGaussian()
	g2 := a.NextGaussian()
	if g1 == g2 {
		t.Errorf("consecutive gaussians are equal: %v", g1)
	}
	if got := b.NextGaussian(); got != g1 {
		t.Errorf("NextGaussian() = %v, want %v", got, g1)
	}
}

func TestGetSeed(t *testing.T) {
	if got := GetSeed(0, 0, 0); got != 0 {
		t.Errorf("GetSeed(0,0,0) = %d, want 0", got)
	}
	if GetSeed(1, 2, 3) == GetSeed(3, 2, 1) {
		t.Error("GetSeed should not be symmetric in x and z")
	}
}

func TestJavaHashes(t *testing.T) {
	tests := []struct {
		in         string
		str, array int32
	}{
		{"", 0, 1},
		{"TEST", 2571410, 3494931},
	}
	for _, tt := range tests {
		if got := JavaStringHash(tt.in); got != tt.str {
			t.Errorf("JavaStringHash(%q) = %d, want %d", tt.in, got, tt.str)
		}
		if got := JavaArrayHash([]byte(tt.in)); got != tt.array {
			t.Errorf("JavaArrayHash(%q) = %d, want %d", tt.in, got, tt.array)
		}
	}
}
