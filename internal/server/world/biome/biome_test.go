package biome

import (
	"math/rand/v2"
	"testing"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want Biome
		ok   bool
	}{
		{"minecraft:desert", Desert, true},
		{"plains", Plains, true},
		{"minecraft:windswept_gravelly_hills", WindsweptGravellyHills, true},
		{"minecraft:pale_garden", 0, false},
		{"other:desert", 0, false},
	}
	for _, tt := range tests {
		got, ok := ByName(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ByName(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	for b := range Biome(Count) {
		if got, _ := ByName(b.Name()); got != b {
			t.Errorf("ByName(%q) = %v", b.Name(), got)
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float32
		want int64
	}{
		{0, 0},
		{1, 10000},
		{-1, -10000},
		{0.5, 5000},
		{0.25, 2500},
		{0.00009, 0},
		{-0.00009, 0},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSpanPanicsWhenInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Span(1, -1) did not panic")
		}
	}()
	Span(1, -1)
}

func TestParameterRangeDistance(t *testing.T) {
	r := ParameterRange{-100, 200}
	tests := []struct {
		v, want int64
	}{
		{0, 0},
		{-100, 0},
		{200, 0},
		{250, 50},
		{-130, 30},
	}
	for _, tt := range tests {
		if got := r.Distance(tt.v); got != tt.want {
			t.Errorf("%v.Distance(%d) = %d, want %d", r, tt.v, got, tt.want)
		}
	}
}

func TestEmptyTreePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewBiomeTree(nil) did not panic")
		}
	}()
	NewBiomeTree(nil)
}

func TestSingleEntryTree(t *testing.T) {
	tree := NewBiomeTree([]Entry{{Biome: Plains, Parameters: Hypercube{}}})
	if got := tree.Get(NoisePoint{Temperature: 9000, Weirdness: -9000}); got != Plains {
		t.Errorf("Get = %v, want %v", got, Plains)
	}
}

func TestSmallTreeNearest(t *testing.T) {
	cube := func(temp float32) Hypercube {
		full := Span(-1, 1)
		return Hypercube{
			Temperature:     Span(temp, temp+0.1),
			Humidity:        full,
			Continentalness: full,
			Erosion:         full,
			Depth:           full,
			Weirdness:       full,
		}
	}
	tree := NewSearchTree([]string{"cold", "mild", "hot"}, []Hypercube{cube(-0.8), cube(0), cube(0.8)})
	tests := []struct {
		temp int64
		want string
	}{
		{-10000, "cold"},
		{-5000, "cold"},
		{-3000, "mild"},
		{500, "mild"},
		{3000, "mild"},
		{6000, "hot"},
		{10000, "hot"},
	}
	for _, tt := range tests {
		if got := tree.Get(NoisePoint{Temperature: tt.temp}); got != tt.want {
			t.Errorf("Get(temperature %d) = %q, want %q", tt.temp, got, tt.want)
		}
	}
}

func TestSmallTreeTieGoesToFirst(t *testing.T) {
	cube := func(lo int64) Hypercube {
		full := Span(-1, 1)
		return Hypercube{
			Temperature:     ParameterRange{lo, lo + 1000},
			Humidity:        full,
			Continentalness: full,
			Erosion:         full,
			Depth:           full,
			Weirdness:       full,
		}
	}
	// [-5000,-4000] and [4000,5000] sit at equal center magnitude, so
	// construction keeps their input order; temperature 0 is 4000 from both.
	tests := []struct {
		names []string
		lows  []int64
		want  string
	}{
		{[]string{"cool", "warm"}, []int64{-5000, 4000}, "cool"},
		{[]string{"warm", "cool"}, []int64{4000, -5000}, "warm"},
		{[]string{"cool", "warm", "far"}, []int64{-5000, 4000, 9000}, "cool"},
	}
	for _, tt := range tests {
		cubes := make([]Hypercube, len(tt.lows))
		for i, lo := range tt.lows {
			cubes[i] = cube(lo)
		}
		tree := NewSearchTree(tt.names, cubes)
		if got := tree.Get(NoisePoint{}); got != tt.want {
			t.Errorf("%v: Get(temperature 0) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func TestOverworldEntries(t *testing.T) {
	entries := OverworldEntries()
	if len(entries) == 0 {
		t.Fatal("no overworld entries")
	}
	if entries[0].Biome != MushroomFields {
		t.Errorf("first entry = %v, want %v", entries[0].Biome, MushroomFields)
	}
	if last := entries[len(entries)-1]; last.Biome != DeepDark || last.Parameters.Depth != PointRange(1.1) {
		t.Errorf("last entry = %v at depth %v, want deep dark at the bottom", last.Biome, last.Parameters.Depth)
	}
	seen := make(map[Biome]bool)
	for _, e := range entries {
		seen[e.Biome] = true
	}
	for _, b := range []Biome{Desert, Plains, Jungle, JaggedPeaks, CherryGrove, DeepFrozenOcean, LushCaves, River} {
		if !seen[b] {
			t.Errorf("overworld has no %v entry", b)
		}
	}
	for _, b := range []Biome{NetherWastes, TheEnd, SmallEndIslands} {
		if seen[b] {
			t.Errorf("overworld has a %v entry", b)
		}
	}
}

func bruteNearest(entries []Entry, p NoisePoint) int64 {
	a := p.Array()
	best := int64(-1)
	for _, e := range entries {
		var d int64
		for i, r := range e.Parameters.space() {
			v := r.Distance(a[i])
			d += v * v
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func leafDistance(l *Leaf[Biome], p NoisePoint) int64 {
	a := p.Array()
	var d int64
	for i, r := range l.Region() {
		v := r.Distance(a[i])
		d += v * v
	}
	return d
}

func TestTreeFindsNearestRegion(t *testing.T) {
	entries := OverworldEntries()
	tree := NewBiomeTree(entries)
	rng := rand.New(rand.NewPCG(1, 2))
	point := func() int64 { return rng.Int64N(24000) - 12000 }
	s := tree.NewSearcher()
	for range 2000 {
		p := NoisePoint{point(), point(), point(), point(), point() / 4, point()}
		want := bruteNearest(entries, p)
		if got := leafDistance(tree.Search(p, nil), p); got != want {
			t.Fatalf("Search(%+v) distance = %d, want %d", p, got, want)
		}
		s.Get(p)
		if got := leafDistance(s.last, p); got != want {
			t.Fatalf("Searcher.Get(%+v) distance = %d, want %d", p, got, want)
		}
	}
}

func TestEveryLeafReachable(t *testing.T) {
	tree := NewBiomeTree(OverworldEntries())
	for _, l := range tree.Leaves() {
		r := l.Region()
		p := NoisePoint{r[0].mid(), r[1].mid(), r[2].mid(), r[3].mid(), r[4].mid(), r[5].mid()}
		if d := leafDistance(tree.Search(p, nil), p); d != 0 {
			t.Errorf("center of %v region resolves at distance %d", l.Value(), d)
		}
	}
}

func TestSaltMix(t *testing.T) {
	if got := saltMix(12345678, 12345678); got != 2937271135939595220 {
		t.Errorf("saltMix = %d, want 2937271135939595220", got)
	}
}

func TestScaleMix(t *testing.T) {
	if got := scaleMix(12345678); got != -0.45 {
		t.Errorf("scaleMix(12345678) = %v, want -0.45", got)
	}
}

func TestScorePermutation(t *testing.T) {
	got := scorePermutation(HashSeed(0), 123, 456, 456, 0.25, 0.5, 0.75)
	if got != 1.156166915893555 {
		t.Errorf("scorePermutation = %v, want 1.156166915893555", got)
	}
}

func TestBlendPos(t *testing.T) {
	x, y, z := BlendPos(-64, 384, 1234567890, 123, 123, 123)
	if x != 31 || y != 30 || z != 30 {
		t.Errorf("BlendPos = (%d, %d, %d), want (31, 30, 30)", x, y, z)
	}
}

func TestBlendPosClampsY(t *testing.T) {
	seed := HashSeed(42)
	for _, y := range []int{-200, -64, 319, 500} {
		_, by, _ := BlendPos(-64, 384, seed, 5, y, 5)
		if by < -16 || by > 79 {
			t.Errorf("BlendPos y for block %d = %d, outside [-16, 79]", y, by)
		}
	}
}
