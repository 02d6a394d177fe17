package noise

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/worldgen-server/pkg/random"
)

type sample struct {
	x, y, z float64
	want    float64
}

func TestLegacyDoublePerlin(t *testing.T) {
	r := random.NewLegacy(513513513)
	if got := r.NextInt(); got != -1302745855 {
		t.Fatalf("NextInt() = %d, want -1302745855", got)
	}
	n := NewLegacyDoublePerlin(r, Params{FirstOctave: 0, Amplitudes: []float64{4}})

	for _, s := range []sample{
		{3.7329617139221236e7, 2.847228022372606e8, -1.8244299064688918e8, -0.5044027150385925},
		{8.936597679535551e7, 1.491954533221004e8, 3.457494216166344e8, -1.0004671438756043},
		{-2.2479845046034336e8, -4.085449163378981e7, 1.343082907470065e8, 2.1781128778536973},
	} {
		if got := n.Sample(s.x, s.y, s.z); got != s.want {
			t.Errorf("Sample(%v, %v, %v) = %v, want %v", s.x, s.y, s.z, got, s.want)
		}
	}
}

func TestDoublePerlin(t *testing.T) {
	r := random.NewXoroshiro(5)
	if got := r.NextInt(); got != -1678727252 {
		t.Fatalf("NextInt() = %d, want -1678727252", got)
	}
	n := NewDoublePerlin(r, Params{FirstOctave: 1, Amplitudes: []float64{2, 4}})

	for _, s := range []sample{
		{-2.4823401687190732e8, 1.6909869132832196e8, 1.0510057123823991e8, -0.09627881756376819},
		{1.2971355215791291e8, -3.614855223614046e8, 1.9997149869463342e8, 0.4412466810560897},
	} {
		if got := n.Sample(s.x, s.y, s.z); got != s.want {
			t.Errorf("Sample(%v, %v, %v) = %v, want %v", s.x, s.y, s.z, got, s.want)
		}
	}
}

func TestPerlinOctaves(t *testing.T) {
	r := random.NewXoroshiro(513513513)
	if got := r.NextInt(); got != 404174895 {
		t.Fatalf("NextInt() = %d, want 404174895", got)
	}
	first, amps := AmplitudesFromOctaves([]int{1, 2, 3})
	if first != 1 || len(amps) != 3 {
		t.Fatalf("AmplitudesFromOctaves = (%d, %v), want (1, [1 1 1])", first, amps)
	}
	p := NewPerlin(r, first, amps, false)

	for _, s := range []sample{
		{1.4633897801218182e8, 3.360929121402108e8, -1.7376184515043163e8, -0.16510137639683028},
		{-3.952093942501234e8, -8.149682915016855e7, 2.0761709535397574e8, -0.19865227457826365},
	} {
		if got := p.Sample(s.x, s.y, s.z); got != s.want {
			t.Errorf("Sample(%v, %v, %v) = %v, want %v", s.x, s.y, s.z, got, s.want)
		}
	}
}

func TestAmplitudesFromOctaves(t *testing.T) {
	octaves := make([]int, 0, 16)
	for o := 0; o >= -15; o-- {
		octaves = append(octaves, o)
	}
	first, amps := AmplitudesFromOctaves(octaves)
	if first != -15 {
		t.Errorf("first = %d, want -15", first)
	}
	if len(amps) != 16 {
		t.Fatalf("len(amplitudes) = %d, want 16", len(amps))
	}
	for i, a := range amps {
		if a != 1 {
			t.Errorf("amplitudes[%d] = %v, want 1", i, a)
		}
	}

	first, amps = AmplitudesFromOctaves([]int{-3, -1})
	if first != -3 || len(amps) != 3 || amps[1] != 0 {
		t.Errorf("AmplitudesFromOctaves([-3 -1]) = (%d, %v), want (-3, [1 0 1])", first, amps)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1.5, 1.5},
		{33554432, 0},
		{33554433, 1},
		{-33554433, -1},
		{16777217, 16777217 - 33554432},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); got != tt.want {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPerlinPositiveLegacyOctavesPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for positive legacy octaves")
		}
	}()
	NewPerlin(random.NewLegacy(1), 1, []float64{1, 1}, true)
}

func TestDoublePerlinBounded(t *testing.T) {
	n := NewDoublePerlin(random.NewXoroshiro(42), Params{FirstOctave: -7, Amplitudes: []float64{1, 1, 1}})
	limit := n.MaxValue()
	if limit <= 0 {
		t.Fatalf("MaxValue() = %v, want positive", limit)
	}
	for i := 0; i < 2000; i++ {
		x := float64(i)*3.7 - 4000
		z := float64(i)*5.3 - 6000
		if v := n.Sample(x, float64(i%64), z); v < -limit || v > limit {
			t.Fatalf("Sample(%v, %d, %v) = %v, outside ±%v", x, i%64, z, v, limit)
		}
	}
}

func TestSimplexDeterministic(t *testing.T) {
	s1 := NewSimplex(random.NewLegacy(12345))
	s2 := NewSimplex(random.NewLegacy(12345))

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if s1.Sample2D(x, y) != s2.Sample2D(x, y) {
			t.Fatalf("Sample2D not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestSimplexRange(t *testing.T) {
	s := NewSimplex(random.NewLegacy(42))

	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		v := s.Sample2D(x, y)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Sample2D(%f, %f) = %f, out of [-1,1]", x, y, v)
		}
	}
}

func TestSimplexDifferentSeeds(t *testing.T) {
	s1 := NewSimplex(random.NewLegacy(1))
	s2 := NewSimplex(random.NewLegacy(2))

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if s1.Sample2D(x, y) != s2.Sample2D(x, y) {
			return
		}
	}
	t.Error("different seeds should produce different noise")
}

func TestDefaultParams(t *testing.T) {
	reg := DefaultParams()
	for _, id := range []string{
		"minecraft:temperature",
		"minecraft:continentalness",
		"minecraft:erosion",
		"minecraft:ridge",
		"minecraft:offset",
		"minecraft:aquifer_barrier",
		"minecraft:ore_veininess",
		"minecraft:noodle",
		"minecraft:spaghetti_3d_1",
	} {
		if _, ok := reg[id]; !ok {
			t.Errorf("DefaultParams() missing %s", id)
		}
	}

	temp := reg.Get("minecraft:temperature")
	if temp.FirstOctave != -10 || len(temp.Amplitudes) != 6 || temp.Amplitudes[0] != 1.5 {
		t.Errorf("temperature = %+v, want first -10 and 6 amplitudes starting at 1.5", temp)
	}

	reg["minecraft:temperature"] = Params{}
	if again := DefaultParams().Get("minecraft:temperature"); again.FirstOctave != -10 {
		t.Error("DefaultParams() returned a shared map")
	}
}

func TestRegistryGetPanicsOnMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown noise")
		}
	}()
	Registry{}.Get("minecraft:nope")
}

func TestParseParamsRejectsInvalid(t *testing.T) {
	for _, raw := range []string{
		`{"firstOctave": -3}`,
		`{"firstOctave": "x", "amplitudes": [1]}`,
		`{"firstOctave": -3, "amplitudes": []}`,
		`not json`,
	} {
		if _, err := ParseParams([]byte(raw)); err == nil {
			t.Errorf("ParseParams(%s) succeeded, want error", raw)
		}
	}

	p, err := ParseParams([]byte(`{"firstOctave": -4, "amplitudes": [1, 0.5]}`))
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if p.FirstOctave != -4 || len(p.Amplitudes) != 2 || p.Amplitudes[1] != 0.5 {
		t.Errorf("ParseParams = %+v", p)
	}
}

func TestLoadParamsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "temperature.json"), []byte(`{"firstOctave": -3, "amplitudes": [2]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadParamsDir(DefaultParams(), dir)
	if err != nil {
		t.Fatalf("LoadParamsDir: %v", err)
	}
	if got := reg.Get("minecraft:temperature"); got.FirstOctave != -3 || got.Amplitudes[0] != 2 {
		t.Errorf("temperature = %+v, want overlay", got)
	}
	if _, ok := reg["minecraft:erosion"]; !ok {
		t.Error("overlay dropped base entries")
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"amplitudes": [1]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadParamsDir(DefaultParams(), dir); err == nil {
		t.Error("LoadParamsDir with invalid file succeeded, want error")
	}
}
