package terrain

import (
	"testing"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/biome"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/router"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/sampler"
	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
	"github.com/OCharnyshevich/worldgen-server/pkg/random"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

func TestFluidPicker(t *testing.T) {
	p := NewFluidPicker(63)
	tests := []struct {
		y    int
		want block.State
	}{
		{62, block.Water},
		{63, block.Air},
		{120, block.Air},
		{-54, block.Water},
		{-55, block.Lava},
		{-64, block.Lava},
	}
	for _, tt := range tests {
		if got := p.Open(tt.y); got != tt.want {
			t.Errorf("Open(%d) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

type fixedVeins struct{ t, r, g float64 }

func (f fixedVeins) toggle() float64 { return f.t }
func (f fixedVeins) ridged() float64 { return f.r }
func (f fixedVeins) gap() float64    { return f.g }

func TestOreVeinRanges(t *testing.T) {
	o := oreVeins{rnd: random.NewXoroshiro(1).ForkPositional()}
	strong := fixedVeins{t: 0.9, r: -1, g: 1}
	if _, ok := o.sample(strong, 0, 60, 0); ok {
		t.Error("copper vein placed above its range")
	}
	if _, ok := o.sample(fixedVeins{t: -0.9, r: -1, g: 1}, 0, 10, 0); ok {
		t.Error("iron vein placed above its range")
	}
	if _, ok := o.sample(fixedVeins{t: 0.1, r: -1, g: 1}, 0, 25, 0); ok {
		t.Error("weak toggle placed a vein")
	}
	if _, ok := o.sample(fixedVeins{t: 0.9, r: 1, g: 1}, 0, 25, 0); ok {
		t.Error("positive ridge placed a vein")
	}

	placed := 0
	for x := range 64 {
		s, ok := o.sample(strong, x, 25, 0)
		if !ok {
			continue
		}
		placed++
		switch s {
		case block.CopperOre, block.RawCopperBlock, block.Granite:
		default:
			t.Errorf("copper vein block at x=%d = %v", x, s)
		}
	}
	if placed == 0 {
		t.Error("no copper vein blocks placed in 64 attempts")
	}
}

func TestGradient(t *testing.T) {
	rnd := random.NewXoroshiro(5).ForkPositional()
	for x := range 16 {
		if !gradient(rnd, x, -64, 0, -64, -59) {
			t.Errorf("gradient at the true end returned false for x=%d", x)
		}
		if gradient(rnd, x, -59, 0, -64, -59) {
			t.Errorf("gradient at the false end returned true for x=%d", x)
		}
	}
}

func TestCellMapperTopLayerFirst(t *testing.T) {
	m := cellMapper{startX: 16, startY: -64, startZ: 32, h: 4, v: 8}
	var opts density.SampleOptions
	if got, want := m.At(0, &opts), (density.Pos{X: 16, Y: -57, Z: 32}); got != want {
		t.Errorf("At(0) = %+v, want %+v", got, want)
	}
	if got, want := m.At(4*4*8-1, &opts), (density.Pos{X: 19, Y: -64, Z: 35}); got != want {
		t.Errorf("At(last) = %+v, want %+v", got, want)
	}
	if opts.Cell.Y != 0 {
		t.Errorf("Cell.Y after last index = %d, want 0", opts.Cell.Y)
	}
}

func TestMaterialOf(t *testing.T) {
	tests := []struct {
		b    biome.Biome
		want block.State
	}{
		{biome.Plains, block.GrassBlock},
		{biome.Desert, block.Sand},
		{biome.MushroomFields, block.Mycelium},
		{biome.DeepOcean, block.Gravel},
	}
	for _, tt := range tests {
		if got := MaterialOf(tt.b).Top; got != tt.want {
			t.Errorf("MaterialOf(%v).Top = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func generate(p *density.Proto, tree *biome.SearchTree[biome.Biome], pos chunk.Pos) *chunk.ChunkData {
	shape := OverworldShape()
	opts := density.NewStackOptions(pos.StartX(), pos.StartZ(), shape.H, shape.V, shape.vCells())
	c := chunk.New(pos)
	FillBiomes(c, sampler.NewBiomeSource(sampler.NewMultiNoise(p, opts), tree))
	NewNoiseGenerator(p, pos, shape, NewFluidPicker(63), true).PopulateNoise(c)
	heights := sampler.NewSurfaceHeight(p, opts, sampler.DefaultSurfaceOptions())
	NewSurfaceBuilder(p.Random, shape, 63).Build(c, heights)
	return c
}

func TestGenerateChunk(t *testing.T) {
	tree := biome.NewBiomeTree(biome.OverworldEntries())
	p := density.NewProto(42, noise.DefaultParams(), router.Overworld())
	c := generate(p, tree, chunk.Pos{X: 1, Z: -2})

	for x := range 16 {
		for z := range 16 {
			if got := c.GetBlock(x, chunk.MinY, z); got != block.Bedrock {
				t.Fatalf("floor block at (%d, %d) = %v, want bedrock", x, z, got)
			}
			if got := c.GetBlock(x, chunk.MaxY, z); got != block.Air {
				t.Errorf("ceiling block at (%d, %d) = %v, want air", x, z, got)
			}
			if top := c.TopY(chunk.MotionBlocking, x, z); top < 0 {
				t.Errorf("motion blocking top at (%d, %d) = %d, want at least sea floor", x, z, top)
			}
		}
	}

	again := generate(density.NewProto(42, noise.DefaultParams(), router.Overworld()), tree, chunk.Pos{X: 1, Z: -2})
	for x := range 16 {
		for z := range 16 {
			for y := chunk.MinY; y <= chunk.MaxY; y++ {
				if a, b := c.GetBlock(x, y, z), again.GetBlock(x, y, z); a != b {
					t.Fatalf("block (%d, %d, %d) = %v then %v", x, y, z, a, b)
				}
			}
		}
	}
	if c.Biomes != again.Biomes {
		t.Error("biomes differ between runs")
	}
}
