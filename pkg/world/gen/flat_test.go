package gen

import (
	"testing"

	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlatGenerator(0)
	c := g.Generate(0, 0)

	tests := []struct {
		y    int
		want block.State
	}{
		{chunk.MinY, block.Bedrock},
		{chunk.MinY + 1, block.Stone},
		{chunk.MinY + 2, block.Stone},
		{chunk.MinY + 3, block.Dirt},
		{chunk.MinY + 4, block.GrassBlock},
		{chunk.MinY + 5, block.Air},
	}
	for _, tt := range tests {
		if got := c.GetBlock(0, tt.y, 0); got != tt.want {
			t.Errorf("y=%d: got %v, want %v", tt.y, got, tt.want)
		}
	}
	if got, want := g.HeightAt(0, 0), chunk.MinY+4; got != want {
		t.Errorf("HeightAt = %d, want %d", got, want)
	}
	if got, want := c.TopY(chunk.MotionBlocking, 7, 7), chunk.MinY+4; got != want {
		t.Errorf("TopY = %d, want %d", got, want)
	}
}

func TestFlatGeneratorCustomLayers(t *testing.T) {
	g := NewFlatGeneratorWith([]Layer{{block.Stone, 20}, {block.Water, 3}})
	c := g.Generate(5, 5)
	if got := c.GetBlock(3, chunk.MinY+21, 3); got != block.Water {
		t.Errorf("water layer block = %v, want water", got)
	}
	if got := c.NonAirSections(); got != 2 {
		t.Errorf("NonAirSections = %d, want 2", got)
	}
	if c.Pos != (chunk.Pos{X: 5, Z: 5}) {
		t.Errorf("Pos = %v, want (5, 5)", c.Pos)
	}
}
