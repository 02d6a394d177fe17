package view

import (
	"testing"

	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

func TestAllChunksWithinMatchesDistance(t *testing.T) {
	for d := 1; d <= 64; d++ {
		c := New(chunk.Pos{X: 3, Z: -7}, d)
		got := c.AllChunksWithin()
		seen := make(map[chunk.Pos]bool, len(got))
		for _, p := range got {
			if !c.IsWithinDistance(p.X, p.Z) {
				t.Fatalf("distance %d: %v returned but outside", d, p)
			}
			seen[p] = true
		}
		for x := c.left() - 2; x <= c.right()+2; x++ {
			for z := c.bottom() - 2; z <= c.top()+2; z++ {
				if c.IsWithinDistance(x, z) != seen[chunk.Pos{X: x, Z: z}] {
					t.Fatalf("distance %d: chunk (%d, %d) within=%v returned=%v", d, x, z, c.IsWithinDistance(x, z), seen[chunk.Pos{X: x, Z: z}])
				}
			}
		}
		if c.EstimatedCapacity() < len(got) {
			t.Errorf("distance %d: EstimatedCapacity() = %d, want >= %d", d, c.EstimatedCapacity(), len(got))
		}
	}
}

func TestNewClampsDistance(t *testing.T) {
	if got := New(chunk.Pos{}, 0).ViewDistance; got != 1 {
		t.Errorf("New(_, 0).ViewDistance = %d, want 1", got)
	}
}

func TestForEachChangedChunk(t *testing.T) {
	prev := New(chunk.Pos{}, 4)
	next := New(chunk.Pos{X: 1}, 4)

	var included, removed []chunk.Pos
	ForEachChangedChunk(prev, next,
		func(p chunk.Pos) { included = append(included, p) },
		func(p chunk.Pos) { removed = append(removed, p) })

	if len(included) == 0 || len(removed) == 0 {
		t.Fatalf("included %d, removed %d chunks, want both non-zero", len(included), len(removed))
	}
	if len(included) != len(removed) {
		t.Errorf("shifting by one chunk included %d but removed %d", len(included), len(removed))
	}
	for _, p := range included {
		if prev.IsWithinDistance(p.X, p.Z) || !next.IsWithinDistance(p.X, p.Z) {
			t.Errorf("included %v is not new", p)
		}
	}
	for _, p := range removed {
		if !prev.IsWithinDistance(p.X, p.Z) || next.IsWithinDistance(p.X, p.Z) {
			t.Errorf("removed %v is not gone", p)
		}
	}

	var grown int
	ForEachChangedChunk(prev, New(chunk.Pos{}, 6), func(chunk.Pos) { grown++ }, func(p chunk.Pos) {
		t.Errorf("growing the view removed %v", p)
	})
	if want := len(New(chunk.Pos{}, 6).AllChunksWithin()) - len(prev.AllChunksWithin()); grown != want {
		t.Errorf("growing included %d chunks, want %d", grown, want)
	}
}
