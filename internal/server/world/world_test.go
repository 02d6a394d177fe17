package world

import (
	"context"
	"errors"
	"testing"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/view"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/gen"
)

func TestWorldBaseStateFlatGenerator(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))

	tests := []struct {
		y    int
		want block.State
	}{
		{chunk.MinY, block.Bedrock},
		{chunk.MinY + 1, block.Stone},
		{chunk.MinY + 4, block.GrassBlock},
		{64, block.Air},
	}
	for _, tt := range tests {
		if got := w.GetBlock(5, tt.y, -10); got != tt.want {
			t.Errorf("GetBlock(5,%d,-10) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestWorldSetBlock(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))

	w.SetBlock(3, 10, -5, block.Sandstone)
	if got := w.GetBlock(3, 10, -5); got != block.Sandstone {
		t.Errorf("GetBlock(3,10,-5) = %v, want sandstone", got)
	}
	c := w.GetOrGenerateChunk(0, -1)
	if got := c.TopY(chunk.WorldSurface, 3, -5); got != 10 {
		t.Errorf("surface after placing = %d, want 10", got)
	}

	w.SetBlock(0, chunk.MinY+4, 0, block.Air)
	if got := w.GetBlock(0, chunk.MinY+4, 0); got != block.Air {
		t.Errorf("GetBlock after break = %v, want air", got)
	}
}

func TestWorldDirtyTracking(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))
	w.GetOrGenerateChunk(0, 0)
	w.GetOrGenerateChunk(1, 0)

	dirty := w.DirtyChunks()
	if len(dirty) != 2 {
		t.Fatalf("fresh chunks: %d dirty, want 2", len(dirty))
	}
	w.MarkSaved(dirty)
	if got := w.DirtyChunks(); len(got) != 0 {
		t.Fatalf("after MarkSaved: %d dirty, want 0", len(got))
	}

	// Setting the same state is not a change.
	w.SetBlock(0, chunk.MinY, 0, block.Bedrock)
	if got := w.DirtyChunks(); len(got) != 0 {
		t.Errorf("redundant SetBlock dirtied %d chunks", len(got))
	}

	w.SetBlock(0, 0, 0, block.Stone)
	listed := w.DirtyChunks()
	w.SetBlock(1, 0, 0, block.Stone)
	w.MarkSaved(listed)
	if got := w.DirtyChunks(); len(got) != 1 || got[0].Pos != (chunk.Pos{}) {
		t.Errorf("write after listing: dirty = %v, want chunk (0, 0)", got)
	}
}

func TestWorldSpawnHeight(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))
	if got, want := w.SpawnHeight(), chunk.MinY+5; got != want {
		t.Errorf("SpawnHeight() = %d, want %d", got, want)
	}
}

func TestPreGenerate(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))
	area := view.New(chunk.Pos{}, 2)
	count, err := w.PreGenerate(context.Background(), area, 4)
	if err != nil {
		t.Fatalf("PreGenerate: %v", err)
	}
	want := len(area.AllChunksWithin())
	if count != want {
		t.Errorf("PreGenerate returned %d, want %d", count, want)
	}
	if w.Loaded() != want {
		t.Errorf("Loaded() = %d, want %d", w.Loaded(), want)
	}

	again, err := w.PreGenerate(context.Background(), area, 4)
	if err != nil || again != 0 {
		t.Errorf("second PreGenerate = %d, %v, want 0, nil", again, err)
	}
}

func TestPreGenerateCancelled(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	count, err := w.PreGenerate(ctx, view.New(chunk.Pos{}, 8), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PreGenerate error = %v, want context.Canceled", err)
	}
	if count != 0 {
		t.Errorf("cancelled PreGenerate added %d chunks", count)
	}
}

type mapLoader map[chunk.Pos]*chunk.ChunkData

func (m mapLoader) LoadChunk(pos chunk.Pos) (*chunk.ChunkData, error) {
	if c, ok := m[pos]; ok {
		return c, nil
	}
	return nil, ErrChunkNotFound
}

func TestWorldLoaderFirst(t *testing.T) {
	saved := chunk.New(chunk.Pos{X: 2, Z: 2})
	saved.SetBlock(0, 100, 0, block.Clay)
	w := NewWorld(gen.NewFlatGenerator(0), WithLoader(mapLoader{saved.Pos: saved}))

	if got := w.GetBlock(32, 100, 32); got != block.Clay {
		t.Errorf("loaded chunk block = %v, want clay", got)
	}
	if got := w.GetBlock(0, chunk.MinY, 0); got != block.Bedrock {
		t.Errorf("missing chunk was not generated: %v", got)
	}
	if got := w.DirtyChunks(); len(got) != 1 {
		t.Errorf("dirty = %v, want only the generated chunk", got)
	}
}

func TestUnloadKeepsDirtyChunks(t *testing.T) {
	w := NewWorld(gen.NewFlatGenerator(0))
	w.GetOrGenerateChunk(0, 0)
	if w.Unload(chunk.Pos{}) {
		t.Fatal("unsaved chunk was unloaded")
	}
	w.MarkSaved(w.DirtyChunks())
	if !w.Unload(chunk.Pos{}) {
		t.Fatal("saved chunk was kept")
	}
	if w.Loaded() != 0 {
		t.Errorf("Loaded() = %d after unloading, want 0", w.Loaded())
	}
}
