package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/OCharnyshevich/worldgen-server/internal/server/config"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/gen"
)

func newStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	s, err := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLevelRoundTrip(t *testing.T) {
	s := newStorage(t, t.TempDir())
	if l, err := s.LoadLevel(); err != nil || l != nil {
		t.Fatalf("LoadLevel on a new world = %v, %v, want nil, nil", l, err)
	}
	want := &Level{
		Seed:       -99,
		Generator:  config.GeneratorDefault,
		SeaLevel:   63,
		Spawn:      Position{X: 0, Y: 71, Z: 0},
		LastPlayed: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := s.SaveLevel(want); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}
	got, err := s.LoadLevel()
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if !got.LastPlayed.Equal(want.LastPlayed) {
		t.Errorf("LastPlayed = %v, want %v", got.LastPlayed, want.LastPlayed)
	}
	got.LastPlayed = want.LastPlayed
	if *got != *want {
		t.Errorf("LoadLevel = %+v, want %+v", got, want)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s := newStorage(t, t.TempDir())
	cfg := config.DefaultConfig()
	cfg.Seed = 1234
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got := config.DefaultConfig()
	if err := s.LoadConfig(got); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", got.Seed)
	}
}

func TestSaveAndLoadChunks(t *testing.T) {
	dir := t.TempDir()
	s := newStorage(t, dir)
	g := gen.NewFlatGenerator(0)

	a := g.Generate(0, 0)
	a.SetBlock(4, 80, 4, block.Sandstone)
	b := g.Generate(-1, 40)
	if err := s.SaveChunks(context.Background(), []*chunk.ChunkData{a, b}); err != nil {
		t.Fatalf("SaveChunks: %v", err)
	}
	// A second save into the same region must keep chunk a.
	c := g.Generate(1, 0)
	if err := s.SaveChunks(context.Background(), []*chunk.ChunkData{c}); err != nil {
		t.Fatalf("SaveChunks: %v", err)
	}

	// A fresh storage reads the region files from disk.
	s2 := newStorage(t, dir)
	got, err := s2.LoadChunk(chunk.Pos{})
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if st := got.GetBlock(4, 80, 4); st != block.Sandstone {
		t.Errorf("GetBlock(4, 80, 4) = %v, want sandstone", st)
	}
	if _, err := s2.LoadChunk(chunk.Pos{X: 1}); err != nil {
		t.Errorf("LoadChunk((1, 0)): %v", err)
	}
	if _, err := s2.LoadChunk(chunk.Pos{X: 5, Z: 5}); !errors.Is(err, world.ErrChunkNotFound) {
		t.Errorf("LoadChunk of an unsaved chunk = %v, want ErrChunkNotFound", err)
	}

	n, err := s2.Index().Count(context.Background())
	if err != nil || n != 3 {
		t.Errorf("index Count = %d, %v, want 3", n, err)
	}
	rows, err := s2.Index().Chunks(context.Background())
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	if rows[0].X != -1 || rows[0].Z != 40 || rows[0].Region != "r.-1.1.mca" {
		t.Errorf("first row = %+v, want chunk (-1, 40) in r.-1.1.mca", rows[0])
	}
	if rows[2].NonAirSections != 1 {
		t.Errorf("row %+v: NonAirSections = %d, want 1", rows[2], rows[2].NonAirSections)
	}
}

func TestStorageIsWorldLoader(t *testing.T) {
	s := newStorage(t, t.TempDir())
	saved := gen.NewFlatGenerator(0).Generate(2, 2)
	saved.SetBlock(0, 0, 0, block.Clay)
	if err := s.SaveChunks(context.Background(), []*chunk.ChunkData{saved}); err != nil {
		t.Fatalf("SaveChunks: %v", err)
	}
	w := world.NewWorld(gen.NewFlatGenerator(0), world.WithLoader(s))
	if got := w.GetBlock(32, 0, 32); got != block.Clay {
		t.Errorf("GetBlock through the loader = %v, want clay", got)
	}
}
