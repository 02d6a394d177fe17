package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/OCharnyshevich/worldgen-server/internal/server/config"
	"github.com/OCharnyshevich/worldgen-server/internal/server/storage"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/view"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func flatConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.GeneratorType = config.GeneratorFlat
	cfg.WorldRadius = 1
	cfg.AutosaveInterval = 0
	cfg.PregenWorkers = 2
	return cfg
}

func newServer(t *testing.T, dir string, cfg *config.Config) *Server {
	t.Helper()
	store, err := storage.New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	s, err := New(cfg, store, discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStartSavesOnShutdown(t *testing.T) {
	dir := t.TempDir()
	s := newServer(t, dir, flatConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	level, err := s.store.LoadLevel()
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if level == nil {
		t.Fatal("no level saved on shutdown")
	}
	if level.Generator != config.GeneratorFlat {
		t.Errorf("Generator = %q, want %q", level.Generator, config.GeneratorFlat)
	}
	if level.Spawn.Y != chunk.MinY+5 {
		t.Errorf("Spawn.Y = %d, want %d", level.Spawn.Y, chunk.MinY+5)
	}
}

func TestSaveWritesDirtyChunks(t *testing.T) {
	dir := t.TempDir()
	s := newServer(t, dir, flatConfig())
	ctx := context.Background()

	if _, err := s.world.PreGenerate(ctx, s.area, 2); err != nil {
		t.Fatalf("PreGenerate: %v", err)
	}
	s.world.SetBlock(1, 20, 1, block.Sandstone)
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d := s.world.DirtyChunks(); len(d) != 0 {
		t.Errorf("%d chunks still dirty after Save", len(d))
	}
	n, err := s.store.Index().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if want := len(s.area.AllChunksWithin()); n != want {
		t.Errorf("indexed %d chunks, want %d", n, want)
	}

	// A second server over the same directory reads the edit back.
	s2 := newServer(t, dir, flatConfig())
	if got := s2.world.GetBlock(1, 20, 1); got != block.Sandstone {
		t.Errorf("reloaded block = %v, want sandstone", got)
	}
}

func TestNewKeepsSavedSeed(t *testing.T) {
	dir := t.TempDir()
	cfg := flatConfig()
	cfg.Seed = 7
	s := newServer(t, dir, cfg)
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.store.Close()

	other := flatConfig()
	other.Seed = 99
	newServer(t, dir, other)
	if other.Seed != 7 {
		t.Errorf("Seed = %d, want the saved 7", other.Seed)
	}
}

func TestSetViewDistance(t *testing.T) {
	s := newServer(t, t.TempDir(), flatConfig())
	ctx := context.Background()
	if _, err := s.world.PreGenerate(ctx, s.area, 2); err != nil {
		t.Fatalf("PreGenerate: %v", err)
	}
	small := len(view.New(chunk.Pos{}, 1).AllChunksWithin())
	large := len(view.New(chunk.Pos{}, 3).AllChunksWithin())

	added, unloaded, err := s.SetViewDistance(ctx, 3)
	if err != nil {
		t.Fatalf("SetViewDistance(3): %v", err)
	}
	if added != large-small || unloaded != 0 {
		t.Errorf("grow: added %d, unloaded %d, want %d, 0", added, unloaded, large-small)
	}

	// Unsaved chunks stay loaded.
	if _, unloaded, _ = s.SetViewDistance(ctx, 1); unloaded != 0 {
		t.Errorf("shrink before save unloaded %d, want 0", unloaded)
	}
	if _, _, err := s.SetViewDistance(ctx, 3); err != nil {
		t.Fatalf("SetViewDistance(3): %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, unloaded, _ = s.SetViewDistance(ctx, 1); unloaded != large-small {
		t.Errorf("shrink after save unloaded %d, want %d", unloaded, large-small)
	}
	if got := s.world.Loaded(); got != small {
		t.Errorf("Loaded = %d, want %d", got, small)
	}
}
