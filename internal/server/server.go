// Package server runs a world: it generates the spawn area, autosaves
// modified chunks and saves everything on shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/OCharnyshevich/worldgen-server/internal/server/config"
	"github.com/OCharnyshevich/worldgen-server/internal/server/storage"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/anvil"
	defaultgen "github.com/OCharnyshevich/worldgen-server/internal/server/world/gen"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/view"
	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/gen"
)

// Server owns the world and its storage.
type Server struct {
	cfg   *config.Config
	log   *slog.Logger
	store *storage.Storage
	world *world.World
	level *storage.Level

	mu   sync.Mutex
	area view.Cylindrical
}

// NewGenerator builds the generator named by cfg.
func NewGenerator(cfg *config.Config) (gen.Generator, error) {
	if cfg.GeneratorType == config.GeneratorFlat {
		return gen.NewFlatGenerator(cfg.Seed), nil
	}
	params := noise.DefaultParams()
	if cfg.NoiseDataDir != "" {
		var err error
		if params, err = noise.LoadParamsDir(params, cfg.NoiseDataDir); err != nil {
			return nil, fmt.Errorf("load noise parameters: %w", err)
		}
	}
	return defaultgen.NewDefaultGeneratorWith(cfg.Seed, params, defaultgen.Options{
		SeaLevel:    cfg.SeaLevel,
		LargeBiomes: cfg.LargeBiomes,
		Amplified:   cfg.Amplified,
		OreVeins:    true,
	}), nil
}

// New creates a new Server with the given config, storage and logger. A
// saved level's seed and generator take precedence over cfg.
func New(cfg *config.Config, store *storage.Storage, log *slog.Logger) (*Server, error) {
	level, err := store.LoadLevel()
	if err != nil {
		return nil, err
	}
	if level != nil {
		if level.Seed != cfg.Seed || level.Generator != cfg.GeneratorType {
			log.Warn("using the saved world's seed and generator",
				"seed", level.Seed, "generator", level.Generator)
		}
		cfg.Seed, cfg.GeneratorType = level.Seed, level.Generator
		cfg.LargeBiomes, cfg.Amplified, cfg.SeaLevel = level.LargeBiomes, level.Amplified, level.SeaLevel
	}

	generator, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	w := world.NewWorld(generator, world.WithLoader(store), world.WithLogger(log))

	if level == nil {
		level = &storage.Level{
			Seed:        cfg.Seed,
			Generator:   cfg.GeneratorType,
			LargeBiomes: cfg.LargeBiomes,
			Amplified:   cfg.Amplified,
			SeaLevel:    cfg.SeaLevel,
			Spawn:       storage.Position{Y: w.SpawnHeight()},
		}
	}
	return &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		world: w,
		level: level,
		area:  view.New(spawnChunk(level), cfg.PregenRadius()),
	}, nil
}

func spawnChunk(l *storage.Level) chunk.Pos { return chunk.PosOfBlock(l.Spawn.X, l.Spawn.Z) }

// World returns the running world.
func (s *Server) World() *world.World { return s.world }

// Start generates the spawn area, then autosaves until the context is
// cancelled and saves once more before returning.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("server started",
		"generator", s.cfg.GeneratorType,
		"seed", s.cfg.Seed,
		"radius", s.area.ViewDistance,
		"workers", s.cfg.PregenWorkers,
	)

	began := time.Now()
	n, err := s.world.PreGenerate(ctx, s.area, s.cfg.PregenWorkers)
	switch {
	case errors.Is(err, context.Canceled):
		s.log.Info("pre-generation interrupted", "chunks", n)
	case err != nil:
		return fmt.Errorf("pre-generate: %w", err)
	default:
		s.log.Info("pre-generation done", "chunks", n, "elapsed", time.Since(began).Round(time.Millisecond))
	}

	if ctx.Err() == nil && s.cfg.AutosaveInterval > 0 {
		s.autosave(ctx)
	} else {
		<-ctx.Done()
	}

	s.log.Info("server shutting down")
	return s.Save(context.Background())
}

func (s *Server) autosave(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.AutosaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Save(ctx); err != nil {
				s.log.Error("autosave", "error", err)
			}
		}
	}
}

// Save writes every modified chunk and the level metadata.
func (s *Server) Save(ctx context.Context) error {
	dirty := s.world.DirtyChunks()
	err := s.world.ReadChunks(dirty, func(cs []*chunk.ChunkData) error {
		return s.store.SaveChunks(ctx, cs)
	})
	if err != nil {
		return fmt.Errorf("save chunks: %w", err)
	}
	s.world.MarkSaved(dirty)

	s.level.LastPlayed = time.Now().UTC()
	s.level.DataVersion = anvil.DataVersion
	if err := s.store.SaveLevel(s.level); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	if len(dirty) > 0 {
		s.log.Info("saved world", "chunks", len(dirty))
	}
	return nil
}

// SetViewDistance resizes the generated area around spawn, generating newly
// included chunks and unloading saved chunks that fell outside.
func (s *Server) SetViewDistance(ctx context.Context, d int) (added, unloaded int, err error) {
	s.mu.Lock()
	prev := s.area
	next := view.New(prev.Center, d)
	s.area = next
	s.mu.Unlock()

	var included []chunk.Pos
	view.ForEachChangedChunk(prev, next,
		func(p chunk.Pos) { included = append(included, p) },
		func(p chunk.Pos) {
			if s.world.Unload(p) {
				unloaded++
			}
		})
	added, err = s.world.GenerateChunks(ctx, included, s.cfg.PregenWorkers)
	s.log.Info("view distance changed", "from", prev.ViewDistance, "to", next.ViewDistance,
		"generated", added, "unloaded", unloaded)
	return added, unloaded, err
}
