// Package storage persists the world directory: config, level metadata,
// region files and the chunk index.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/OCharnyshevich/worldgen-server/internal/server/config"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/anvil"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	region "github.com/OCharnyshevich/worldgen-server/pkg/world/anvil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	levelFile = "level.json"
	indexFile = "chunks.db"
)

type regionPos struct{ X, Z int }

// Storage handles file-based persistence for config, level metadata and
// chunks. It is safe for concurrent use.
type Storage struct {
	dir   string
	log   *slog.Logger
	index *Index

	mu      sync.Mutex
	regions map[regionPos]map[chunk.Pos][]byte
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "world"),
		filepath.Join(dir, "world", "region"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	idx, err := OpenIndex(filepath.Join(dir, "world", indexFile))
	if err != nil {
		return nil, err
	}
	return &Storage{
		dir:     dir,
		log:     log,
		index:   idx,
		regions: make(map[regionPos]map[chunk.Pos][]byte),
	}, nil
}

func (s *Storage) regionDir() string { return filepath.Join(s.dir, "world", "region") }

// Index exposes the chunk index.
func (s *Storage) Index() *Index { return s.index }

func (s *Storage) Close() error { return s.index.Close() }

// LoadConfig reads the config file into cfg. If no file exists, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	fromFile, found, err := config.Load(s.dir)
	if err != nil {
		return err
	}
	if found {
		*cfg = *fromFile
		s.log.Info("loaded config from file", "dir", s.dir)
	}
	return nil
}

// SaveConfig writes cfg to config.yaml atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	return config.Save(s.dir, cfg)
}

// LoadLevel reads level.json, or returns nil if the world is new.
func (s *Storage) LoadLevel() (*Level, error) {
	path := filepath.Join(s.dir, "world", levelFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read level: %w", err)
	}
	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	return &l, nil
}

// SaveLevel writes level.json atomically.
func (s *Storage) SaveLevel(l *Level) error {
	return s.atomicWriteJSON(filepath.Join(s.dir, "world", levelFile), l)
}

func (s *Storage) loadRegion(rp regionPos) (map[chunk.Pos][]byte, error) {
	if r, ok := s.regions[rp]; ok {
		return r, nil
	}
	r, err := region.LoadRegion(s.regionDir(), rp.X, rp.Z)
	if err != nil {
		return nil, err
	}
	s.regions[rp] = r
	return r, nil
}

// LoadChunk reads a saved chunk. It returns world.ErrChunkNotFound when the
// chunk was never saved.
func (s *Storage) LoadChunk(pos chunk.Pos) (*chunk.ChunkData, error) {
	rx, rz := region.RegionOf(pos)
	s.mu.Lock()
	r, err := s.loadRegion(regionPos{rx, rz})
	var data []byte
	if err == nil {
		data = r[pos]
	}
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("load chunk %v: %w", pos, err)
	}
	if data == nil {
		return nil, world.ErrChunkNotFound
	}
	c, err := anvil.DecodeChunkNBT(data)
	if err != nil {
		return nil, fmt.Errorf("load chunk %v: %w", pos, err)
	}
	return c, nil
}

// SaveChunks encodes chunks, rewrites their region files and records them in
// the index.
func (s *Storage) SaveChunks(ctx context.Context, chunks []*chunk.ChunkData) error {
	if len(chunks) == 0 {
		return nil
	}
	byRegion := make(map[regionPos]map[chunk.Pos][]byte)
	rows := make([]ChunkRecord, 0, len(chunks))
	now := time.Now()
	for _, c := range chunks {
		data, err := anvil.EncodeChunkNBT(c)
		if err != nil {
			return err
		}
		rx, rz := region.RegionOf(c.Pos)
		rp := regionPos{rx, rz}
		if byRegion[rp] == nil {
			byRegion[rp] = make(map[chunk.Pos][]byte)
		}
		byRegion[rp][c.Pos] = data
		rows = append(rows, ChunkRecord{
			X:              c.Pos.X,
			Z:              c.Pos.Z,
			Region:         filepath.Base(region.RegionPath("", rx, rz)),
			SavedAt:        now,
			NonAirSections: c.NonAirSections(),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for rp, updates := range byRegion {
		existing, err := s.loadRegion(rp)
		if err != nil {
			return fmt.Errorf("save region (%d, %d): %w", rp.X, rp.Z, err)
		}
		merged := make(map[chunk.Pos][]byte, len(existing)+len(updates))
		for pos, data := range existing {
			merged[pos] = data
		}
		for pos, data := range updates {
			merged[pos] = data
		}
		if err := region.SaveRegion(s.regionDir(), rp.X, rp.Z, merged); err != nil {
			return fmt.Errorf("save region (%d, %d): %w", rp.X, rp.Z, err)
		}
		s.regions[rp] = merged
	}
	if err := s.index.Record(ctx, rows); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}
	s.log.Debug("saved chunks", "chunks", len(chunks), "regions", len(byRegion))
	return nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
