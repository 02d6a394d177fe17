// Package world holds the chunk columns of a running world over a generator.
package world

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/view"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/gen"
)

// ErrChunkNotFound is returned by a Loader that holds no data for a chunk.
var ErrChunkNotFound = errors.New("chunk not found")

// Loader reads previously saved chunks.
type Loader interface {
	LoadChunk(pos chunk.Pos) (*chunk.ChunkData, error)
}

// Option configures a World.
type Option func(*World)

// WithLoader makes the world read saved chunks before generating new ones.
func WithLoader(l Loader) Option { return func(w *World) { w.loader = l } }

func WithLogger(log *slog.Logger) Option { return func(w *World) { w.log = log } }

// DirtyChunk is a modified chunk and the version it had when listed.
type DirtyChunk struct {
	Pos     chunk.Pos
	Version uint64
}

// World tracks chunk columns, loading or generating them on first access.
type World struct {
	mu        sync.RWMutex
	generator gen.Generator
	loader    Loader
	log       *slog.Logger
	chunks    map[chunk.Pos]*chunk.ChunkData
	versions  map[chunk.Pos]uint64
}

// NewWorld creates a new World with the given generator.
func NewWorld(generator gen.Generator, opts ...Option) *World {
	w := &World{
		generator: generator,
		log:       slog.New(slog.DiscardHandler),
		chunks:    make(map[chunk.Pos]*chunk.ChunkData),
		versions:  make(map[chunk.Pos]uint64),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *World) produce(pos chunk.Pos) *chunk.ChunkData {
	if w.loader != nil {
		c, err := w.loader.LoadChunk(pos)
		if err == nil {
			c.ClearDirty()
			return c
		}
		if !errors.Is(err, ErrChunkNotFound) {
			w.log.Error("load chunk, regenerating", "chunk", pos, "error", err)
		}
	}
	began := time.Now()
	c := w.generator.Generate(pos.X, pos.Z)
	w.log.Debug("generated chunk", "chunk", pos, "elapsed", time.Since(began))
	return c
}

// GetOrGenerateChunk returns the ChunkData for the given chunk coordinates,
// loading or generating and caching it if needed.
func (w *World) GetOrGenerateChunk(cx, cz int) *chunk.ChunkData {
	c, _ := w.getOrGenerate(chunk.Pos{X: cx, Z: cz})
	return c
}

func (w *World) getOrGenerate(pos chunk.Pos) (*chunk.ChunkData, bool) {
	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c, false
	}
	w.mu.RUnlock()

	c := w.produce(pos)

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock.
	if existing, ok := w.chunks[pos]; ok {
		return existing, false
	}
	w.chunks[pos] = c
	if c.Dirty() {
		w.versions[pos]++
	}
	return c, true
}

// GetBlock returns the block state at the given position, generating its
// chunk if needed.
func (w *World) GetBlock(x, y, z int) block.State {
	c := w.GetOrGenerateChunk(x>>4, z>>4)
	w.mu.RLock()
	defer w.mu.RUnlock()
	return c.GetBlock(x&15, y, z&15)
}

// SetBlock writes a block state into its chunk and marks the chunk dirty.
// Writes outside the column are ignored.
func (w *World) SetBlock(x, y, z int, s block.State) {
	if !chunk.InRange(y) {
		return
	}
	pos := chunk.PosOfBlock(x, z)
	c, _ := w.getOrGenerate(pos)

	w.mu.Lock()
	defer w.mu.Unlock()
	if c.GetBlock(x&15, y, z&15) == s {
		return
	}
	c.SetBlock(x&15, y, z&15, s)
	w.versions[pos]++
}

// Loaded returns the number of chunks held in memory.
func (w *World) Loaded() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// DirtyChunks lists every chunk modified since it was last saved.
func (w *World) DirtyChunks() []DirtyChunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []DirtyChunk
	for pos, c := range w.chunks {
		if c.Dirty() {
			out = append(out, DirtyChunk{Pos: pos, Version: w.versions[pos]})
		}
	}
	return out
}

// ReadChunks calls fn with the listed chunks while holding off writers. fn
// must not modify the chunks.
func (w *World) ReadChunks(list []DirtyChunk, fn func([]*chunk.ChunkData) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	cs := make([]*chunk.ChunkData, 0, len(list))
	for _, d := range list {
		if c, ok := w.chunks[d.Pos]; ok {
			cs = append(cs, c)
		}
	}
	return fn(cs)
}

// MarkSaved clears the dirty flag of every listed chunk not modified since
// the list was taken.
func (w *World) MarkSaved(list []DirtyChunk) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, d := range list {
		if c, ok := w.chunks[d.Pos]; ok && w.versions[d.Pos] == d.Version {
			c.ClearDirty()
		}
	}
}

// PreGenerate loads or generates every chunk of area with up to workers
// chunks in flight and returns how many chunks it added. Chunks not started
// before ctx is done are skipped.
func (w *World) PreGenerate(ctx context.Context, area view.Cylindrical, workers int) (int, error) {
	return w.GenerateChunks(ctx, area.AllChunksWithin(), workers)
}

// GenerateChunks loads or generates every listed chunk like PreGenerate.
func (w *World) GenerateChunks(ctx context.Context, list []chunk.Pos, workers int) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	var added atomic.Int64
	for _, pos := range list {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, fresh := w.getOrGenerate(pos); fresh {
				added.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return int(added.Load()), err
}

// Unload drops a chunk from memory unless it has unsaved changes.
func (w *World) Unload(pos chunk.Pos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.chunks[pos]
	if !ok || c.Dirty() {
		return false
	}
	delete(w.chunks, pos)
	delete(w.versions, pos)
	return true
}

// SpawnHeight returns the terrain height at spawn (0, 0) + 1 for a player to stand on.
func (w *World) SpawnHeight() int {
	return w.generator.HeightAt(0, 0) + 1
}
