// Package anvil converts chunk columns to and from their region NBT form.
package anvil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/biome"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/nbt"
)

// DataVersion is the data version stamped on written chunks.
const DataVersion = 3953

const statusFull = "minecraft:full"

// ErrMalformed reports chunk NBT missing a required field.
var ErrMalformed = errors.New("malformed chunk nbt")

// EncodeChunkNBT encodes a chunk in the 1.18+ region layout.
func EncodeChunkNBT(c *chunk.ChunkData) ([]byte, error) {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)

	w.BeginCompound("")
	w.Int("DataVersion", DataVersion)
	w.Int("xPos", int32(c.Pos.X))
	w.Int("yPos", int32(chunk.MinY>>4))
	w.Int("zPos", int32(c.Pos.Z))
	w.String("Status", statusFull)
	w.Long("LastUpdate", 0)

	w.BeginList("sections", nbt.TagCompound, chunk.SectionCount)
	for i := range chunk.SectionCount {
		w.ListCompound()
		w.Byte("Y", int8(i+chunk.MinY>>4))
		writeBlockStates(w, c, i)
		writeBiomes(w, &c.Biomes[i])
		w.EndCompound()
	}
	w.EndList()

	w.BeginCompound("Heightmaps")
	w.LongArray("MOTION_BLOCKING", c.Heightmaps.MotionBlocking[:])
	w.LongArray("WORLD_SURFACE", c.Heightmaps.WorldSurface[:])
	w.EndCompound()

	w.EndCompound()
	if err := w.Finish(); err != nil {
		return nil, fmt.Errorf("encode chunk %v: %w", c.Pos, err)
	}
	return buf.Bytes(), nil
}

func writeBlockStates(w *nbt.Writer, c *chunk.ChunkData, i int) {
	sec := c.Blocks().Section(i)
	var palette []block.State
	var data []int64
	if s, ok := sec.Homogeneous(); ok {
		palette = []block.State{s}
	} else {
		palette, data = chunk.EncodePalette(sec.Array()[:], chunk.BlockMinBits)
	}
	w.BeginCompound("block_states")
	w.BeginList("palette", nbt.TagCompound, int32(len(palette)))
	for _, s := range palette {
		w.ListCompound()
		w.String("Name", s.Name())
		w.EndCompound()
	}
	w.EndList()
	if len(data) > 0 {
		w.LongArray("data", data)
	}
	w.EndCompound()
}

func writeBiomes(w *nbt.Writer, sec *chunk.BiomeSection) {
	palette, data := chunk.EncodePalette(sec[:], chunk.BiomeMinBits)
	w.BeginCompound("biomes")
	w.BeginList("palette", nbt.TagString, int32(len(palette)))
	for _, id := range palette {
		w.ListString(biome.Biome(id).Name())
	}
	w.EndList()
	if len(data) > 0 {
		w.LongArray("data", data)
	}
	w.EndCompound()
}

// DecodeChunkNBT rebuilds a chunk from its region NBT. Unknown block and
// biome names decode as air and plains.
func DecodeChunkNBT(data []byte) (*chunk.ChunkData, error) {
	_, root, err := nbt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode chunk nbt: %w", err)
	}
	x, okX := root.Int("xPos")
	z, okZ := root.Int("zPos")
	if !okX || !okZ {
		return nil, fmt.Errorf("%w: missing position", ErrMalformed)
	}
	c := chunk.New(chunk.Pos{X: int(x), Z: int(z)})

	sections, ok := root.List("sections")
	if !ok {
		return nil, fmt.Errorf("%w: chunk %v has no sections", ErrMalformed, c.Pos)
	}
	for _, raw := range sections {
		sec, ok := raw.(nbt.Compound)
		if !ok {
			return nil, fmt.Errorf("%w: section is not a compound", ErrMalformed)
		}
		if err := readSection(c, sec); err != nil {
			return nil, fmt.Errorf("chunk %v: %w", c.Pos, err)
		}
	}

	if !readHeightmaps(c, root) {
		c.RecalculateHeightmaps()
	}
	c.ClearDirty()
	return c, nil
}

func readSection(c *chunk.ChunkData, sec nbt.Compound) error {
	y, ok := sec.Byte("Y")
	if !ok {
		return fmt.Errorf("%w: section without Y", ErrMalformed)
	}
	i := int(y) - chunk.MinY>>4
	if i < 0 || i >= chunk.SectionCount {
		// Light-only sections above and below the column.
		return nil
	}
	if states, ok := sec.Compound("block_states"); ok {
		palette, data, err := readPalette(states, func(v any) (block.State, error) {
			entry, ok := v.(nbt.Compound)
			if !ok {
				return 0, fmt.Errorf("%w: block palette entry is not a compound", ErrMalformed)
			}
			name, _ := entry.String("Name")
			s, _ := block.ByName(name)
			return s, nil
		})
		if err != nil {
			return fmt.Errorf("section %d block states: %w", y, err)
		}
		blocks, err := chunk.DecodePalette(palette, data, chunk.SectionVolume, chunk.BlockMinBits)
		if err != nil {
			return fmt.Errorf("section %d block states: %w", y, err)
		}
		baseY := chunk.MinY + i*16
		for j, s := range blocks {
			if s != block.Air {
				c.SetBlockNoHeightmapUpdate(j&15, baseY+j>>8, j>>4&15, s)
			}
		}
	}
	if biomes, ok := sec.Compound("biomes"); ok {
		palette, data, err := readPalette(biomes, func(v any) (uint8, error) {
			name, ok := v.(string)
			if !ok {
				return 0, fmt.Errorf("%w: biome palette entry is not a string", ErrMalformed)
			}
			b, ok := biome.ByName(name)
			if !ok {
				b = biome.Plains
			}
			return uint8(b), nil
		})
		if err != nil {
			return fmt.Errorf("section %d biomes: %w", y, err)
		}
		ids, err := chunk.DecodePalette(palette, data, chunk.BiomesPerSection, chunk.BiomeMinBits)
		if err != nil {
			return fmt.Errorf("section %d biomes: %w", y, err)
		}
		copy(c.Biomes[i][:], ids)
	}
	return nil
}

func readPalette[T any](container nbt.Compound, entry func(any) (T, error)) ([]T, []int64, error) {
	raw, ok := container.List("palette")
	if !ok || len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: missing palette", ErrMalformed)
	}
	palette := make([]T, len(raw))
	for i, v := range raw {
		e, err := entry(v)
		if err != nil {
			return nil, nil, err
		}
		palette[i] = e
	}
	data, _ := container.LongArray("data")
	return palette, data, nil
}

func readHeightmaps(c *chunk.ChunkData, root nbt.Compound) bool {
	hm, ok := root.Compound("Heightmaps")
	if !ok {
		return false
	}
	mb, ok1 := hm.LongArray("MOTION_BLOCKING")
	ws, ok2 := hm.LongArray("WORLD_SURFACE")
	if !ok1 || !ok2 || len(mb) != chunk.HeightmapLongs || len(ws) != chunk.HeightmapLongs {
		return false
	}
	copy(c.Heightmaps.MotionBlocking[:], mb)
	copy(c.Heightmaps.WorldSurface[:], ws)
	return true
}
