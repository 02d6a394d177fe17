package anvil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/biome"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/gen"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/nbt"
)

func sampleChunk() *chunk.ChunkData {
	c := gen.NewFlatGenerator(0).Generate(-3, 7)
	c.SetBlock(1, 70, 2, block.Sandstone)
	c.SetBlock(15, 319, 15, block.Ice)
	for x := range 16 {
		c.SetBlock(x, 0, 4, block.State(x%int(block.Count)))
	}
	c.SetBiome(2, 40, 1, uint8(biome.Desert))
	c.SetBiome(3, 95, 3, uint8(biome.FrozenPeaks))
	return c
}

func TestChunkRoundTrip(t *testing.T) {
	want := sampleChunk()
	data, err := EncodeChunkNBT(want)
	if err != nil {
		t.Fatalf("EncodeChunkNBT: %v", err)
	}
	got, err := DecodeChunkNBT(data)
	if err != nil {
		t.Fatalf("DecodeChunkNBT: %v", err)
	}
	if got.Pos != want.Pos {
		t.Errorf("Pos = %v, want %v", got.Pos, want.Pos)
	}
	for x := range 16 {
		for z := range 16 {
			for y := chunk.MinY; y <= chunk.MaxY; y++ {
				if a, b := got.GetBlock(x, y, z), want.GetBlock(x, y, z); a != b {
					t.Fatalf("block (%d, %d, %d) = %v, want %v", x, y, z, a, b)
				}
			}
		}
	}
	if got.Biomes != want.Biomes {
		t.Error("biomes differ after round trip")
	}
	if got.Heightmaps != want.Heightmaps {
		t.Error("heightmaps differ after round trip")
	}
	if got.Dirty() {
		t.Error("decoded chunk is dirty")
	}
}

func TestEncodeChunkNBTLayout(t *testing.T) {
	data, err := EncodeChunkNBT(sampleChunk())
	if err != nil {
		t.Fatalf("EncodeChunkNBT: %v", err)
	}
	_, root, err := nbt.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if v, _ := root.Int("DataVersion"); v != DataVersion {
		t.Errorf("DataVersion = %d, want %d", v, DataVersion)
	}
	if v, _ := root.Int("yPos"); v != -4 {
		t.Errorf("yPos = %d, want -4", v)
	}
	sections, _ := root.List("sections")
	if len(sections) != chunk.SectionCount {
		t.Fatalf("%d sections, want %d", len(sections), chunk.SectionCount)
	}
	top := sections[chunk.SectionCount-1].(nbt.Compound)
	if y, _ := top.Byte("Y"); y != 19 {
		t.Errorf("top section Y = %d, want 19", y)
	}
	states, _ := top.Compound("block_states")
	if palette, _ := states.List("palette"); len(palette) != 2 {
		t.Errorf("top section palette has %d entries, want 2", len(palette))
	}
	empty := sections[10].(nbt.Compound)
	states, _ = empty.Compound("block_states")
	if _, ok := states.LongArray("data"); ok {
		t.Error("homogeneous section carries packed data")
	}
}

func TestDecodeChunkNBTMalformed(t *testing.T) {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.BeginCompound("")
	w.Int("xPos", 1)
	w.EndCompound()
	if _, err := DecodeChunkNBT(buf.Bytes()); !errors.Is(err, ErrMalformed) {
		t.Errorf("missing zPos: err = %v, want ErrMalformed", err)
	}
	if _, err := DecodeChunkNBT([]byte{1, 2, 3}); err == nil {
		t.Error("garbage decoded without error")
	}
}
