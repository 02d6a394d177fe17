package anvil

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

func TestRegionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	chunks := map[chunk.Pos][]byte{
		{X: -32, Z: -1}: []byte("first"),
		{X: -1, Z: -32}: bytes.Repeat([]byte{7}, 3*sectorSize),
		{X: -20, Z: -5}: {10, 0, 0, 0},
	}
	if err := SaveRegion(dir, -1, -1, chunks); err != nil {
		t.Fatalf("SaveRegion: %v", err)
	}
	got, err := LoadRegion(dir, -1, -1)
	if err != nil {
		t.Fatalf("LoadRegion: %v", err)
	}
	if len(got) != len(chunks) {
		t.Fatalf("loaded %d chunks, want %d", len(got), len(chunks))
	}
	for pos, want := range chunks {
		if !bytes.Equal(got[pos], want) {
			t.Errorf("chunk %v = %d bytes, want %d", pos, len(got[pos]), len(want))
		}
	}
}

func TestSaveRegionLayout(t *testing.T) {
	dir := t.TempDir()
	if err := SaveRegion(dir, 0, 0, map[chunk.Pos][]byte{{X: 1, Z: 0}: []byte("abc")}); err != nil {
		t.Fatalf("SaveRegion failed: %v", err)
	}
	raw, err := os.ReadFile(RegionPath(dir, 0, 0))
	if err != nil {
		t.Fatalf("read region file: %v", err)
	}
	if len(raw)%sectorSize != 0 {
		t.Errorf("file size %d is not sector aligned", len(raw))
	}
	entry := binary.BigEndian.Uint32(raw[4:8])
	if offset, count := entry>>8, entry&0xFF; offset != 2 || count != 1 {
		t.Errorf("location of chunk (1, 0) = %d+%d, want 2+1", offset, count)
	}
	if raw[2*sectorSize+4] != compressionZlib {
		t.Errorf("compression byte = %d, want %d", raw[2*sectorSize+4], compressionZlib)
	}
}

func TestSaveRegionRejectsForeignChunk(t *testing.T) {
	if err := SaveRegion(t.TempDir(), 0, 0, map[chunk.Pos][]byte{{X: 40, Z: 0}: nil}); err == nil {
		t.Error("SaveRegion accepted a chunk of region (1, 0)")
	}
}

func TestLoadMissingRegion(t *testing.T) {
	got, err := LoadRegion(t.TempDir(), 3, 4)
	if err != nil || len(got) != 0 {
		t.Errorf("LoadRegion of a missing file = %v, %v, want empty, nil", got, err)
	}
}

func TestRegionOf(t *testing.T) {
	tests := []struct {
		pos    chunk.Pos
		rx, rz int
	}{
		{chunk.Pos{X: 0, Z: 31}, 0, 0},
		{chunk.Pos{X: 32, Z: -1}, 1, -1},
		{chunk.Pos{X: -33, Z: -32}, -2, -1},
	}
	for _, tt := range tests {
		if rx, rz := RegionOf(tt.pos); rx != tt.rx || rz != tt.rz {
			t.Errorf("RegionOf(%v) = (%d, %d), want (%d, %d)", tt.pos, rx, rz, tt.rx, tt.rz)
		}
	}
}

func TestEncodeRegionTableOrder(t *testing.T) {
	chunks := map[chunk.Pos][]byte{
		{X: 5, Z: 1}: []byte("later"),
		{X: 1, Z: 0}: []byte("first"),
		{X: 0, Z: 2}: []byte("last"),
	}
	raw, err := encodeRegion(chunks, 77)
	if err != nil {
		t.Fatalf("encodeRegion: %v", err)
	}
	for i, pos := range []chunk.Pos{{X: 1, Z: 0}, {X: 5, Z: 1}, {X: 0, Z: 2}} {
		idx := tableIndex(pos) * 4
		entry := binary.BigEndian.Uint32(raw[idx:])
		if want := uint32(2+i)<<8 | 1; entry != want {
			t.Errorf("location of %v = %#x, want %#x", pos, entry, want)
		}
		if ts := binary.BigEndian.Uint32(raw[sectorSize+idx:]); ts != 77 {
			t.Errorf("timestamp of %v = %d, want 77", pos, ts)
		}
	}
	if want := (2 + len(chunks)) * sectorSize; len(raw) != want {
		t.Errorf("encoded %d bytes, want %d", len(raw), want)
	}
}
