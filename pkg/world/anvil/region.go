// Package anvil reads and writes region (.mca) files: 32x32 chunks of
// compressed NBT behind a sector table.
package anvil

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/klauspost/compress/zlib"

	"github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"
)

const (
	sectorSize      = 4096
	headerSectors   = 2 // location table + timestamp table
	compressionZlib = 2
	regionChunks    = 32 * 32
)

// RegionOf returns the region holding chunk pos.
func RegionOf(pos chunk.Pos) (rx, rz int) { return pos.X >> 5, pos.Z >> 5 }

// RegionPath is the file of region (rx, rz) inside dir.
func RegionPath(dir string, rx, rz int) string {
	return filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))
}

func tableIndex(pos chunk.Pos) int { return (pos.X & 31) + (pos.Z&31)*32 }

// SaveRegion writes all provided chunks to a .mca region file, replacing it.
// chunks maps chunk positions to their uncompressed NBT data.
func SaveRegion(dir string, rx, rz int, chunks map[chunk.Pos][]byte) error {
	for pos := range chunks {
		if x, z := RegionOf(pos); x != rx || z != rz {
			return fmt.Errorf("chunk %v is not in region (%d, %d)", pos, rx, rz)
		}
	}
	raw, err := encodeRegion(chunks, uint32(time.Now().Unix()))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create region dir: %w", err)
	}
	return writeAtomic(RegionPath(dir, rx, rz), raw)
}

// encodeRegion lays chunks out in table order, each in whole sectors after
// the location and timestamp tables.
func encodeRegion(chunks map[chunk.Pos][]byte, now uint32) ([]byte, error) {
	positions := make([]chunk.Pos, 0, len(chunks))
	for pos := range chunks {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b chunk.Pos) int { return cmp.Compare(tableIndex(a), tableIndex(b)) })

	out := bytes.NewBuffer(make([]byte, headerSectors*sectorSize))
	sector := uint32(headerSectors)
	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	for _, pos := range positions {
		zbuf.Reset()
		zw.Reset(&zbuf)
		if _, err := zw.Write(chunks[pos]); err != nil {
			return nil, fmt.Errorf("compress chunk %v: %w", pos, err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("compress chunk %v: %w", pos, err)
		}

		// length(4) + compression(1) + payload, padded to whole sectors
		length := uint32(zbuf.Len()) + 1
		count := (4 + length + sectorSize - 1) / sectorSize
		if count > 0xFF {
			return nil, fmt.Errorf("chunk %v needs %d sectors", pos, count)
		}
		header := out.Bytes()
		i := tableIndex(pos) * 4
		binary.BigEndian.PutUint32(header[i:], sector<<8|count)
		binary.BigEndian.PutUint32(header[sectorSize+i:], now)

		out.Write(binary.BigEndian.AppendUint32(nil, length))
		out.WriteByte(compressionZlib)
		out.Write(zbuf.Bytes())
		out.Write(make([]byte, int(count)*sectorSize-int(4+length)))
		sector += count
	}
	return out.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp region file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename region file: %w", err)
	}
	return nil
}

// LoadRegion reads every chunk of region (rx, rz) as uncompressed NBT. A
// missing file is an empty region.
func LoadRegion(dir string, rx, rz int) (map[chunk.Pos][]byte, error) {
	raw, err := os.ReadFile(RegionPath(dir, rx, rz))
	if errors.Is(err, os.ErrNotExist) {
		return map[chunk.Pos][]byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read region file: %w", err)
	}
	if len(raw) < headerSectors*sectorSize {
		return nil, fmt.Errorf("region (%d, %d): truncated header", rx, rz)
	}

	out := make(map[chunk.Pos][]byte)
	for i := range regionChunks {
		entry := binary.BigEndian.Uint32(raw[i*4 : i*4+4])
		if entry == 0 {
			continue
		}
		pos := chunk.Pos{X: rx<<5 | i&31, Z: rz<<5 | i>>5}
		data, err := readSector(raw, int(entry>>8), int(entry&0xFF))
		if err != nil {
			return nil, fmt.Errorf("chunk %v: %w", pos, err)
		}
		out[pos] = data
	}
	return out, nil
}

func readSector(raw []byte, offset, count int) ([]byte, error) {
	start, end := offset*sectorSize, (offset+count)*sectorSize
	if offset < headerSectors || count == 0 || end > len(raw) {
		return nil, fmt.Errorf("bad location %d+%d", offset, count)
	}
	length := int(binary.BigEndian.Uint32(raw[start : start+4]))
	if length < 1 || start+4+length > len(raw) {
		return nil, fmt.Errorf("bad payload length %d", length)
	}
	if c := raw[start+4]; c != compressionZlib {
		return nil, fmt.Errorf("unsupported compression %d", c)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw[start+5 : start+4+length]))
	if err != nil {
		return nil, fmt.Errorf("create zlib reader: %w", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return data, nil
}
