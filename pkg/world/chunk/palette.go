package chunk

import (
	"fmt"
	"math/bits"
)

// Minimum entry widths of the persisted paletted containers.
const (
	BlockMinBits = 4
	BiomeMinBits = 1
)

func entryBits(paletteLen, minBits int) int {
	if paletteLen <= 1 {
		return 0
	}
	return max(minBits, bits.Len(uint(paletteLen-1)))
}

// PackedLen is the number of longs holding n entries of width b. Entries
// never span two longs.
func PackedLen(n, b int) int {
	if b == 0 {
		return 0
	}
	per := 64 / b
	return (n + per - 1) / per
}

// EncodePalette builds the palette of values in first-seen order and packs
// the palette indices. A single-entry palette has no data.
func EncodePalette[T comparable](values []T, minBits int) (palette []T, data []int64) {
	index := make(map[T]int)
	idx := make([]int, len(values))
	for i, v := range values {
		j, ok := index[v]
		if !ok {
			j = len(palette)
			index[v] = j
			palette = append(palette, v)
		}
		idx[i] = j
	}
	b := entryBits(len(palette), minBits)
	if b == 0 {
		return palette, nil
	}
	per := 64 / b
	data = make([]int64, PackedLen(len(values), b))
	for i, j := range idx {
		data[i/per] |= int64(uint64(j) << (uint(i%per) * uint(b)))
	}
	return palette, data
}

// DecodePalette unpacks n values from palette and data.
func DecodePalette[T any](palette []T, data []int64, n, minBits int) ([]T, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("chunk: empty palette")
	}
	out := make([]T, n)
	b := entryBits(len(palette), minBits)
	if b == 0 || len(data) == 0 {
		for i := range out {
			out[i] = palette[0]
		}
		return out, nil
	}
	if want := PackedLen(n, b); len(data) != want {
		return nil, fmt.Errorf("chunk: packed data has %d longs, want %d", len(data), want)
	}
	per, mask := 64/b, uint64(1)<<uint(b)-1
	for i := range out {
		j := int(uint64(data[i/per]) >> (uint(i%per) * uint(b)) & mask)
		if j >= len(palette) {
			return nil, fmt.Errorf("chunk: palette index %d out of range %d", j, len(palette))
		}
		out[i] = palette[j]
	}
	return out, nil
}
