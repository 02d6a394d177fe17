package chunk

import "fmt"

// HeightmapKind selects one of the persisted heightmaps.
type HeightmapKind int

const (
	MotionBlocking HeightmapKind = iota
	WorldSurface
)

func (k HeightmapKind) String() string {
	switch k {
	case MotionBlocking:
		return "MOTION_BLOCKING"
	case WorldSurface:
		return "WORLD_SURFACE"
	}
	return fmt.Sprintf("HeightmapKind(%d)", int(k))
}

const (
	// HeightmapBits holds any height in [0, Height].
	HeightmapBits = 9
	perLong       = 64 / HeightmapBits
	// HeightmapLongs is the packed length of one heightmap.
	HeightmapLongs = (Area + perLong - 1) / perLong
	heightMask     = 1<<HeightmapBits - 1
)

// Heightmap packs one height per column, seven to a long. A stored height is
// one above the topmost matching block, counted from MinY; zero means none.
type Heightmap [HeightmapLongs]int64

func (h *Heightmap) Get(x, z int) int {
	i := z<<4 | x
	return int(uint64(h[i/perLong])>>(uint(i%perLong)*HeightmapBits)) & heightMask
}

func (h *Heightmap) Set(x, z, v int) {
	i := z<<4 | x
	shift := uint(i%perLong) * HeightmapBits
	w := uint64(h[i/perLong])
	w &^= heightMask << shift
	w |= uint64(v&heightMask) << shift
	h[i/perLong] = int64(w)
}

// Heightmaps holds the two heightmaps a chunk persists.
type Heightmaps struct {
	MotionBlocking Heightmap
	WorldSurface   Heightmap
}

func (h *Heightmaps) Of(kind HeightmapKind) *Heightmap {
	if kind == WorldSurface {
		return &h.WorldSurface
	}
	return &h.MotionBlocking
}

// Get returns the kind's stored height of column (x, z).
func (h *Heightmaps) Get(kind HeightmapKind, x, z int) int { return h.Of(kind).Get(x, z) }

func (h *Heightmaps) Set(kind HeightmapKind, x, z, v int) { h.Of(kind).Set(x, z, v) }
