package mathutil

// Biome cells are 4 blocks wide, sections 16.
const (
	BiomeShift   = 2
	SectionShift = 4
)

func BiomeFromBlock(v int) int { return v >> BiomeShift }

func BiomeToBlock(v int) int { return v << BiomeShift }

func SectionFromBlock(v int) int { return v >> SectionShift }

func SectionToBlock(v int) int { return v << SectionShift }

// PackColumn packs a column (or chunk) position into one 64-bit key.
func PackColumn(x, z int) uint64 {
	return uint64(uint32(int32(x))) | uint64(uint32(int32(z)))<<32
}

// UnpackColumn reverses PackColumn.
func UnpackColumn(packed uint64) (x, z int) {
	return int(int32(uint32(packed))), int(int32(uint32(packed >> 32)))
}
