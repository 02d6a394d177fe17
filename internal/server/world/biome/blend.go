package biome

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
)

// HashSeed obfuscates a world seed for biome blending.
func HashSeed(seed int64) int64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	sum := sha256.Sum256(buf[:])
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// BlendPos returns the biome cell whose jittered center lies nearest to the
// block at (x, y, z). The biome y is clamped to the dimension's range.
func BlendPos(bottomY, height int, seed int64, x, y, z int) (bx, by, bz int) {
	x, y, z = x-2, y-2, z-2
	bx, by, bz = mathutil.BiomeFromBlock(x), mathutil.BiomeFromBlock(y), mathutil.BiomeFromBlock(z)
	qx, qy, qz := float64(x&3)/4, float64(y&3)/4, float64(z&3)/4

	best, bestScore := 0, math.Inf(1)
	for perm := range 8 {
		px, fx := shift(bx, qx, perm&4 != 0)
		py, fy := shift(by, qy, perm&2 != 0)
		pz, fz := shift(bz, qz, perm&1 != 0)
		if s := scorePermutation(seed, px, py, pz, fx, fy, fz); bestScore > s {
			best, bestScore = perm, s
		}
	}
	bx, _ = shift(bx, qx, best&4 != 0)
	by, _ = shift(by, qy, best&2 != 0)
	bz, _ = shift(bz, qz, best&1 != 0)

	bottom := mathutil.BiomeFromBlock(bottomY)
	top := bottom + mathutil.BiomeFromBlock(height) - 1
	return bx, min(max(by, bottom), top), bz
}

func shift(v int, quarter float64, up bool) (int, float64) {
	if up {
		return v + 1, quarter - 1
	}
	return v, quarter
}

func scorePermutation(seed int64, x, y, z int, fx, fy, fz float64) float64 {
	mix := seed
	for _, salt := range [...]int{x, y, z, x, y, z} {
		mix = saltMix(mix, int64(salt))
	}
	ox := scaleMix(mix)
	mix = saltMix(mix, seed)
	oy := scaleMix(mix)
	mix = saltMix(mix, seed)
	oz := scaleMix(mix)

	dz, dy, dx := fz+oz, fy+oy, fx+ox
	return float64(dz*dz) + float64(dy*dy) + float64(dx*dx)
}

func scaleMix(l int64) float64 {
	d := float64(mathutil.FloorMod64(l>>24, 1024)) / 1024
	return (d - 0.5) * 0.9
}

func saltMix(seed, salt int64) int64 {
	return seed*(seed*6364136223846793005+1442695040888963407) + salt
}
