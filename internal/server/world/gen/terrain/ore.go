package terrain

import (
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
	"github.com/OCharnyshevich/worldgen-server/pkg/random"
	"github.com/OCharnyshevich/worldgen-server/pkg/world/block"
)

// VeinType describes one large ore vein.
type VeinType struct {
	Ore, RawOre, Filler block.State
	MinY, MaxY          int
}

var (
	CopperVein = VeinType{Ore: block.CopperOre, RawOre: block.RawCopperBlock, Filler: block.Granite, MinY: 0, MaxY: 50}
	IronVein   = VeinType{Ore: block.DeepslateIronOre, RawOre: block.RawIronBlock, Filler: block.Tuff, MinY: -60, MaxY: -8}
)

// veinNoise reads the three vein roots at the current block.
type veinNoise interface {
	toggle() float64
	ridged() float64
	gap() float64
}

type oreVeins struct {
	rnd random.Positional
}

// sample returns the vein block at (x, y, z), or ok=false to keep the
// default block.
func (o oreVeins) sample(n veinNoise, x, y, z int) (block.State, bool) {
	toggle := n.toggle()
	vein := IronVein
	if toggle > 0 {
		vein = CopperVein
	}
	above, below := vein.MaxY-y, y-vein.MinY
	if above < 0 || below < 0 {
		return 0, false
	}
	edge := mathutil.ClampedMap(float64(min(above, below)), 0, 20, -0.2, 0)
	strength := abs(toggle)
	if strength+edge < float64(float32(0.4)) {
		return 0, false
	}
	r := o.rnd.At(x, y, z)
	if r.NextFloat() > 0.7 || n.ridged() >= 0 {
		return 0, false
	}
	chance := mathutil.ClampedMap(strength,
		float64(float32(0.4)), float64(float32(0.6)),
		float64(float32(0.1)), float64(float32(0.3)))
	if float64(r.NextFloat()) < chance && n.gap() > float64(float32(-0.3)) {
		if r.NextFloat() < 0.02 {
			return vein.RawOre, true
		}
		return vein.Ore, true
	}
	return vein.Filler, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
