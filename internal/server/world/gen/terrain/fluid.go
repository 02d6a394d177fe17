package terrain

import "github.com/OCharnyshevich/worldgen-server/pkg/world/block"

// LavaLevel is the exclusive top of the lava sea in every overworld column.
const LavaLevel = -54

// FluidLevel fills every open block below Y with State.
type FluidLevel struct {
	Y     int
	State block.State
}

// At returns the fluid for an open block at y, or air above the level.
func (l FluidLevel) At(y int) block.State {
	if y < l.Y {
		return l.State
	}
	return block.Air
}

// FluidPicker chooses the fluid level of an open block.
type FluidPicker struct {
	top, bottom FluidLevel
	split       int
}

// NewFluidPicker returns the sea level picker: a water sea at seaLevel with
// lava below LavaLevel.
func NewFluidPicker(seaLevel int) FluidPicker {
	top := FluidLevel{Y: seaLevel, State: block.Water}
	bottom := FluidLevel{Y: LavaLevel, State: block.Lava}
	return FluidPicker{top: top, bottom: bottom, split: min(top.Y, bottom.Y)}
}

// Level returns the fluid level that governs y.
func (p FluidPicker) Level(y int) FluidLevel {
	if y < p.split {
		return p.bottom
	}
	return p.top
}

// Open returns the state of a non-solid block at y.
func (p FluidPicker) Open(y int) block.State { return p.Level(y).At(y) }
