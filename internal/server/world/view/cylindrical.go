// Package view computes the chunks inside a player's cylindrical view
// distance.
package view

import "github.com/OCharnyshevich/worldgen-server/pkg/world/chunk"

// Cylindrical is the set of chunks within ViewDistance of Center. The two
// chunks nearest the center on each axis are always included.
type Cylindrical struct {
	Center       chunk.Pos
	ViewDistance int
}

func New(center chunk.Pos, viewDistance int) Cylindrical {
	return Cylindrical{Center: center, ViewDistance: max(viewDistance, 1)}
}

func (c Cylindrical) left() int   { return c.Center.X - c.ViewDistance - 1 }
func (c Cylindrical) right() int  { return c.Center.X + c.ViewDistance + 1 }
func (c Cylindrical) bottom() int { return c.Center.Z - c.ViewDistance - 1 }
func (c Cylindrical) top() int    { return c.Center.Z + c.ViewDistance + 1 }

// IsWithinDistance reports whether chunk (x, z) lies inside the cylinder.
func (c Cylindrical) IsWithinDistance(x, z int) bool {
	rx := int64(max(abs(x-c.Center.X)-2, 0))
	rz := int64(max(abs(z-c.Center.Z)-2, 0))
	d := int64(c.ViewDistance)
	return rx*rx+rz*rz < d*d
}

// EstimatedCapacity is an upper bound on len(AllChunksWithin()).
func (c Cylindrical) EstimatedCapacity() int {
	return (c.ViewDistance + 3) * (c.ViewDistance + 3) * 3167 >> 10
}

// AllChunksWithin returns every chunk inside the cylinder, column by column.
func (c Cylindrical) AllChunksWithin() []chunk.Pos {
	out := make([]chunk.Pos, 0, c.EstimatedCapacity())
	for x := c.left(); x <= c.right(); x++ {
		in := false
		for z := c.bottom(); z <= c.top(); z++ {
			if c.IsWithinDistance(x, z) {
				out = append(out, chunk.Pos{X: x, Z: z})
				in = true
			} else if in {
				break
			}
		}
	}
	return out
}

// ForEachChangedChunk calls included for each chunk of next missing from
// prev, then removed for each chunk of prev missing from next.
func ForEachChangedChunk(prev, next Cylindrical, included, removed func(chunk.Pos)) {
	for _, p := range next.AllChunksWithin() {
		if !prev.IsWithinDistance(p.X, p.Z) {
			included(p)
		}
	}
	for _, p := range prev.AllChunksWithin() {
		if !next.IsWithinDistance(p.X, p.Z) {
			removed(p)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
