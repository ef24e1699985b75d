// Package sim implements the predator-prey agent lifecycle and
// spatial-interaction engine: agents, their containers, the spatial
// index, and the per-timestep update loop that ties them together.
package sim

// Position is a 2D point in world coordinates. Value semantics
// throughout; methods return new positions rather than mutating.
type Position struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of p and other.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Scale returns p scaled by s.
func (p Position) Scale(s float64) Position {
	return Position{X: p.X * s, Y: p.Y * s}
}

// DistSquared returns the squared euclidean distance to other.
// Squared form avoids the sqrt in the neighbor-query hot path.
func (p Position) DistSquared(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Clamp returns p constrained to [0,width]x[0,height].
func (p Position) Clamp(width, height float64) Position {
	return Position{
		X: clamp(p.X, 0, width),
		Y: clamp(p.Y, 0, height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
