package sim

import "math"

// SpatialGrid partitions the world into uniform cells so that
// proximity queries touch only nearby agents instead of the whole
// population. Each live agent appears in exactly one cell, the one
// containing its current position; every position change must go
// through Move so the index never lags the agents.
type SpatialGrid struct {
	cells    [][]*Agent
	cols     int
	rows     int
	cellSize float64
}

// NewSpatialGrid creates a grid covering a width x height world.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([][]*Agent, cols*rows)
	for i := range cells {
		cells[i] = make([]*Agent, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cells:    cells,
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
	}
}

// cellIndex returns the flat cell index for a position. Coordinates are
// clamped to the grid, so positions exactly on the far world edge land
// in the last cell rather than out of range.
func (g *SpatialGrid) cellIndex(pos Position) int {
	col := int(math.Floor(pos.X / g.cellSize))
	row := int(math.Floor(pos.Y / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}

// Insert adds the agent to the cell containing its current position.
func (g *SpatialGrid) Insert(a *Agent) {
	idx := g.cellIndex(a.Pos)
	g.cells[idx] = append(g.cells[idx], a)
}

// Remove deletes the agent from the cell containing its current
// position. Returns false if the agent was not found there, which
// indicates the index and the agent's position have diverged.
func (g *SpatialGrid) Remove(a *Agent) bool {
	return g.removeFromCell(a, g.cellIndex(a.Pos))
}

func (g *SpatialGrid) removeFromCell(a *Agent, idx int) bool {
	cell := g.cells[idx]
	for i, other := range cell {
		if other.ID == a.ID {
			last := len(cell) - 1
			cell[i] = cell[last]
			cell[last] = nil
			g.cells[idx] = cell[:last]
			return true
		}
	}
	return false
}

// Move relocates the agent from the cell of oldPos to the cell of its
// current position. No-op when both map to the same cell. Returns
// false if the agent was missing from its old cell.
func (g *SpatialGrid) Move(a *Agent, oldPos Position) bool {
	oldIdx := g.cellIndex(oldPos)
	newIdx := g.cellIndex(a.Pos)
	if oldIdx == newIdx {
		return true
	}
	if !g.removeFromCell(a, oldIdx) {
		return false
	}
	g.cells[newIdx] = append(g.cells[newIdx], a)
	return true
}

// cellRadius returns how many cell rings the scan box needs to cover
// the query radius. One ring suffices only when cellSize >= radius, so
// this is computed rather than hard-coded.
func (g *SpatialGrid) cellRadius(radius float64) int {
	return int(math.Ceil(radius / g.cellSize))
}

// Query returns all live agents within radius of pos. Candidates come
// from the bounding box of cells around the query cell and are filtered
// by exact squared distance.
func (g *SpatialGrid) Query(pos Position, radius float64) []*Agent {
	return g.query(pos, radius, false, 0)
}

// QuerySpecies is Query restricted to one species, avoiding mixed
// results in species-specific checks.
func (g *SpatialGrid) QuerySpecies(pos Position, radius float64, species Species) []*Agent {
	return g.query(pos, radius, true, species)
}

func (g *SpatialGrid) query(pos Position, radius float64, filter bool, species Species) []*Agent {
	radiusSq := radius * radius
	cr := g.cellRadius(radius)
	centerCol := int(math.Floor(pos.X / g.cellSize))
	centerRow := int(math.Floor(pos.Y / g.cellSize))

	var result []*Agent
	for row := max(0, centerRow-cr); row <= min(g.rows-1, centerRow+cr); row++ {
		for col := max(0, centerCol-cr); col <= min(g.cols-1, centerCol+cr); col++ {
			for _, a := range g.cells[row*g.cols+col] {
				if !a.Alive {
					continue
				}
				if filter && a.Species != species {
					continue
				}
				if pos.DistSquared(a.Pos) <= radiusSq {
					result = append(result, a)
				}
			}
		}
	}
	return result
}

// HasOppositeNeighbor reports whether any live agent of the opposite
// species is within radius of the agent. Cells are scanned in expanding
// rings from the agent's own cell and the search returns on the first
// match; this early exit dominates the per-step cost since the check
// runs once per live agent per timestep.
func (g *SpatialGrid) HasOppositeNeighbor(a *Agent, radius float64) bool {
	if a == nil || !a.Alive {
		return false
	}

	opposite := a.Species.Opposite()
	radiusSq := radius * radius
	cr := g.cellRadius(radius)
	centerCol := int(math.Floor(a.Pos.X / g.cellSize))
	centerRow := int(math.Floor(a.Pos.Y / g.cellSize))

	for r := 0; r <= cr; r++ {
		for dc := -r; dc <= r; dc++ {
			for dr := -r; dr <= r; dr++ {
				// Only the perimeter of the ring; inner cells were
				// covered at smaller r.
				if r > 0 && absInt(dc) < r && absInt(dr) < r {
					continue
				}

				col := centerCol + dc
				row := centerRow + dr
				if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
					continue
				}

				for _, other := range g.cells[row*g.cols+col] {
					if other.Alive && other.Species == opposite &&
						a.Pos.DistSquared(other.Pos) <= radiusSq {
						return true
					}
				}
			}
		}
	}
	return false
}

// Clear removes all agents from every cell.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		for j := range g.cells[i] {
			g.cells[i][j] = nil
		}
		g.cells[i] = g.cells[i][:0]
	}
}

// CellCount returns the number of cells, for sizing diagnostics.
func (g *SpatialGrid) CellCount() int { return len(g.cells) }

// Contains reports whether the cell for the agent's current position
// holds the agent. Used by consistency checks.
func (g *SpatialGrid) Contains(a *Agent) bool {
	for _, other := range g.cells[g.cellIndex(a.Pos)] {
		if other.ID == a.ID {
			return true
		}
	}
	return false
}

// Occurrences counts how many cells hold the agent, across the whole
// grid. A consistent index yields exactly one for live agents.
func (g *SpatialGrid) Occurrences(a *Agent) int {
	n := 0
	for _, cell := range g.cells {
		for _, other := range cell {
			if other.ID == a.ID {
				n++
			}
		}
	}
	return n
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
