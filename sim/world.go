package sim

import "fmt"

// World is the single source of truth for which agents exist and where.
// It composes one container per species with the spatial grid and keeps
// the three structures consistent: every mutation goes through Add,
// Remove, or Move, never directly into a member.
type World struct {
	predators *SpeciesContainer
	prey      *SpeciesContainer
	grid      *SpatialGrid
}

// NewWorld creates an empty world over the given bounds. The capacity
// hints pre-size the species containers.
func NewWorld(width, height, cellSize float64, predatorHint, preyHint int) *World {
	return &World{
		predators: NewSpeciesContainer(predatorHint),
		prey:      NewSpeciesContainer(preyHint),
		grid:      NewSpatialGrid(width, height, cellSize),
	}
}

func (w *World) container(s Species) *SpeciesContainer {
	if s == Predator {
		return w.predators
	}
	return w.prey
}

// Add inserts the agent into its species container and the grid.
func (w *World) Add(a *Agent) {
	w.container(a.Species).Add(a)
	w.grid.Insert(a)
}

// Remove deletes the agent from its container and the grid. A miss in
// either structure means the index state is corrupt, which would
// silently invalidate every later query, so it fails fast.
func (w *World) Remove(a *Agent) {
	if !w.container(a.Species).Remove(a.ID) {
		panic(fmt.Sprintf("sim: remove of unknown %s id %d", a.Species, a.ID))
	}
	if !w.grid.Remove(a) {
		panic(fmt.Sprintf("sim: %s id %d missing from spatial cell at (%g,%g)", a.Species, a.ID, a.Pos.X, a.Pos.Y))
	}
}

// Move updates the agent's position and reindexes it. The agent's Pos
// field is the authority; callers set it only through this method so
// the grid is never stale.
func (w *World) Move(a *Agent, newPos Position) {
	oldPos := a.Pos
	a.Pos = newPos
	if !w.grid.Move(a, oldPos) {
		panic(fmt.Sprintf("sim: %s id %d missing from spatial cell during move", a.Species, a.ID))
	}
}

// HasOppositeNeighbor reports whether an opposite-species agent lies
// within radius of the agent.
func (w *World) HasOppositeNeighbor(a *Agent, radius float64) bool {
	return w.grid.HasOppositeNeighbor(a, radius)
}

// Nearby returns all live agents within radius of pos.
func (w *World) Nearby(pos Position, radius float64) []*Agent {
	return w.grid.Query(pos, radius)
}

// NearbySpecies returns live agents of one species within radius of pos.
func (w *World) NearbySpecies(pos Position, radius float64, species Species) []*Agent {
	return w.grid.QuerySpecies(pos, radius, species)
}

// Snapshot returns a fresh slice of all current agents, predators
// first. The engine iterates this copy so that same-step births and
// deaths cannot perturb the traversal.
func (w *World) Snapshot() []*Agent {
	all := make([]*Agent, 0, w.predators.Size()+w.prey.Size())
	all = append(all, w.predators.All()...)
	all = append(all, w.prey.All()...)
	return all
}

// Predators returns the predator container.
func (w *World) Predators() *SpeciesContainer { return w.predators }

// Prey returns the prey container.
func (w *World) Prey() *SpeciesContainer { return w.prey }

// Grid returns the spatial index.
func (w *World) Grid() *SpatialGrid { return w.grid }

// Size returns the total number of agents.
func (w *World) Size() int { return w.predators.Size() + w.prey.Size() }

// Clear removes every agent from both containers and the grid.
func (w *World) Clear() {
	w.predators.Clear()
	w.prey.Clear()
	w.grid.Clear()
}
