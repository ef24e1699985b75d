package sim

// SpeciesContainer stores every live agent of one species in a dense
// slice with an id-to-index map for O(1) lookup. Removal swaps the
// victim with the last element and truncates, so indices are not stable
// across removals and callers iterating All must not mutate the
// container mid-iteration (the engine snapshots first).
type SpeciesContainer struct {
	agents    []*Agent
	idToIndex map[uint64]int
}

// NewSpeciesContainer creates an empty container. The capacity hint
// pre-sizes the backing storage for the expected population; it is a
// performance hint only.
func NewSpeciesContainer(capacityHint int) *SpeciesContainer {
	return &SpeciesContainer{
		agents:    make([]*Agent, 0, capacityHint),
		idToIndex: make(map[uint64]int, capacityHint),
	}
}

// Add appends the agent. O(1) amortized.
func (c *SpeciesContainer) Add(a *Agent) {
	c.idToIndex[a.ID] = len(c.agents)
	c.agents = append(c.agents, a)
}

// Get returns the agent with the given id, or nil if absent.
func (c *SpeciesContainer) Get(id uint64) *Agent {
	idx, ok := c.idToIndex[id]
	if !ok {
		return nil
	}
	return c.agents[idx]
}

// Remove deletes the agent with the given id by swap-remove, fixing up
// the moved agent's index entry. Returns false if the id is not
// present. O(1).
func (c *SpeciesContainer) Remove(id uint64) bool {
	idx, ok := c.idToIndex[id]
	if !ok {
		return false
	}

	last := len(c.agents) - 1
	if idx != last {
		moved := c.agents[last]
		c.agents[idx] = moved
		c.idToIndex[moved.ID] = idx
	}
	c.agents[last] = nil
	c.agents = c.agents[:last]
	delete(c.idToIndex, id)
	return true
}

// All returns the dense agent slice for iteration. The slice is valid
// only until the next mutation.
func (c *SpeciesContainer) All() []*Agent { return c.agents }

// Size returns the number of contained agents.
func (c *SpeciesContainer) Size() int { return len(c.agents) }

// Clear removes all agents.
func (c *SpeciesContainer) Clear() {
	for i := range c.agents {
		c.agents[i] = nil
	}
	c.agents = c.agents[:0]
	clear(c.idToIndex)
}
