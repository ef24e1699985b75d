package sim

import "testing"

func makeAgents(n int, species Species) []*Agent {
	agents := make([]*Agent, n)
	for i := range agents {
		agents[i] = &Agent{ID: uint64(i), Species: species, Alive: true}
	}
	return agents
}

func TestContainerAddGet(t *testing.T) {
	c := NewSpeciesContainer(4)
	agents := makeAgents(3, Prey)
	for _, a := range agents {
		c.Add(a)
	}

	if c.Size() != 3 {
		t.Fatalf("Size = %d, want 3", c.Size())
	}
	for _, a := range agents {
		if got := c.Get(a.ID); got != a {
			t.Errorf("Get(%d) = %v, want %v", a.ID, got, a)
		}
	}
	if c.Get(99) != nil {
		t.Error("Get of unknown id should return nil")
	}
}

func TestContainerSwapRemove(t *testing.T) {
	c := NewSpeciesContainer(4)
	agents := makeAgents(3, Predator)
	for _, a := range agents {
		c.Add(a)
	}

	// Removing the first element swaps the last into its slot.
	if !c.Remove(0) {
		t.Fatal("Remove(0) = false, want true")
	}
	if c.Size() != 2 {
		t.Fatalf("Size = %d, want 2", c.Size())
	}
	if c.Get(0) != nil {
		t.Error("removed agent still retrievable")
	}
	// The moved agent must still be reachable by id after the fixup.
	if got := c.Get(2); got != agents[2] {
		t.Errorf("Get(2) after swap = %v, want %v", got, agents[2])
	}
	if c.All()[0] != agents[2] {
		t.Error("last agent was not swapped into the removed slot")
	}
}

func TestContainerRemoveLast(t *testing.T) {
	c := NewSpeciesContainer(2)
	agents := makeAgents(2, Prey)
	for _, a := range agents {
		c.Add(a)
	}

	if !c.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	if c.Size() != 1 || c.All()[0] != agents[0] {
		t.Error("removing the last element should leave the rest untouched")
	}
}

func TestContainerRemoveMissing(t *testing.T) {
	c := NewSpeciesContainer(2)
	c.Add(&Agent{ID: 7, Alive: true})

	if c.Remove(8) {
		t.Error("Remove of unknown id should return false")
	}
	if !c.Remove(7) {
		t.Fatal("Remove(7) = false, want true")
	}
	// Double removal reports failure rather than corrupting the map.
	if c.Remove(7) {
		t.Error("second Remove of same id should return false")
	}
}

func TestContainerClear(t *testing.T) {
	c := NewSpeciesContainer(4)
	for _, a := range makeAgents(5, Prey) {
		c.Add(a)
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size after Clear = %d, want 0", c.Size())
	}
	if c.Get(0) != nil {
		t.Error("Get after Clear should return nil")
	}

	// Container remains usable.
	a := &Agent{ID: 42, Alive: true}
	c.Add(a)
	if c.Get(42) != a {
		t.Error("Add after Clear failed")
	}
}

func TestContainerIndexConsistency(t *testing.T) {
	c := NewSpeciesContainer(8)
	for _, a := range makeAgents(10, Prey) {
		c.Add(a)
	}
	for _, id := range []uint64{3, 0, 9, 5} {
		if !c.Remove(id) {
			t.Fatalf("Remove(%d) failed", id)
		}
	}

	// Every survivor is reachable by id and the id matches the slot.
	for i, a := range c.All() {
		if got := c.Get(a.ID); got != a {
			t.Errorf("slot %d: Get(%d) = %v, want %v", i, a.ID, got, a)
		}
	}
	if c.Size() != 6 {
		t.Errorf("Size = %d, want 6", c.Size())
	}
}
