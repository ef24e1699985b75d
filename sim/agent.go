package sim

// Species identifies which of the two agent kinds an Agent is.
type Species uint8

const (
	Predator Species = iota
	Prey
)

// String returns a human-readable species name.
func (s Species) String() string {
	switch s {
	case Predator:
		return "predator"
	case Prey:
		return "prey"
	default:
		return "unknown"
	}
}

// Opposite returns the other species.
func (s Species) Opposite() Species {
	if s == Predator {
		return Prey
	}
	return Predator
}

// Action is the outcome of one agent decision.
type Action uint8

const (
	Nothing Action = iota
	Reproduce
	Die
)

// Agent is a single simulated individual. Agents are owned by the
// World's species container for their species; the spatial grid holds
// references into that container, never a second owner. A dead agent
// (Alive == false) must not be used for further queries.
type Agent struct {
	ID      uint64
	Species Species
	Pos     Position
	Alive   bool
}

// NewAgent creates a live agent with the next id from ctx.
func NewAgent(species Species, pos Position, ctx *Context) *Agent {
	return &Agent{
		ID:      ctx.NextID(),
		Species: species,
		Pos:     pos,
		Alive:   true,
	}
}

// Decide returns the agent's action for this timestep given whether an
// opposite-species neighbor is within the interaction radius. It is a
// pure function of the interaction flag, the shared rates, and the
// current prey count; the only agent state consulted is liveness.
//
// Draw order matters for reproducibility: a predator draws exactly one
// uniform per call, a prey draws a death uniform only when interacting
// and then (unless it died) always draws a reproduction uniform.
func (a *Agent) Decide(hasInteraction bool, ctx *Context) Action {
	if !a.Alive {
		return Nothing
	}

	d := &ctx.cfg.Dynamics
	switch a.Species {
	case Predator:
		if hasInteraction {
			if ctx.Float64() < d.PredatorReproduction {
				return Reproduce
			}
		} else {
			if ctx.Float64() < d.PredatorDeath {
				return Die
			}
		}
		return Nothing

	case Prey:
		if hasInteraction {
			if ctx.Float64() < d.PreyDeath {
				// Death suppresses the reproduction draw.
				return Die
			}
		}
		// Logistic growth toward carrying capacity. The probability is
		// clamped at zero once the population meets or exceeds NR.
		p := d.PreyReproduction * (1 - float64(ctx.PreyCount())/float64(d.CarryingCapacity))
		if p < 0 {
			p = 0
		}
		if ctx.Float64() < p {
			return Reproduce
		}
		return Nothing
	}
	return Nothing
}
