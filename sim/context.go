package sim

import (
	"math/rand/v2"

	"github.com/pthm-cable/predsim/config"
)

// Context holds the state shared by every agent of one run: the
// immutable configuration, the run's random stream, the live population
// counters, and the agent id counter. A Context is owned by exactly one
// Engine and must never be copied; agents' stochastic decisions depend
// on the single shared counters and stream.
type Context struct {
	cfg *config.Config
	rng *rand.Rand

	predatorCount int
	preyCount     int

	nextID uint64
}

// NewContext creates a context for one run, seeded deterministically.
func NewContext(cfg *config.Config, seed int64) *Context {
	return &Context{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// Config returns the run configuration.
func (c *Context) Config() *config.Config { return c.cfg }

// Float64 draws one uniform sample from [0,1).
func (c *Context) Float64() float64 { return c.rng.Float64() }

// Shuffle permutes n elements using the run's stream.
func (c *Context) Shuffle(n int, swap func(i, j int)) { c.rng.Shuffle(n, swap) }

// RandomPosition draws a uniform position inside the world bounds.
func (c *Context) RandomPosition() Position {
	return Position{
		X: c.rng.Float64() * c.cfg.World.Width,
		Y: c.rng.Float64() * c.cfg.World.Height,
	}
}

// RandomDirection draws a displacement direction with each component
// uniform in [-1,1).
func (c *Context) RandomDirection() Position {
	return Position{
		X: 2*c.rng.Float64() - 1,
		Y: 2*c.rng.Float64() - 1,
	}
}

// PredatorCount returns the live predator count.
func (c *Context) PredatorCount() int { return c.predatorCount }

// PreyCount returns the live prey count.
func (c *Context) PreyCount() int { return c.preyCount }

// SetPredatorCount sets the live predator count.
func (c *Context) SetPredatorCount(n int) { c.predatorCount = n }

// SetPreyCount sets the live prey count.
func (c *Context) SetPreyCount(n int) { c.preyCount = n }

// AddPredators adjusts the predator count by delta.
func (c *Context) AddPredators(delta int) { c.predatorCount += delta }

// AddPrey adjusts the prey count by delta.
func (c *Context) AddPrey(delta int) { c.preyCount += delta }

// NextID returns the next agent id. Ids are monotonic and unique for
// the lifetime of the context; they are instance state, so concurrent
// engines never contend or collide.
func (c *Context) NextID() uint64 {
	id := c.nextID
	c.nextID++
	return id
}

// ResetIDs restarts the id sequence. Needed only when a caller wants
// reproducible ids across re-initializations of the same engine.
func (c *Context) ResetIDs() { c.nextID = 0 }
