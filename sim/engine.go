package sim

import (
	"math"
	"time"

	"github.com/pthm-cable/predsim/config"
)

// engineState tracks the controller lifecycle.
type engineState uint8

const (
	stateUninitialized engineState = iota
	stateRunning
	stateEnded
)

// StepHook observes each completed timestep. Used by telemetry and the
// streaming server; must not mutate the engine.
type StepHook func(step, predators, prey int)

// Engine orchestrates one simulation run: initialization, the
// per-timestep update, run-to-completion, pause/end, and report
// generation. Each engine owns its world, context, and random stream,
// so independent engines can run concurrently without shared state.
//
// The timestep loop is single-threaded by design: effects of an
// agent's update are applied immediately, so later agents in the same
// shuffled order observe them. That ordering dependency is part of the
// model and is what makes runs reproducible for a fixed seed.
type Engine struct {
	ctx   *Context
	world *World
	seed  int64

	state       engineState
	paused      bool
	currentStep int
	startTime   time.Time
	endTime     time.Time

	predatorHistory []int
	preyHistory     []int

	stepHook StepHook
}

// NewEngine creates an engine for the given configuration and seed.
// The configuration is validated here so that degenerate geometry or
// rates fail at construction instead of mid-run.
func NewEngine(cfg *config.Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		ctx:  NewContext(cfg, seed),
		seed: seed,
		world: NewWorld(
			cfg.World.Width, cfg.World.Height, cfg.Spatial.CellSize,
			cfg.Population.InitialPredators, cfg.Population.InitialPrey,
		),
	}, nil
}

// SetStepHook registers a per-step observer.
func (e *Engine) SetStepHook(h StepHook) { e.stepHook = h }

// Initialize resets the run and seeds the initial population. It is
// effective only from the uninitialized or ended states; calling it on
// a running engine is inert, so stale double-calls cannot clobber a
// run in progress.
func (e *Engine) Initialize() {
	if e.state == stateRunning {
		return
	}

	e.ctx.ResetIDs()
	e.ctx.SetPredatorCount(0)
	e.ctx.SetPreyCount(0)
	e.world.Clear()
	e.predatorHistory = e.predatorHistory[:0]
	e.preyHistory = e.preyHistory[:0]
	e.currentStep = 0
	e.startTime = time.Now()
	e.endTime = time.Time{}

	e.seedPopulation()
	e.recordHistory()

	e.state = stateRunning
	e.paused = false
}

// seedPopulation places the configured initial counts, prey first.
// The order is part of the deterministic RNG stream. With position
// randomization disabled each species starts on a uniform lattice,
// which consumes no RNG draws.
func (e *Engine) seedPopulation() {
	cfg := e.ctx.Config()

	for i := 0; i < cfg.Population.InitialPrey; i++ {
		e.world.Add(NewAgent(Prey, e.seedPosition(i, cfg.Population.InitialPrey), e.ctx))
		e.ctx.AddPrey(1)
	}
	for i := 0; i < cfg.Population.InitialPredators; i++ {
		e.world.Add(NewAgent(Predator, e.seedPosition(i, cfg.Population.InitialPredators), e.ctx))
		e.ctx.AddPredators(1)
	}
}

func (e *Engine) seedPosition(i, count int) Position {
	cfg := e.ctx.Config()
	if cfg.Run.RandomizePositions {
		return e.ctx.RandomPosition()
	}
	return latticePosition(i, count, cfg.World.Width, cfg.World.Height)
}

// latticePosition returns the i-th cell center of the smallest
// near-square lattice holding count agents.
func latticePosition(i, count int, width, height float64) Position {
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	return Position{
		X: (float64(i%cols) + 0.5) * width / float64(cols),
		Y: (float64(i/cols) + 0.5) * height / float64(rows),
	}
}

func (e *Engine) recordHistory() {
	e.predatorHistory = append(e.predatorHistory, e.ctx.PredatorCount())
	e.preyHistory = append(e.preyHistory, e.ctx.PreyCount())
}

// Step advances the simulation by one timestep. No-op unless the
// engine is running and not paused.
func (e *Engine) Step() {
	if e.state != stateRunning || e.paused {
		return
	}
	e.updateTimestep()
}

// updateTimestep processes every agent alive at the start of the step
// exactly once, in uniformly shuffled order. The snapshot fixes the
// step's population: agents born this step are not visited, agents
// that die before their turn are skipped. Effects apply immediately,
// so later agents see earlier agents' moves, births, and deaths.
func (e *Engine) updateTimestep() {
	snapshot := e.world.Snapshot()
	e.ctx.Shuffle(len(snapshot), func(i, j int) {
		snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
	})

	for _, a := range snapshot {
		if a.Alive {
			e.updateAgent(a)
		}
	}

	e.currentStep++
	e.recordHistory()

	if e.stepHook != nil {
		e.stepHook(e.currentStep, e.ctx.PredatorCount(), e.ctx.PreyCount())
	}
}

// updateAgent moves one agent, reindexes it, checks for an
// opposite-species encounter, and applies the resulting action.
func (e *Engine) updateAgent(a *Agent) {
	cfg := e.ctx.Config()

	magnitude := cfg.Movement.PreyMagnitude
	if a.Species == Predator {
		magnitude = cfg.Movement.PredatorMagnitude
	}

	newPos := a.Pos.
		Add(e.ctx.RandomDirection().Scale(magnitude)).
		Clamp(cfg.World.Width, cfg.World.Height)
	e.world.Move(a, newPos)

	hasInteraction := e.world.HasOppositeNeighbor(a, cfg.Spatial.InteractionRadius)

	switch a.Decide(hasInteraction, e.ctx) {
	case Reproduce:
		if a.Species == Prey {
			// Re-check capacity: earlier births this step may have
			// filled the remaining headroom after the decision draw.
			if e.ctx.PreyCount() >= cfg.Dynamics.CarryingCapacity {
				return
			}
			e.world.Add(NewAgent(Prey, newPos, e.ctx))
			e.ctx.AddPrey(1)
		} else {
			e.world.Add(NewAgent(Predator, newPos, e.ctx))
			e.ctx.AddPredators(1)
		}

	case Die:
		a.Alive = false
		e.world.Remove(a)
		if a.Species == Prey {
			e.ctx.AddPrey(-1)
		} else {
			e.ctx.AddPredators(-1)
		}
	}
}

// RunForSteps runs up to n timesteps, re-checking before each one
// whether the predators have gone extinct. On extinction the run stops
// early with predators forced to zero and prey forced to the carrying
// capacity, the equilibrium the logistic prey dynamics converge to
// once nothing eats them.
func (e *Engine) RunForSteps(n int) {
	cfg := e.ctx.Config()
	for i := 0; i < n; i++ {
		if e.ctx.PredatorCount() == 0 {
			e.ctx.SetPredatorCount(0)
			e.ctx.SetPreyCount(cfg.Dynamics.CarryingCapacity)
			return
		}
		e.Step()
	}
}

// Pause suspends stepping at the next step boundary.
func (e *Engine) Pause() { e.paused = true }

// Resume clears the paused flag.
func (e *Engine) Resume() { e.paused = false }

// End transitions to the ended state and stamps the completion time.
// No further stepping is possible until Initialize is called again.
func (e *Engine) End() {
	if e.state != stateRunning {
		return
	}
	e.state = stateEnded
	e.paused = false
	e.endTime = time.Now()
}

// IsRunning reports whether a run is in progress (possibly paused).
func (e *Engine) IsRunning() bool { return e.state == stateRunning }

// IsPaused reports whether stepping is suspended.
func (e *Engine) IsPaused() bool { return e.paused }

// CurrentStep returns the number of completed timesteps.
func (e *Engine) CurrentStep() int { return e.currentStep }

// PredatorCount returns the live predator count.
func (e *Engine) PredatorCount() int { return e.ctx.PredatorCount() }

// PreyCount returns the live prey count.
func (e *Engine) PreyCount() int { return e.ctx.PreyCount() }

// Seed returns the run's RNG seed.
func (e *Engine) Seed() int64 { return e.seed }

// World exposes the world for tests and consistency checks.
func (e *Engine) World() *World { return e.world }

// Context exposes the shared run context.
func (e *Engine) Context() *Context { return e.ctx }

// Report freezes the run's outcome. Meaningful once the run has ended;
// if called mid-run the elapsed time is measured up to now.
func (e *Engine) Report() Report {
	elapsed := time.Since(e.startTime)
	if !e.endTime.IsZero() {
		elapsed = e.endTime.Sub(e.startTime)
	}

	cfg := e.ctx.Config()
	return Report{
		PredatorHistory: append([]int(nil), e.predatorHistory...),
		PreyHistory:     append([]int(nil), e.preyHistory...),
		FinalPredators:  e.ctx.PredatorCount(),
		FinalPrey:       e.ctx.PreyCount(),
		TotalSteps:      e.currentStep,
		Elapsed:         elapsed,
		NormalizedPrey:  float64(e.ctx.PreyCount()) / float64(cfg.Dynamics.CarryingCapacity),
		Seed:            e.seed,
	}
}
