package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/predsim/config"
	"github.com/pthm-cable/predsim/sim"
)

// FitnessEvaluator runs simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxSteps   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSteps int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxSteps:   maxSteps,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	coexistSteps int
	quality      float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative coexistence steps, weighted by how balanced the
// surviving populations are. Longer coexistence = lower fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	clamped := fe.params.Clamp(x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(clamped, s)
		}(i, seed)
	}
	wg.Wait()

	var fitnessSum, qualitySum float64
	for _, r := range results {
		fitnessSum += -float64(r.coexistSteps) * (1.0 + 0.2*r.quality)
		qualitySum += r.quality
	}

	fe.mu.Lock()
	fe.lastQuality = qualitySum / float64(len(results))
	fe.mu.Unlock()

	return fitnessSum / float64(len(results))
}

// runSimulation runs one seed and measures how long both species
// coexist and how balanced the end state is.
func (fe *FitnessEvaluator) runSimulation(clamped []float64, seed int64) seedResult {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, clamped)
	cfg.Run.Steps = fe.maxSteps

	engine, err := sim.NewEngine(&cfg, seed)
	if err != nil {
		return seedResult{}
	}
	engine.Initialize()

	coexist := fe.maxSteps
	for step := 0; step < fe.maxSteps; step++ {
		if engine.PredatorCount() == 0 || engine.PreyCount() == 0 {
			coexist = step
			break
		}
		engine.Step()
	}
	engine.End()

	return seedResult{
		coexistSteps: coexist,
		quality:      fe.computeQuality(engine, cfg.Dynamics.CarryingCapacity),
	}
}

// computeQuality scores the end state in [0,1]. It peaks when prey sit
// near half the carrying capacity with predators still present, the
// regime where the oscillation is sustained rather than saturated.
func (fe *FitnessEvaluator) computeQuality(engine *sim.Engine, carryingCapacity int) float64 {
	if engine.PredatorCount() == 0 || engine.PreyCount() == 0 {
		return 0
	}
	normalized := float64(engine.PreyCount()) / float64(carryingCapacity)
	return math.Max(0, 1-math.Abs(2*normalized-1))
}
