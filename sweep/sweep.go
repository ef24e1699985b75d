package sweep

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/predsim/config"
	"github.com/pthm-cable/predsim/sim"
)

// Options controls the shape of a sweep.
type Options struct {
	Samples int // LHS samples to draw
	Reruns  int // independent replicates per sample
	Sims    int // simulations averaged within one replicate
	Steps   int // timesteps per simulation
	Workers int // concurrent sample evaluators (0 = GOMAXPROCS)
	Seed    int64
	Ranges  Ranges
}

// Runner evaluates LHS samples against a base configuration.
type Runner struct {
	base *config.Config
	opts Options
}

// NewRunner builds a sweep runner. Zero option fields fall back to
// usable defaults.
func NewRunner(base *config.Config, opts Options) *Runner {
	if opts.Samples <= 0 {
		opts.Samples = 100
	}
	if opts.Reruns <= 0 {
		opts.Reruns = 3
	}
	if opts.Sims <= 0 {
		opts.Sims = 1
	}
	if opts.Steps <= 0 {
		opts.Steps = base.Run.Steps
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Ranges == (Ranges{}) {
		opts.Ranges = DefaultRanges()
	}
	return &Runner{base: base, opts: opts}
}

// Run draws the samples and evaluates them on a worker pool. Results
// come back ordered by sample index.
func (r *Runner) Run() ([]Result, error) {
	samples := GenerateSamples(r.opts.Samples, r.opts.Ranges, uint64(r.opts.Seed))
	results := make([]Result, len(samples))
	errs := make([]error, len(samples))

	workChan := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workChan {
				results[idx], errs[idx] = r.evaluate(samples[idx])
				if errs[idx] == nil {
					slog.Info("sample complete",
						"sample", idx,
						"carrying_capacity", samples[idx].CarryingCapacity,
						"avg_prey", results[idx].AvgPrey,
						"avg_predators", results[idx].AvgPredators,
					)
				}
			}
		}()
	}

	for i := range samples {
		workChan <- i
	}
	close(workChan)
	wg.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", idx, err)
		}
	}
	return results, nil
}

// evaluate runs reruns x sims simulations for one sample. Each rerun
// averages its sims; the result aggregates mean and spread over the
// rerun means.
func (r *Runner) evaluate(s Sample) (Result, error) {
	preyMeans := make([]float64, r.opts.Reruns)
	predMeans := make([]float64, r.opts.Reruns)

	for rerun := 0; rerun < r.opts.Reruns; rerun++ {
		var preySum, predSum float64
		for simIdx := 0; simIdx < r.opts.Sims; simIdx++ {
			cfg := *r.base
			s.Apply(&cfg)
			cfg.Run.Steps = r.opts.Steps

			seed := r.opts.Seed + int64(s.Index)*1_000_000 + int64(rerun)*1_000 + int64(simIdx)
			engine, err := sim.NewEngine(&cfg, seed)
			if err != nil {
				return Result{}, err
			}
			engine.Initialize()
			engine.RunForSteps(r.opts.Steps)
			engine.End()

			preySum += float64(engine.PreyCount())
			predSum += float64(engine.PredatorCount())
		}
		preyMeans[rerun] = preySum / float64(r.opts.Sims)
		predMeans[rerun] = predSum / float64(r.opts.Sims)
	}

	res := Result{
		Sample:               s.Index,
		CarryingCapacity:     s.CarryingCapacity,
		PreyDeath:            s.PreyDeath,
		PredatorDeath:        s.PredatorDeath,
		PredatorReproduction: s.PredatorReproduction,
		AvgPrey:              stat.Mean(preyMeans, nil),
		AvgPredators:         stat.Mean(predMeans, nil),
	}
	if r.opts.Reruns > 1 {
		res.StdPrey = stat.StdDev(preyMeans, nil)
		res.StdPredators = stat.StdDev(predMeans, nil)
	}
	return res, nil
}
