package sim

import (
	"log/slog"
	"time"
)

// Report is the frozen outcome of one run: the full population
// histories plus summary scalars. History index 0 is the initial
// sample recorded before any step ran.
type Report struct {
	PredatorHistory []int
	PreyHistory     []int

	FinalPredators int
	FinalPrey      int
	TotalSteps     int
	Elapsed        time.Duration

	// NormalizedPrey is the final prey count divided by the carrying
	// capacity. Values near 1 mean the prey saturated after predator
	// collapse; intermediate values indicate sustained coexistence.
	NormalizedPrey float64

	Seed int64
}

// LogValue implements slog.LogValuer for structured logging.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("total_steps", r.TotalSteps),
		slog.Int("final_predators", r.FinalPredators),
		slog.Int("final_prey", r.FinalPrey),
		slog.Float64("normalized_prey", r.NormalizedPrey),
		slog.Duration("elapsed", r.Elapsed),
		slog.Int64("seed", r.Seed),
		slog.Int("history_len", len(r.PreyHistory)),
	)
}

// LogStats logs the report summary using slog.
func (r Report) LogStats() {
	slog.Info("report",
		"total_steps", r.TotalSteps,
		"final_predators", r.FinalPredators,
		"final_prey", r.FinalPrey,
		"normalized_prey", r.NormalizedPrey,
		"elapsed", r.Elapsed,
		"seed", r.Seed,
	)
}
