package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarizes one population series.
type SeriesStats struct {
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`
}

// ComputeSeriesStats summarizes a count series. Returns zeroes for an
// empty series.
func ComputeSeriesStats(counts []int) SeriesStats {
	if len(counts) == 0 {
		return SeriesStats{}
	}

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}

	var s SeriesStats
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return s
}

// WindowStats holds aggregated statistics for a window of steps.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population counts at window end
	Predators int `csv:"predators"`
	Prey      int `csv:"prey"`

	// Distribution over the window
	PredatorMean float64 `csv:"predator_mean"`
	PredatorStd  float64 `csv:"predator_std"`
	PreyMean     float64 `csv:"prey_mean"`
	PreyStd      float64 `csv:"prey_std"`
}

// ComputeWindowStats summarizes the tail window [start, end] of the
// two population histories. The histories are index-aligned, one
// sample per step plus the initial sample at index zero.
func ComputeWindowStats(predators, prey []int, start, end int) WindowStats {
	s := WindowStats{WindowStart: start, WindowEnd: end}
	if len(prey) == 0 || end >= len(prey) || start > end {
		return s
	}

	s.Predators = predators[end]
	s.Prey = prey[end]

	pred := ComputeSeriesStats(predators[start : end+1])
	pry := ComputeSeriesStats(prey[start : end+1])
	s.PredatorMean = pred.Mean
	s.PredatorStd = pred.Std
	s.PreyMean = pry.Mean
	s.PreyStd = pry.Std

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Int("predators", s.Predators),
		slog.Int("prey", s.Prey),
		slog.Float64("predator_mean", s.PredatorMean),
		slog.Float64("predator_std", s.PredatorStd),
		slog.Float64("prey_mean", s.PreyMean),
		slog.Float64("prey_std", s.PreyStd),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"predators", s.Predators,
		"prey", s.Prey,
		"predator_mean", s.PredatorMean,
		"predator_std", s.PredatorStd,
		"prey_mean", s.PreyMean,
		"prey_std", s.PreyStd,
	)
}
