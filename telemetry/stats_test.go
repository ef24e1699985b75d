package telemetry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSeriesStatsEmpty(t *testing.T) {
	s := ComputeSeriesStats(nil)
	if s != (SeriesStats{}) {
		t.Errorf("stats of empty series = %+v, want zero value", s)
	}
}

func TestComputeSeriesStatsConstant(t *testing.T) {
	s := ComputeSeriesStats([]int{7, 7, 7, 7})
	if !almostEqual(s.Mean, 7) || !almostEqual(s.Std, 0) {
		t.Errorf("constant series: mean=%g std=%g, want 7/0", s.Mean, s.Std)
	}
	if s.Min != 7 || s.Max != 7 || s.P50 != 7 {
		t.Errorf("constant series: min=%g max=%g p50=%g, want all 7", s.Min, s.Max, s.P50)
	}
}

func TestComputeSeriesStatsRamp(t *testing.T) {
	counts := make([]int, 10)
	for i := range counts {
		counts[i] = i + 1 // 1..10
	}
	s := ComputeSeriesStats(counts)

	if !almostEqual(s.Mean, 5.5) {
		t.Errorf("Mean = %g, want 5.5", s.Mean)
	}
	// Sample standard deviation of 1..10.
	if math.Abs(s.Std-3.0276503541) > 1e-6 {
		t.Errorf("Std = %g, want ~3.0277", s.Std)
	}
	if s.Min != 1 || s.Max != 10 {
		t.Errorf("Min/Max = %g/%g, want 1/10", s.Min, s.Max)
	}
	if s.P10 != 1 || s.P50 != 5 || s.P90 != 9 {
		t.Errorf("P10/P50/P90 = %g/%g/%g, want 1/5/9", s.P10, s.P50, s.P90)
	}
}

func TestComputeSeriesStatsSingle(t *testing.T) {
	s := ComputeSeriesStats([]int{3})
	if !almostEqual(s.Mean, 3) || !almostEqual(s.Std, 0) {
		t.Errorf("single sample: mean=%g std=%g, want 3/0", s.Mean, s.Std)
	}
}

func TestComputeWindowStats(t *testing.T) {
	predators := []int{10, 10, 10, 20, 20, 20}
	prey := []int{100, 100, 100, 50, 50, 50}

	s := ComputeWindowStats(predators, prey, 3, 5)
	if s.Predators != 20 || s.Prey != 50 {
		t.Errorf("window end counts = %d/%d, want 20/50", s.Predators, s.Prey)
	}
	if !almostEqual(s.PredatorMean, 20) || !almostEqual(s.PreyMean, 50) {
		t.Errorf("window means = %g/%g, want 20/50", s.PredatorMean, s.PreyMean)
	}
	if !almostEqual(s.PredatorStd, 0) {
		t.Errorf("window predator std = %g, want 0", s.PredatorStd)
	}
}

func TestComputeWindowStatsOutOfRange(t *testing.T) {
	s := ComputeWindowStats([]int{1, 2}, []int{3, 4}, 0, 5)
	if s.Prey != 0 || s.PreyMean != 0 {
		t.Errorf("out-of-range window should be zeroed, got %+v", s)
	}
}
