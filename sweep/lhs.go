// Package sweep runs Latin hypercube parameter sweeps over the
// population-dynamics rates and records aggregate outcomes per sample.
package sweep

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/pthm-cable/predsim/config"
)

// Ranges bounds the four swept dynamics parameters. Each entry is
// {min, max} in raw parameter units.
type Ranges struct {
	CarryingCapacity     [2]float64
	PreyDeath            [2]float64
	PredatorDeath        [2]float64
	PredatorReproduction [2]float64
}

// DefaultRanges returns the reference sweep bounds.
func DefaultRanges() Ranges {
	return Ranges{
		CarryingCapacity:     [2]float64{100, 1000},
		PreyDeath:            [2]float64{0.5, 2},
		PredatorDeath:        [2]float64{0.05, 0.2},
		PredatorReproduction: [2]float64{0.3, 0.7},
	}
}

// Sample is one point of the sweep in raw parameter units. Rates are
// clamped to [0,1] on construction; a sampled death rate above one
// means certain death and carries no extra information.
type Sample struct {
	Index                int
	CarryingCapacity     int
	PreyDeath            float64
	PredatorDeath        float64
	PredatorReproduction float64
}

// Apply overwrites the swept dynamics fields of cfg.
func (s Sample) Apply(cfg *config.Config) {
	cfg.Dynamics.CarryingCapacity = s.CarryingCapacity
	cfg.Dynamics.PreyDeath = s.PreyDeath
	cfg.Dynamics.PredatorDeath = s.PredatorDeath
	cfg.Dynamics.PredatorReproduction = s.PredatorReproduction
}

// GenerateSamples draws n Latin hypercube samples over the given
// ranges. The same seed always yields the same samples.
func GenerateSamples(n int, ranges Ranges, seed uint64) []Sample {
	if n <= 0 {
		return nil
	}

	bounds := []r1.Interval{
		{Min: ranges.CarryingCapacity[0], Max: ranges.CarryingCapacity[1]},
		{Min: ranges.PreyDeath[0], Max: ranges.PreyDeath[1]},
		{Min: ranges.PredatorDeath[0], Max: ranges.PredatorDeath[1]},
		{Min: ranges.PredatorReproduction[0], Max: ranges.PredatorReproduction[1]},
	}

	src := rand.NewPCG(seed, seed^0xda942042e4dd58b5)
	lhs := samplemv.LatinHypercube{
		Q:   distmv.NewUniform(bounds, src),
		Src: src,
	}

	batch := mat.NewDense(n, len(bounds), nil)
	lhs.Sample(batch)

	samples := make([]Sample, n)
	for i := range samples {
		nr := int(math.Round(batch.At(i, 0)))
		if nr < 1 {
			nr = 1
		}
		samples[i] = Sample{
			Index:                i,
			CarryingCapacity:     nr,
			PreyDeath:            clampRate(batch.At(i, 1)),
			PredatorDeath:        clampRate(batch.At(i, 2)),
			PredatorReproduction: clampRate(batch.At(i, 3)),
		}
	}
	return samples
}

func clampRate(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
