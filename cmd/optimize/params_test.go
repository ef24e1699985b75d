package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/predsim/config"
)

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("param %s: round trip %g -> %g", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	out := pv.Clamp([]float64{-5, 10, 0.1, 0.5})

	if out[0] != 100 {
		t.Errorf("carrying_capacity clamped to %g, want 100", out[0])
	}
	if out[1] != 1.0 {
		t.Errorf("prey_death clamped to %g, want 1.0", out[1])
	}
	if out[2] != 0.1 || out[3] != 0.5 {
		t.Errorf("in-bounds values changed: %v", out)
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := &config.Config{}

	pv.ApplyToConfig(cfg, []float64{250.4, 0.8, 0.1, 0.6})
	if cfg.Dynamics.CarryingCapacity != 250 {
		t.Errorf("CarryingCapacity = %d, want 250", cfg.Dynamics.CarryingCapacity)
	}
	if cfg.Dynamics.PreyDeath != 0.8 || cfg.Dynamics.PredatorDeath != 0.1 || cfg.Dynamics.PredatorReproduction != 0.6 {
		t.Errorf("dynamics = %+v", cfg.Dynamics)
	}
}
