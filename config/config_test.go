package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.World.Width != 1.0 || cfg.World.Height != 1.0 {
		t.Errorf("default world = %gx%g, want 1x1", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Population.InitialPredators != 30 {
		t.Errorf("default initial predators = %d, want 30", cfg.Population.InitialPredators)
	}
	if cfg.Population.InitialPrey != 500 {
		t.Errorf("default initial prey = %d, want 500", cfg.Population.InitialPrey)
	}
	if cfg.Dynamics.CarryingCapacity != 446 {
		t.Errorf("default carrying capacity = %d, want 446", cfg.Dynamics.CarryingCapacity)
	}
	if cfg.Spatial.CellSize != cfg.Spatial.InteractionRadius {
		t.Errorf("default cell size %g should match interaction radius %g",
			cfg.Spatial.CellSize, cfg.Spatial.InteractionRadius)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := []byte("population:\n  initial_prey: 42\ndynamics:\n  carrying_capacity: 100\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Population.InitialPrey != 42 {
		t.Errorf("initial prey = %d, want 42 from override", cfg.Population.InitialPrey)
	}
	if cfg.Dynamics.CarryingCapacity != 100 {
		t.Errorf("carrying capacity = %d, want 100 from override", cfg.Dynamics.CarryingCapacity)
	}
	// Fields absent from the override keep their defaults.
	if cfg.Population.InitialPredators != 30 {
		t.Errorf("initial predators = %d, want default 30", cfg.Population.InitialPredators)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	valid, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero world width", func(c *Config) { c.World.Width = 0 }},
		{"negative world height", func(c *Config) { c.World.Height = -1 }},
		{"zero cell size", func(c *Config) { c.Spatial.CellSize = 0 }},
		{"zero interaction radius", func(c *Config) { c.Spatial.InteractionRadius = 0 }},
		{"negative movement", func(c *Config) { c.Movement.PreyMagnitude = -0.1 }},
		{"negative population", func(c *Config) { c.Population.InitialPredators = -1 }},
		{"zero carrying capacity", func(c *Config) { c.Dynamics.CarryingCapacity = 0 }},
		{"rate above one", func(c *Config) { c.Dynamics.PreyDeath = 1.5 }},
		{"negative rate", func(c *Config) { c.Dynamics.PredatorReproduction = -0.2 }},
		{"negative steps", func(c *Config) { c.Run.Steps = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should reject this config")
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate rejected the default config: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Population.InitialPrey = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config failed: %v", err)
	}
	if loaded.Population.InitialPrey != 77 {
		t.Errorf("round-tripped initial prey = %d, want 77", loaded.Population.InitialPrey)
	}
}
