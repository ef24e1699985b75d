// Package config provides configuration loading and validation for the
// predator-prey simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Movement   MovementConfig   `yaml:"movement"`
	Spatial    SpatialConfig    `yaml:"spatial"`
	Dynamics   DynamicsConfig   `yaml:"dynamics"`
	Run        RunConfig        `yaml:"run"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WorldConfig holds simulation world dimensions in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PopulationConfig holds initial population sizes per species.
type PopulationConfig struct {
	InitialPredators int `yaml:"initial_predators"`
	InitialPrey      int `yaml:"initial_prey"`
}

// MovementConfig holds per-step displacement magnitudes per species.
type MovementConfig struct {
	PredatorMagnitude float64 `yaml:"predator_magnitude"` // MF
	PreyMagnitude     float64 `yaml:"prey_magnitude"`     // MR
}

// SpatialConfig holds interaction and spatial-index parameters.
// CellSize should normally be >= InteractionRadius; smaller cells work
// but widen the neighbor scan box.
type SpatialConfig struct {
	InteractionRadius float64 `yaml:"interaction_radius"`
	CellSize          float64 `yaml:"cell_size"`
}

// DynamicsConfig holds the population-dynamics rates.
type DynamicsConfig struct {
	CarryingCapacity     int     `yaml:"carrying_capacity"`     // NR
	PreyReproduction     float64 `yaml:"prey_reproduction"`     // RR
	PreyDeath            float64 `yaml:"prey_death"`            // DR
	PredatorDeath        float64 `yaml:"predator_death"`        // DF
	PredatorReproduction float64 `yaml:"predator_reproduction"` // RF
}

// RunConfig holds run-length parameters.
type RunConfig struct {
	Steps              int  `yaml:"steps"`
	RandomizePositions bool `yaml:"randomize_positions"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"`
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used. The
// returned config is always validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that would corrupt the simulation:
// degenerate world or grid geometry, rates outside [0,1], or a
// non-positive carrying capacity (which divides the prey reproduction
// probability).
func (c *Config) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world dimensions must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Spatial.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %g", c.Spatial.CellSize))
	}
	if c.Spatial.InteractionRadius <= 0 {
		errs = append(errs, fmt.Errorf("interaction radius must be positive, got %g", c.Spatial.InteractionRadius))
	}
	if c.Movement.PredatorMagnitude < 0 || c.Movement.PreyMagnitude < 0 {
		errs = append(errs, errors.New("movement magnitudes must be non-negative"))
	}
	if c.Population.InitialPredators < 0 || c.Population.InitialPrey < 0 {
		errs = append(errs, errors.New("initial populations must be non-negative"))
	}
	if c.Dynamics.CarryingCapacity < 1 {
		errs = append(errs, fmt.Errorf("carrying capacity must be >= 1, got %d", c.Dynamics.CarryingCapacity))
	}
	for _, rate := range []struct {
		name  string
		value float64
	}{
		{"prey_reproduction", c.Dynamics.PreyReproduction},
		{"prey_death", c.Dynamics.PreyDeath},
		{"predator_death", c.Dynamics.PredatorDeath},
		{"predator_reproduction", c.Dynamics.PredatorReproduction},
	} {
		if rate.value < 0 || rate.value > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %g", rate.name, rate.value))
		}
	}
	if c.Run.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must be non-negative, got %d", c.Run.Steps))
	}

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
