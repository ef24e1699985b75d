// Command predsim runs a single predator-prey simulation and writes
// its population history and summary.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/pthm-cable/predsim/config"
	"github.com/pthm-cable/predsim/sim"
	"github.com/pthm-cable/predsim/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	steps := flag.Int("steps", 0, "Timesteps to run (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output windowed stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window in steps (0 = use config)")
	profileMode := flag.String("profile", "", "Profiling mode: cpu or mem")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *steps > 0 {
		cfg.Run.Steps = *steps
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	window := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		window = *statsWindow
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	engine, err := sim.NewEngine(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	if *logStats && window > 0 {
		var predHist, preyHist []int
		engine.SetStepHook(func(step, predators, prey int) {
			predHist = append(predHist, predators)
			preyHist = append(preyHist, prey)
			if step%window == 0 {
				start := len(preyHist) - window
				if start < 0 {
					start = 0
				}
				telemetry.ComputeWindowStats(predHist, preyHist, start, len(preyHist)-1).LogStats()
			}
		})
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"steps", cfg.Run.Steps,
		"predators", cfg.Population.InitialPredators,
		"prey", cfg.Population.InitialPrey,
	)

	engine.Initialize()
	engine.RunForSteps(cfg.Run.Steps)
	engine.End()

	report := engine.Report()
	report.LogStats()

	if err := out.WriteReport(report); err != nil {
		slog.Error("failed to write report", "error", err)
		os.Exit(1)
	}
	if dir := out.Dir(); dir != "" {
		slog.Info("output written", "dir", dir)
	}
}
