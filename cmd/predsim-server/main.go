// Command predsim-server runs a simulation and streams population
// updates to WebSocket subscribers, with HTTP endpoints for state.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pthm-cable/predsim/config"
	"github.com/pthm-cable/predsim/sim"
	"github.com/pthm-cable/predsim/stream"
)

type statusResponse struct {
	Running   bool `json:"running"`
	Paused    bool `json:"paused"`
	Step      int  `json:"step"`
	Predators int  `json:"predators"`
	Prey      int  `json:"prey"`
	Clients   int  `json:"clients"`
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	stepDelay := flag.Duration("step-delay", 50*time.Millisecond, "Delay between timesteps")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	engine, err := sim.NewEngine(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	broadcaster := stream.NewBroadcaster()
	defer broadcaster.Close()

	engine.Initialize()
	go runLoop(engine, broadcaster, cfg.Run.Steps, *stepDelay)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", broadcaster.HandleWS)
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, statusResponse{
			Running:   engine.IsRunning(),
			Paused:    engine.IsPaused(),
			Step:      engine.CurrentStep(),
			Predators: engine.PredatorCount(),
			Prey:      engine.PreyCount(),
			Clients:   broadcaster.ClientCount(),
		})
	})
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Report())
	})

	slog.Info("listening", "addr", *addr, "seed", rngSeed)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// runLoop advances the simulation one step at a time so each state is
// published before the next begins.
func runLoop(engine *sim.Engine, broadcaster *stream.Broadcaster, steps int, delay time.Duration) {
	ctx := context.Background()

	for i := 0; i < steps; i++ {
		engine.RunForSteps(1)

		event := stream.StepEvent{
			Step:      engine.CurrentStep(),
			Predators: engine.PredatorCount(),
			Prey:      engine.PreyCount(),
		}
		if err := broadcaster.Publish(ctx, event); err != nil {
			slog.Warn("publish failed", "error", err)
		}

		if engine.PredatorCount() == 0 {
			slog.Info("predators extinct", "step", engine.CurrentStep())
			break
		}
		time.Sleep(delay)
	}

	engine.End()
	engine.Report().LogStats()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
