package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/predsim/config"
	"github.com/pthm-cable/predsim/sim"
)

func sampleReport() sim.Report {
	return sim.Report{
		PredatorHistory: []int{10, 12, 11},
		PreyHistory:     []int{100, 90, 95},
		FinalPredators:  11,
		FinalPrey:       95,
		TotalSteps:      2,
		Elapsed:         1500 * time.Millisecond,
		NormalizedPrey:  95.0 / 446,
		Seed:            42,
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\") error: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All methods are safe on a nil manager.
	if err := om.WriteReport(sampleReport()); err != nil {
		t.Errorf("nil WriteReport error: %v", err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Errorf("nil WriteConfig error: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir = %q, want empty", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close error: %v", err)
	}
}

func TestOutputManagerWritesFiles(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	if err := om.WriteReport(sampleReport()); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	history := readLines(t, filepath.Join(dir, "history.csv"))
	if len(history) != 4 {
		t.Fatalf("history.csv has %d lines, want header + 3 rows", len(history))
	}
	if !strings.Contains(history[0], "step") || !strings.Contains(history[0], "prey") {
		t.Errorf("history header = %q", history[0])
	}
	if history[1] != "0,10,100" {
		t.Errorf("first history row = %q, want 0,10,100", history[1])
	}

	summary := readLines(t, filepath.Join(dir, "summary.csv"))
	if len(summary) != 2 {
		t.Fatalf("summary.csv has %d lines, want header + 1 row", len(summary))
	}
	if !strings.Contains(summary[0], "final_prey") {
		t.Errorf("summary header = %q", summary[0])
	}
	if !strings.HasPrefix(summary[1], "42,2,11,95,") {
		t.Errorf("summary row = %q, want prefix 42,2,11,95,", summary[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestHistoryAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	rows := []HistoryRecord{{Step: 0, Predators: 1, Prey: 2}}
	if err := om.WriteHistory(rows); err != nil {
		t.Fatalf("first WriteHistory error: %v", err)
	}
	rows[0].Step = 1
	if err := om.WriteHistory(rows); err != nil {
		t.Fatalf("second WriteHistory error: %v", err)
	}
	om.Close()

	lines := readLines(t, filepath.Join(dir, "history.csv"))
	if len(lines) != 3 {
		t.Fatalf("history.csv has %d lines, want header + 2 rows", len(lines))
	}
	if strings.Contains(lines[1], "step") || strings.Contains(lines[2], "step") {
		t.Error("header was written more than once")
	}
}

func TestSummarizeReport(t *testing.T) {
	s := SummarizeReport(sampleReport())
	if s.Seed != 42 || s.Steps != 2 || s.FinalPredators != 11 || s.FinalPrey != 95 {
		t.Errorf("summary = %+v", s)
	}
	if s.ElapsedSec != 1.5 {
		t.Errorf("ElapsedSec = %g, want 1.5", s.ElapsedSec)
	}
	if s.PreyMean != 95 {
		t.Errorf("PreyMean = %g, want 95", s.PreyMean)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
