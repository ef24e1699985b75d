package sweep

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{Sample: 0, CarryingCapacity: 446, PreyDeath: 1, PredatorDeath: 0.07, PredatorReproduction: 0.44, AvgPrey: 200, AvgPredators: 30},
		{Sample: 1, CarryingCapacity: 100, PreyDeath: 0.5, PredatorDeath: 0.2, PredatorReproduction: 0.3, AvgPrey: 80, AvgPredators: 0},
	}

	path, err := WriteResults(dir, results)
	if err != nil {
		t.Fatalf("WriteResults error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("result written to %s, want inside %s", path, dir)
	}
	if base := filepath.Base(path); !strings.HasPrefix(base, "sweep_") || !strings.HasSuffix(base, ".csv") {
		t.Errorf("unexpected result filename %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("results file has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "carrying_capacity") || !strings.Contains(lines[0], "avg_prey") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,446,") {
		t.Errorf("first row = %q", lines[1])
	}
}
