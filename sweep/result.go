package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Result aggregates the outcomes of one sample across all its reruns.
type Result struct {
	Sample               int     `csv:"sample"`
	CarryingCapacity     int     `csv:"carrying_capacity"`
	PreyDeath            float64 `csv:"prey_death"`
	PredatorDeath        float64 `csv:"predator_death"`
	PredatorReproduction float64 `csv:"predator_reproduction"`
	AvgPrey              float64 `csv:"avg_prey"`
	StdPrey              float64 `csv:"std_prey"`
	AvgPredators         float64 `csv:"avg_predators"`
	StdPredators         float64 `csv:"std_predators"`
}

// WriteResults writes the sweep results to a timestamped CSV in dir
// and returns the file path.
func WriteResults(dir string, results []Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating sweep output directory: %w", err)
	}

	name := fmt.Sprintf("sweep_%s.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(results, f); err != nil {
		return "", fmt.Errorf("writing sweep results: %w", err)
	}
	return path, nil
}
