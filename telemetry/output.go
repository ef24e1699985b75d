package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/predsim/config"
	"github.com/pthm-cable/predsim/sim"
)

// HistoryRecord is one row of history.csv: the population state after
// a single timestep.
type HistoryRecord struct {
	Step      int `csv:"step"`
	Predators int `csv:"predators"`
	Prey      int `csv:"prey"`
}

// RunSummary is the single row of summary.csv describing a finished run.
type RunSummary struct {
	Seed           int64   `csv:"seed"`
	Steps          int     `csv:"steps"`
	FinalPredators int     `csv:"final_predators"`
	FinalPrey      int     `csv:"final_prey"`
	NormalizedPrey float64 `csv:"normalized_prey"`
	ElapsedSec     float64 `csv:"elapsed_sec"`

	PredatorMean float64 `csv:"predator_mean"`
	PredatorStd  float64 `csv:"predator_std"`
	PreyMean     float64 `csv:"prey_mean"`
	PreyStd      float64 `csv:"prey_std"`
}

// SummarizeReport flattens a run report into a summary row.
func SummarizeReport(r sim.Report) RunSummary {
	pred := ComputeSeriesStats(r.PredatorHistory)
	prey := ComputeSeriesStats(r.PreyHistory)

	return RunSummary{
		Seed:           r.Seed,
		Steps:          r.TotalSteps,
		FinalPredators: r.FinalPredators,
		FinalPrey:      r.FinalPrey,
		NormalizedPrey: r.NormalizedPrey,
		ElapsedSec:     r.Elapsed.Seconds(),
		PredatorMean:   pred.Mean,
		PredatorStd:    pred.Std,
		PreyMean:       prey.Mean,
		PreyStd:        prey.Std,
	}
}

// HistoryRecords converts a run report into one history row per sample.
// The step column starts at zero for the pre-run sample.
func HistoryRecords(r sim.Report) []HistoryRecord {
	records := make([]HistoryRecord, len(r.PreyHistory))
	for i := range r.PreyHistory {
		records[i] = HistoryRecord{
			Step:      i,
			Predators: r.PredatorHistory[i],
			Prey:      r.PreyHistory[i],
		}
	}
	return records
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir         string
	historyFile *os.File
	summaryFile *os.File

	// Track if headers have been written
	historyHeaderWritten bool
	summaryHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	historyPath := filepath.Join(dir, "history.csv")
	f, err := os.Create(historyPath)
	if err != nil {
		return nil, fmt.Errorf("creating history.csv: %w", err)
	}
	om.historyFile = f

	summaryPath := filepath.Join(dir, "summary.csv")
	f, err = os.Create(summaryPath)
	if err != nil {
		om.historyFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteHistory appends population rows to history.csv.
func (om *OutputManager) WriteHistory(records []HistoryRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.historyHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.historyFile); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		om.historyHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.historyFile); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
	}

	return nil
}

// WriteSummary writes a run summary row to summary.csv.
func (om *OutputManager) WriteSummary(summary RunSummary) error {
	if om == nil {
		return nil
	}

	records := []RunSummary{summary}

	if !om.summaryHeaderWritten {
		if err := gocsv.Marshal(records, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		om.summaryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	return nil
}

// WriteReport writes the full history and summary of a finished run.
func (om *OutputManager) WriteReport(r sim.Report) error {
	if om == nil {
		return nil
	}
	if err := om.WriteHistory(HistoryRecords(r)); err != nil {
		return err
	}
	return om.WriteSummary(SummarizeReport(r))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.historyFile != nil {
		if err := om.historyFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.summaryFile != nil {
		if err := om.summaryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
