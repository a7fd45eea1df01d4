// Package testutil provides shared test infrastructure for the scheduler
// simulation: the golden scenario dataset and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenProcess is one process admitted at clock 0 before the run starts.
type GoldenProcess struct {
	ID       int   `json:"id"`
	CPUTime  int64 `json:"cpu_time"`
	Blocking int64 `json:"blocking_time"`
}

// GoldenTestCase represents a single hand-traced scheduler scenario.
type GoldenTestCase struct {
	Name             string          `json:"name"`
	PriorityLevels   int             `json:"priority_levels"`
	BlockingQuantum  int64           `json:"blocking_quantum"`
	BaseQuantum      int64           `json:"base_quantum"`
	QuantumIncrement int64           `json:"quantum_increment"`
	Tick             int64           `json:"tick"`
	Processes        []GoldenProcess `json:"processes"`
	Metrics          GoldenMetrics   `json:"metrics"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
type GoldenMetrics struct {
	// Exact match counters
	Completed          int     `json:"completed"`
	Iterations         int64   `json:"iterations"`
	BlockingDispatches int64   `json:"blocking_dispatches"`
	LevelDispatches    []int64 `json:"level_dispatches"`
	Demotions          int64   `json:"demotions"`
	Blocks             int64   `json:"blocks"`
	Readies            int64   `json:"readies"`
	Rotations          int64   `json:"rotations"`
	SimEndedClock      int64   `json:"sim_ended_clock"`

	TurnaroundMean float64 `json:"turnaround_mean"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
