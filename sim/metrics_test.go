package sim

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePercentile(t *testing.T) {
	data := []int64{50, 10, 40, 20, 30}

	assert.Equal(t, 10.0, CalculatePercentile(data, 0))
	assert.Equal(t, 30.0, CalculatePercentile(data, 50))
	assert.Equal(t, 50.0, CalculatePercentile(data, 100))
	assert.Equal(t, []int64{50, 10, 40, 20, 30}, data, "input must not be reordered")
}

func TestCalculatePercentile_Empty_ReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePercentile([]int64{}, 95))
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]float64{}))
	assert.InDelta(t, 2.5, CalculateMean([]int{1, 2, 3, 4}), 1e-9)
}

// TestSaveResults_WritesReportAndJSON verifies the human report and JSON
// document agree with the collected metrics.
func TestSaveResults_WritesReportAndJSON(t *testing.T) {
	// GIVEN metrics with two finished processes
	m := NewMetrics(3)
	m.Admitted = 2
	m.Iterations = 12
	m.Demotions = 1
	m.recordCPUDispatch(0)
	m.recordCPUDispatch(1)
	m.recordCompletion(&Process{ID: 2, AdmittedAt: 0, FinishedAt: 40, Level: 1, Demotions: 1})
	m.recordCompletion(&Process{ID: 1, AdmittedAt: 0, FinishedAt: 20})

	outputPath := filepath.Join(t.TempDir(), "metrics.json")
	var buf bytes.Buffer

	// WHEN SaveResults is called
	require.NoError(t, m.SaveResults(&buf, outputPath))

	// THEN the report header and JSON appear on the writer
	assert.Contains(t, buf.String(), "Simulation Metrics")
	assert.Contains(t, buf.String(), "\"completed\": 2")

	// AND the file holds the same JSON
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var output MetricsOutput
	require.NoError(t, json.Unmarshal(data, &output))
	assert.Equal(t, 2, output.Completed)
	assert.Equal(t, []int64{1, 1, 0}, output.LevelDispatches)
	assert.InDelta(t, 30.0, output.TurnaroundMean, 1e-9)
	require.Len(t, output.Processes, 2)
	assert.Equal(t, 1, output.Processes[0].ID, "processes sorted by ID")
	assert.Equal(t, 1, output.Processes[1].FinalLevel)
}

func TestSaveResults_NoOutputPath_WritesOnlyToWriter(t *testing.T) {
	m := NewMetrics(1)
	var buf bytes.Buffer
	require.NoError(t, m.SaveResults(&buf, ""))
	assert.Contains(t, buf.String(), "\"admitted\": 0")
}

func TestSaveResults_BadPath_ReturnsError(t *testing.T) {
	m := NewMetrics(1)
	var buf bytes.Buffer
	err := m.SaveResults(&buf, filepath.Join(t.TempDir(), "missing", "metrics.json"))
	assert.Error(t, err)
}
