// Tracks simulation-wide and per-process scheduling metrics such as
// dispatch counts, demotions, blocking round-trips and turnaround times.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// ProcessMetrics records the outcome of a single finished process.
type ProcessMetrics struct {
	ID         int    `json:"id"`
	Class      string `json:"class,omitempty"`
	AdmittedAt int64  `json:"admitted_at"`
	FinishedAt int64  `json:"finished_at"`
	Turnaround int64  `json:"turnaround"`
	Demotions  int    `json:"demotions"`
	Blocks     int    `json:"blocks"`
	FinalLevel int    `json:"final_level"`
}

// Metrics aggregates statistics about a scheduler run for final reporting.
type Metrics struct {
	Admitted           int     // Processes that entered the scheduler
	Completed          int     // Processes that finished
	Iterations         int64   // Scheduler iterations executed
	CPUDispatches      int64   // Iterations in which a CPU queue performed work
	BlockingDispatches int64   // Iterations in which the blocking queue performed work
	LevelDispatches    []int64 // CPU dispatches per priority level
	Demotions          int64   // LowerPriority interrupts handled
	Blocks             int64   // ProcessBlocked interrupts handled
	Readies            int64   // ProcessReady interrupts handled
	Rotations          int64   // Blocking queue round-robin rotations
	SimEndedClock      int64   // Scheduler clock when the run drained

	Processes map[int]ProcessMetrics // map of process ID -> completion record
}

// NewMetrics creates an empty Metrics for a scheduler with the given tier count.
func NewMetrics(priorityLevels int) *Metrics {
	return &Metrics{
		LevelDispatches: make([]int64, priorityLevels),
		Processes:       make(map[int]ProcessMetrics),
	}
}

func (m *Metrics) recordCPUDispatch(level int) {
	m.CPUDispatches++
	m.LevelDispatches[level]++
}

func (m *Metrics) recordCompletion(p *Process) {
	m.Completed++
	m.Processes[p.ID] = ProcessMetrics{
		ID:         p.ID,
		Class:      p.Class,
		AdmittedAt: p.AdmittedAt,
		FinishedAt: p.FinishedAt,
		Turnaround: p.FinishedAt - p.AdmittedAt,
		Demotions:  p.Demotions,
		Blocks:     p.Blocks,
		FinalLevel: p.Level,
	}
}

// Turnarounds returns the turnaround time of every finished process.
func (m *Metrics) Turnarounds() []int64 {
	out := make([]int64, 0, len(m.Processes))
	for _, pm := range m.Processes {
		out = append(out, pm.Turnaround)
	}
	return out
}

// MetricsOutput is the JSON document produced by SaveResults.
type MetricsOutput struct {
	Admitted           int              `json:"admitted"`
	Completed          int              `json:"completed"`
	Iterations         int64            `json:"iterations"`
	CPUDispatches      int64            `json:"cpu_dispatches"`
	BlockingDispatches int64            `json:"blocking_dispatches"`
	LevelDispatches    []int64          `json:"level_dispatches"`
	Demotions          int64            `json:"demotions"`
	Blocks             int64            `json:"blocks"`
	Readies            int64            `json:"readies"`
	Rotations          int64            `json:"rotations"`
	SimEndedClock      int64            `json:"sim_ended_clock"`
	TurnaroundMean     float64          `json:"turnaround_mean"`
	TurnaroundP50      float64          `json:"turnaround_p50"`
	TurnaroundP95      float64          `json:"turnaround_p95"`
	TurnaroundP99      float64          `json:"turnaround_p99"`
	Processes          []ProcessMetrics `json:"processes,omitempty"`
}

// Output builds the JSON-ready summary of the metrics.
func (m *Metrics) Output() MetricsOutput {
	turnarounds := m.Turnarounds()
	out := MetricsOutput{
		Admitted:           m.Admitted,
		Completed:          m.Completed,
		Iterations:         m.Iterations,
		CPUDispatches:      m.CPUDispatches,
		BlockingDispatches: m.BlockingDispatches,
		LevelDispatches:    m.LevelDispatches,
		Demotions:          m.Demotions,
		Blocks:             m.Blocks,
		Readies:            m.Readies,
		Rotations:          m.Rotations,
		SimEndedClock:      m.SimEndedClock,
		TurnaroundMean:     CalculateMean(turnarounds),
		TurnaroundP50:      CalculatePercentile(turnarounds, 50),
		TurnaroundP95:      CalculatePercentile(turnarounds, 95),
		TurnaroundP99:      CalculatePercentile(turnarounds, 99),
		Processes:          sortedProcessMetrics(m.Processes),
	}
	return out
}

// SaveResults prints a human-readable report followed by the JSON metrics to w.
// If outputPath is non-empty the JSON is also written to that file.
func (m *Metrics) SaveResults(w io.Writer, outputPath string) error {
	out := m.Output()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Processes Completed  : %s / %s\n", humanize.Comma(int64(out.Completed)), humanize.Comma(int64(out.Admitted)))
	fmt.Fprintf(w, "Iterations           : %s\n", humanize.Comma(out.Iterations))
	fmt.Fprintf(w, "Demotions            : %s\n", humanize.Comma(out.Demotions))
	fmt.Fprintf(w, "Blocking Round-Trips : %s\n", humanize.Comma(out.Readies))
	if out.Completed > 0 {
		fmt.Fprintf(w, "Mean Turnaround      : %.2f ticks\n", out.TurnaroundMean)
		fmt.Fprintf(w, "P95 Turnaround       : %.2f ticks\n", out.TurnaroundP95)
	}
	fmt.Fprintln(w, string(data))

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("writing metrics to %s: %w", outputPath, err)
		}
		logrus.Debugf("Successfully wrote metrics to '%s'", outputPath)
	}
	return nil
}
