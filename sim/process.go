// Defines the Process struct that models a single unit of schedulable work.
// Tracks remaining CPU and blocking time plus the bookkeeping used for metrics.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateReady    ProcessState = "ready"
	StateRunning  ProcessState = "running"
	StateBlocked  ProcessState = "blocked"
	StateFinished ProcessState = "finished"
)

// Process models a single process in the simulation.
// A process may need blocking (I/O) time before it can use the CPU; once the
// blocking time is drained it only needs CPU time until it finishes.
type Process struct {
	ID    int    // Unique identifier for the process
	Class string // Workload class the process was generated from (empty for ad-hoc processes)

	CPUTimeNeeded      int64 // Remaining CPU time in ticks
	BlockingTimeNeeded int64 // Remaining blocking (I/O) time in ticks

	State ProcessState // ready, running, blocked, finished
	Level int          // Current CPU tier, or -1 while on the blocking queue

	Demotions  int   // Number of LowerPriority interrupts taken
	Blocks     int   // Number of ProcessBlocked interrupts taken
	AdmittedAt int64 // Scheduler clock when the process was first admitted
	FinishedAt int64 // Scheduler clock when the process finished
	admitted   bool
}

// NewProcess creates a ready process needing cpuTime ticks of CPU and
// blockingTime ticks of blocking work. Negative inputs are clamped to zero.
func NewProcess(id int, cpuTime, blockingTime int64) *Process {
	return &Process{
		ID:                 id,
		CPUTimeNeeded:      max(cpuTime, 0),
		BlockingTimeNeeded: max(blockingTime, 0),
		State:              StateReady,
	}
}

// IsFinished reports whether the process has no CPU or blocking work left.
func (p *Process) IsFinished() bool {
	return p.CPUTimeNeeded == 0 && p.BlockingTimeNeeded == 0
}

// NeedsBlocking reports whether the process must wait on I/O before running.
func (p *Process) NeedsBlocking() bool {
	return p.BlockingTimeNeeded > 0
}

// runCPU consumes up to elapsed ticks of CPU time.
func (p *Process) runCPU(elapsed int64) {
	p.State = StateRunning
	p.CPUTimeNeeded = max(p.CPUTimeNeeded-elapsed, 0)
}

// runBlocking consumes up to elapsed ticks of blocking time.
func (p *Process) runBlocking(elapsed int64) {
	p.BlockingTimeNeeded = max(p.BlockingTimeNeeded-elapsed, 0)
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Level: %d, CPU: %d, Blocking: %d)",
		p.ID, p.State, p.Level, p.CPUTimeNeeded, p.BlockingTimeNeeded)
}
