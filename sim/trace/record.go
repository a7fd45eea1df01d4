// Package trace provides decision-trace recording for scheduler dispatch analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// BlockingLevel is the level value used in records to denote the blocking queue.
const BlockingLevel = -1

// Interrupt names stored in TransitionRecord.Interrupt.
const (
	InterruptProcessBlocked = "process-blocked"
	InterruptProcessReady   = "process-ready"
	InterruptLowerPriority  = "lower-priority"
)

// DispatchRecord captures the work performed in a single scheduler iteration.
type DispatchRecord struct {
	Iteration      int64
	Clock          int64
	WorkTime       int64
	BlockingWorked bool   // true if the blocking queue performed work this iteration
	CPULevel       int    // tier that performed CPU work; -1 if no CPU queue was serviced
	ProcessID      int    // head process of the serviced CPU tier; -1 if none
	Outcome        string // outcome of the CPU work (empty if none)
}

// TransitionRecord captures a single interrupt handled by the scheduler.
// FromLevel and ToLevel use BlockingLevel for the blocking queue.
type TransitionRecord struct {
	Iteration int64
	ProcessID int
	Interrupt string // one of the Interrupt* names
	FromLevel int
	ToLevel   int
}
