package sim

import (
	"fmt"

	"github.com/mlfq-sim/mlfq-sim/sim/trace"
)

// Interrupt is a process state transition raised by a queue and consumed by
// the Scheduler to relocate the process.
type Interrupt int

const (
	// ProcessBlocked: the process needs I/O and must wait on the blocking queue.
	ProcessBlocked Interrupt = iota + 1
	// ProcessReady: the process finished blocking and re-enters CPU tier 0.
	ProcessReady
	// LowerPriority: the process exhausted its CPU slice and drops one tier.
	LowerPriority
)

func (i Interrupt) String() string {
	switch i {
	case ProcessBlocked:
		return trace.InterruptProcessBlocked
	case ProcessReady:
		return trace.InterruptProcessReady
	case LowerPriority:
		return trace.InterruptLowerPriority
	default:
		return fmt.Sprintf("interrupt(%d)", int(i))
	}
}

// interruptFor maps a queue work outcome to the interrupt the scheduler must
// handle. ok is false for outcomes that need no relocation.
func interruptFor(kind OutcomeKind) (Interrupt, bool) {
	switch kind {
	case Blocked:
		return ProcessBlocked, true
	case Ready:
		return ProcessReady, true
	case TimedOut:
		return LowerPriority, true
	default:
		return 0, false
	}
}
