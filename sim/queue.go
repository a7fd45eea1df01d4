// Implements the Queue, which holds the processes of one scheduler tier.
// A queue performs one bounded unit of work on its head process per call and
// reports the resulting state transition as an Outcome.

package sim

import (
	"fmt"
	"strings"
)

// QueueKind is the static identity of a queue: either the blocking queue or a
// CPU queue at a fixed priority level. The zero value is not a valid kind.
type QueueKind struct {
	cpu   bool
	level int
}

// BlockingKind identifies the blocking (I/O) queue.
func BlockingKind() QueueKind {
	return QueueKind{cpu: false, level: -1}
}

// CPUKind identifies the CPU queue at the given priority level (0 = highest).
func CPUKind(level int) QueueKind {
	if level < 0 {
		panic(fmt.Sprintf("CPUKind: level must be non-negative, got %d", level))
	}
	return QueueKind{cpu: true, level: level}
}

// IsCPU reports whether the kind is a CPU queue.
func (k QueueKind) IsCPU() bool { return k.cpu }

// IsBlocking reports whether the kind is the blocking queue.
func (k QueueKind) IsBlocking() bool { return !k.cpu && k.level == -1 }

// Level returns the priority level of a CPU kind, or -1 for the blocking kind.
func (k QueueKind) Level() int { return k.level }

func (k QueueKind) String() string {
	if k.cpu {
		return fmt.Sprintf("cpu[%d]", k.level)
	}
	return "blocking"
}

// OutcomeKind enumerates what happened to the head process during one unit of work.
type OutcomeKind int

const (
	// StillRunning: the head process stays where it is (or the queue was idle).
	StillRunning OutcomeKind = iota
	// Finished: the head process completed and was removed.
	Finished
	// Blocked: the head process needs blocking time and was removed.
	Blocked
	// TimedOut: the head process exhausted its CPU slice and was removed.
	TimedOut
	// Ready: the head process finished its blocking time and was removed.
	Ready
	// Rotated: the blocking head exhausted its slice and moved to the tail.
	Rotated
)

func (k OutcomeKind) String() string {
	switch k {
	case StillRunning:
		return "still-running"
	case Finished:
		return "finished"
	case Blocked:
		return "blocked"
	case TimedOut:
		return "timed-out"
	case Ready:
		return "ready"
	case Rotated:
		return "rotated"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of one DoCPUWork or DoBlockingWork call.
// Process is the head process the work was performed on (nil if the queue was empty).
type Outcome struct {
	Kind    OutcomeKind
	Process *Process
}

// Queue represents a FIFO queue of processes for one scheduler tier.
// Queues are owned by a Scheduler and are not safe for concurrent use.
type Queue struct {
	kind         QueueKind
	quantum      int64      // time slice length in ticks
	quantumClock int64      // ticks consumed by the current head within its slice
	processes    []*Process // FIFO queue of processes
}

// NewBlockingQueue creates the blocking queue with the given time slice.
func NewBlockingQueue(quantum int64) *Queue {
	return &Queue{kind: BlockingKind(), quantum: quantum}
}

// NewCPUQueue creates a CPU queue at the given priority level with the given time slice.
func NewCPUQueue(level int, quantum int64) *Queue {
	return &Queue{kind: CPUKind(level), quantum: quantum}
}

// Kind returns the queue's immutable identity.
func (q *Queue) Kind() QueueKind { return q.kind }

// Level returns the queue's priority level (-1 for the blocking queue).
func (q *Queue) Level() int { return q.kind.Level() }

// Quantum returns the queue's time slice in ticks.
func (q *Queue) Quantum() int64 { return q.quantum }

// Len returns the number of processes in the queue.
func (q *Queue) Len() int { return len(q.processes) }

// IsEmpty reports whether the queue holds no processes.
func (q *Queue) IsEmpty() bool { return len(q.processes) == 0 }

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *Queue) Peek() *Process {
	if len(q.processes) == 0 {
		return nil
	}
	return q.processes[0]
}

// Contains reports whether p is currently held by the queue.
func (q *Queue) Contains(p *Process) bool {
	for _, held := range q.processes {
		if held == p {
			return true
		}
	}
	return false
}

// Items returns the queue contents in FIFO order.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (q *Queue) Items() []*Process {
	return q.processes
}

// Enqueue adds a process to the back of the queue and tags it with the queue's tier.
func (q *Queue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	p.Level = q.kind.Level()
	if q.kind.IsCPU() {
		p.State = StateReady
	} else {
		p.State = StateBlocked
	}
	q.processes = append(q.processes, p)
}

// dequeue removes the head and resets the slice clock for the next head.
func (q *Queue) dequeue() *Process {
	if len(q.processes) == 0 {
		return nil
	}
	head := q.processes[0]
	q.processes[0] = nil
	q.processes = q.processes[1:]
	q.quantumClock = 0
	return head
}

// DoCPUWork runs the head process for elapsed ticks.
//
// A head that still needs blocking time is removed as Blocked without
// consuming CPU. Otherwise its CPU time is reduced; a drained process is
// removed as Finished, and one whose slice has exceeded the quantum is
// removed as TimedOut. A non-positive elapsed is a no-op.
func (q *Queue) DoCPUWork(elapsed int64) Outcome {
	if !q.kind.IsCPU() {
		panic(fmt.Sprintf("DoCPUWork called on %s queue", q.kind))
	}
	head := q.Peek()
	if head == nil || elapsed <= 0 {
		return Outcome{Kind: StillRunning, Process: head}
	}
	if head.NeedsBlocking() {
		q.dequeue()
		return Outcome{Kind: Blocked, Process: head}
	}
	head.runCPU(elapsed)
	if head.IsFinished() {
		q.dequeue()
		head.State = StateFinished
		return Outcome{Kind: Finished, Process: head}
	}
	q.quantumClock += elapsed
	if q.quantumClock > q.quantum {
		q.dequeue()
		return Outcome{Kind: TimedOut, Process: head}
	}
	return Outcome{Kind: StillRunning, Process: head}
}

// DoBlockingWork advances the blocking time of the head process by elapsed ticks.
//
// A head whose blocking time drains is removed as Ready. A head that exceeds
// the blocking quantum is rotated to the tail so other waiters make progress.
// A non-positive elapsed is a no-op.
func (q *Queue) DoBlockingWork(elapsed int64) Outcome {
	if !q.kind.IsBlocking() {
		panic(fmt.Sprintf("DoBlockingWork called on %s queue", q.kind))
	}
	head := q.Peek()
	if head == nil || elapsed <= 0 {
		return Outcome{Kind: StillRunning, Process: head}
	}
	head.runBlocking(elapsed)
	if !head.NeedsBlocking() {
		q.dequeue()
		return Outcome{Kind: Ready, Process: head}
	}
	q.quantumClock += elapsed
	if q.quantumClock > q.quantum {
		q.dequeue()
		q.processes = append(q.processes, head)
		return Outcome{Kind: Rotated, Process: head}
	}
	return Outcome{Kind: StillRunning, Process: head}
}

func (q *Queue) String() string {
	var sb strings.Builder
	sb.WriteString(q.kind.String())
	sb.WriteString("[")
	for i, p := range q.processes {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(q.processes)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
