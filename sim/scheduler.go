// sim/scheduler.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mlfq-sim/mlfq-sim/sim/trace"
)

var (
	// ErrUnknownInterrupt is returned by HandleInterrupt for values outside the Interrupt enum.
	ErrUnknownInterrupt = errors.New("unknown interrupt")
	// ErrInvalidInterrupt is returned when an interrupt cannot apply to its source queue or process.
	ErrInvalidInterrupt = errors.New("invalid interrupt")
	// ErrIterationLimit is returned by Run when the iteration ceiling is hit with work remaining.
	ErrIterationLimit = errors.New("iteration limit reached")
	// ErrDuplicateProcess is returned when a second process with an already admitted ID enters the scheduler.
	ErrDuplicateProcess = errors.New("duplicate process ID")
)

// Option configures optional Scheduler collaborators.
type Option func(*Scheduler)

// WithClock sets the time source. Defaults to a WallClock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clockSource = c }
}

// WithTrace records dispatch and transition decisions into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *Scheduler) { s.trace = st }
}

// WithMaxIterations bounds Run to n iterations. Zero means unbounded.
func WithMaxIterations(n int64) Option {
	return func(s *Scheduler) { s.maxIterations = n }
}

// Scheduler is a multi-level feedback queue scheduler. It owns one blocking
// queue and PriorityLevels CPU queues, drives the clock, and relocates
// processes between queues in response to interrupts.
//
// A Scheduler is single-threaded: it and its queues must not be used from
// more than one goroutine.
type Scheduler struct {
	config      SchedulerConfig
	clockSource Clock
	// clock is the last observed reading of clockSource
	clock int64

	blockingQueue *Queue
	// runningQueues[i] is the CPU queue at priority level i (0 = highest)
	runningQueues []*Queue

	metrics       *Metrics
	admittedIDs   map[int]struct{}
	trace         *trace.SimulationTrace
	maxIterations int64
	iteration     int64
}

// NewScheduler builds a scheduler with one blocking queue and
// cfg.PriorityLevels CPU queues. Returns an error wrapping ErrInvalidConfig
// if cfg does not validate.
func NewScheduler(cfg SchedulerConfig, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		config:        cfg,
		blockingQueue: NewBlockingQueue(cfg.BlockingQuantum),
		runningQueues: make([]*Queue, cfg.PriorityLevels),
		metrics:       NewMetrics(cfg.PriorityLevels),
		admittedIDs:   make(map[int]struct{}),
	}
	for i := range s.runningQueues {
		s.runningQueues[i] = NewCPUQueue(i, cfg.QuantumForLevel(i))
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clockSource == nil {
		s.clockSource = NewWallClock()
	}
	if s.maxIterations < 0 {
		return nil, fmt.Errorf("%w: max iterations must be non-negative, got %d", ErrInvalidConfig, s.maxIterations)
	}
	s.clock = s.clockSource.Now()
	return s, nil
}

// Run executes scheduler iterations until every queue is empty.
// It returns an error if an interrupt violates the queue contract or, when an
// iteration ceiling is configured, if work remains after that many iterations.
func (s *Scheduler) Run() error {
	for !s.AllQueuesEmpty() {
		if s.maxIterations > 0 && s.iteration >= s.maxIterations {
			return fmt.Errorf("%w: %d iterations", ErrIterationLimit, s.maxIterations)
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	s.metrics.SimEndedClock = s.clock
	logrus.Infof("[clock %07d] Scheduler drained after %d iterations", s.clock, s.iteration)
	return nil
}

// Step performs a single scheduler iteration: blocking work on the blocking
// queue if it is non-empty, then CPU work on the highest-priority non-empty
// CPU queue only.
func (s *Scheduler) Step() error {
	now := s.clockSource.Now()
	prev := s.clock
	workTime := now - prev
	s.clock = now
	s.iteration++
	s.metrics.Iterations++

	record := trace.DispatchRecord{
		Iteration: s.iteration,
		Clock:     now,
		WorkTime:  workTime,
		CPULevel:  -1,
		ProcessID: -1,
	}
	defer func() {
		if s.trace != nil {
			s.trace.RecordDispatch(record)
		}
	}()

	if !s.blockingQueue.IsEmpty() {
		record.BlockingWorked = true
		s.metrics.BlockingDispatches++
		out := s.blockingQueue.DoBlockingWork(workTime)
		if err := s.admit(out.Process, prev); err != nil {
			return err
		}
		if err := s.handleOutcome(s.blockingQueue, out); err != nil {
			return err
		}
	}

	for _, q := range s.runningQueues {
		if q.IsEmpty() {
			continue
		}
		out := q.DoCPUWork(workTime)
		if err := s.admit(out.Process, prev); err != nil {
			return err
		}
		record.CPULevel = q.Level()
		record.ProcessID = out.Process.ID
		record.Outcome = out.Kind.String()
		s.metrics.recordCPUDispatch(q.Level())
		logrus.Debugf("[clock %07d] %s worked %d ticks on process %d: %s", now, q.Kind(), workTime, out.Process.ID, out.Kind)
		return s.handleOutcome(q, out)
	}
	return nil
}

// handleOutcome applies the bookkeeping or interrupt implied by a work outcome.
func (s *Scheduler) handleOutcome(q *Queue, out Outcome) error {
	switch out.Kind {
	case Finished:
		out.Process.FinishedAt = s.clock
		s.metrics.recordCompletion(out.Process)
		logrus.Infof("[clock %07d] Process %d finished", s.clock, out.Process.ID)
		return nil
	case Rotated:
		s.metrics.Rotations++
		return nil
	}
	intr, ok := interruptFor(out.Kind)
	if !ok {
		return nil
	}
	return s.HandleInterrupt(q, out.Process, intr)
}

// AllQueuesEmpty reports whether the blocking queue and every CPU queue are empty.
func (s *Scheduler) AllQueuesEmpty() bool {
	if !s.blockingQueue.IsEmpty() {
		return false
	}
	for _, q := range s.runningQueues {
		if !q.IsEmpty() {
			return false
		}
	}
	return true
}

// AddNewProcess admits a process at the highest-priority CPU tier.
// Returns an error wrapping ErrDuplicateProcess if another process with the
// same ID was already admitted.
func (s *Scheduler) AddNewProcess(p *Process) error {
	if p == nil {
		panic("AddNewProcess: process must not be nil")
	}
	if err := s.admit(p, s.clock); err != nil {
		return err
	}
	s.runningQueues[0].Enqueue(p)
	return nil
}

// admit records the first time the scheduler sees p. Processes placed on a
// queue without AddNewProcess are admitted when first worked on or relocated,
// stamped with the clock reading they were waiting since.
func (s *Scheduler) admit(p *Process, at int64) error {
	if p == nil || p.admitted {
		return nil
	}
	if _, dup := s.admittedIDs[p.ID]; dup {
		logrus.Errorf("process ID %d admitted twice", p.ID)
		return fmt.Errorf("%w: %d", ErrDuplicateProcess, p.ID)
	}
	s.admittedIDs[p.ID] = struct{}{}
	p.admitted = true
	p.AdmittedAt = at
	s.metrics.Admitted++
	return nil
}

// HandleInterrupt relocates p in response to an interrupt raised by q.
// The source queue must already have removed p.
//
//   - ProcessBlocked: p moves to the blocking queue.
//   - ProcessReady: p re-enters CPU tier 0.
//   - LowerPriority: p moves one tier below q, floored at the lowest tier.
//     q must be a CPU queue.
func (s *Scheduler) HandleInterrupt(q *Queue, p *Process, intr Interrupt) error {
	if p == nil {
		return fmt.Errorf("%w: %s with nil process", ErrInvalidInterrupt, intr)
	}
	switch intr {
	case ProcessBlocked, ProcessReady:
	case LowerPriority:
		if q == nil || !q.Kind().IsCPU() {
			logrus.Errorf("lower-priority interrupt for process %d raised by non-CPU queue", p.ID)
			return fmt.Errorf("%w: %s raised by non-CPU queue for process %d", ErrInvalidInterrupt, intr, p.ID)
		}
	default:
		logrus.Errorf("unknown interrupt %d for process %d", int(intr), p.ID)
		return fmt.Errorf("%w: %s", ErrUnknownInterrupt, intr)
	}
	if err := s.admit(p, s.clock); err != nil {
		return err
	}

	from := p.Level
	switch intr {
	case ProcessBlocked:
		p.Blocks++
		s.metrics.Blocks++
		s.blockingQueue.Enqueue(p)
	case ProcessReady:
		s.metrics.Readies++
		s.runningQueues[0].Enqueue(p)
	case LowerPriority:
		from = q.Level()
		next := min(s.config.PriorityLevels-1, q.Level()+1)
		p.Demotions++
		s.metrics.Demotions++
		s.runningQueues[next].Enqueue(p)
	}

	logrus.Debugf("[clock %07d] %s: process %d %d -> %d", s.clock, intr, p.ID, from, p.Level)
	if s.trace != nil {
		s.trace.RecordTransition(trace.TransitionRecord{
			Iteration: s.iteration,
			ProcessID: p.ID,
			Interrupt: intr.String(),
			FromLevel: from,
			ToLevel:   p.Level,
		})
	}
	return nil
}

// CPUQueue returns the CPU queue at the given level. Intended for tests and diagnostics.
func (s *Scheduler) CPUQueue(level int) *Queue {
	return s.runningQueues[level]
}

// BlockingQueue returns the blocking queue. Intended for tests and diagnostics.
func (s *Scheduler) BlockingQueue() *Queue {
	return s.blockingQueue
}

// PriorityLevels returns the number of CPU tiers.
func (s *Scheduler) PriorityLevels() int {
	return len(s.runningQueues)
}

// Metrics returns the metrics collected so far.
func (s *Scheduler) Metrics() *Metrics {
	return s.metrics
}

// Clock returns the last observed clock reading.
func (s *Scheduler) Clock() int64 {
	return s.clock
}

// Iteration returns the number of iterations executed so far.
func (s *Scheduler) Iteration() int64 {
	return s.iteration
}
