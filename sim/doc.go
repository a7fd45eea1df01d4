// Package sim provides the multi-level feedback queue (MLFQ) scheduler simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (ready → running → blocked → finished)
//   - queue.go: per-tier FIFO queues and the Outcome each unit of work produces
//   - scheduler.go: the dispatch loop and the interrupt protocol
//
// # Architecture
//
// A Scheduler owns one blocking queue and PriorityLevels CPU queues. Each
// iteration it measures elapsed time on its Clock, lets the blocking queue
// advance I/O work, then lets the highest-priority non-empty CPU queue run
// its head process. Queues never call back into the scheduler: they return an
// Outcome, which the scheduler maps to an Interrupt (ProcessBlocked,
// ProcessReady, LowerPriority) and handles synchronously.
//
// Sub-packages:
//   - sim/workload/: YAML workload specs and seeded process generation
//   - sim/trace/: per-iteration dispatch and transition recording
package sim
