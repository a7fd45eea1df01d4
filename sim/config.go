package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by NewScheduler for malformed configurations.
var ErrInvalidConfig = errors.New("invalid scheduler config")

// SchedulerConfig groups the tier count and time slice parameters.
// CPU queue i gets a quantum of BaseQuantum + i*QuantumIncrement ticks.
type SchedulerConfig struct {
	PriorityLevels   int   // number of CPU tiers (must be > 0)
	BlockingQuantum  int64 // blocking queue time slice (must be > 0)
	BaseQuantum      int64 // tier 0 time slice (must be > 0)
	QuantumIncrement int64 // extra ticks per lower tier (must be >= 0)
}

// DefaultSchedulerConfig returns three tiers with quanta 10, 30, 50 and a
// blocking quantum of 50.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		PriorityLevels:   3,
		BlockingQuantum:  50,
		BaseQuantum:      10,
		QuantumIncrement: 20,
	}
}

// QuantumForLevel returns the CPU time slice for the given tier.
func (c SchedulerConfig) QuantumForLevel(level int) int64 {
	return c.BaseQuantum + int64(level)*c.QuantumIncrement
}

// Validate checks that the configuration can build a scheduler.
func (c SchedulerConfig) Validate() error {
	if c.PriorityLevels <= 0 {
		return fmt.Errorf("%w: priority levels must be positive, got %d", ErrInvalidConfig, c.PriorityLevels)
	}
	if c.BlockingQuantum <= 0 {
		return fmt.Errorf("%w: blocking quantum must be positive, got %d", ErrInvalidConfig, c.BlockingQuantum)
	}
	if c.BaseQuantum <= 0 {
		return fmt.Errorf("%w: base quantum must be positive, got %d", ErrInvalidConfig, c.BaseQuantum)
	}
	if c.QuantumIncrement < 0 {
		return fmt.Errorf("%w: quantum increment must be non-negative, got %d", ErrInvalidConfig, c.QuantumIncrement)
	}
	return nil
}
