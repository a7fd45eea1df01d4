package sim

import "time"

// Clock is the scheduler's source of "now", in ticks.
// Only differences between readings are used.
type Clock interface {
	Now() int64
}

// WallClock reads real time in milliseconds since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a WallClock anchored at the current time.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() int64 {
	return time.Since(c.start).Milliseconds()
}

// StepClock advances by a fixed number of ticks on every reading, which makes
// runs deterministic: each scheduler iteration observes exactly Tick elapsed.
// The first reading returns 0.
type StepClock struct {
	Tick int64
	now  int64
	read bool
}

// NewStepClock creates a StepClock advancing by tick per reading.
func NewStepClock(tick int64) *StepClock {
	return &StepClock{Tick: tick}
}

func (c *StepClock) Now() int64 {
	if !c.read {
		c.read = true
		return c.now
	}
	c.now += c.Tick
	return c.now
}
