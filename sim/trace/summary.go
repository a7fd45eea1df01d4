package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Iterations        int
	BlockingWork      int         // iterations in which the blocking queue worked
	IdleCPUIterations int         // iterations with no CPU queue serviced
	LevelDispatches   map[int]int // CPU level → iterations serviced
	Demotions         int
	Blocks            int
	Readies           int
	MaxLevelReached   int // deepest CPU level any process was demoted to (0 if none)
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		LevelDispatches: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.Iterations = len(st.Dispatches)
	for _, d := range st.Dispatches {
		if d.BlockingWorked {
			summary.BlockingWork++
		}
		if d.CPULevel < 0 {
			summary.IdleCPUIterations++
			continue
		}
		summary.LevelDispatches[d.CPULevel]++
	}

	for _, tr := range st.Transitions {
		switch tr.Interrupt {
		case InterruptLowerPriority:
			summary.Demotions++
			if tr.ToLevel > summary.MaxLevelReached {
				summary.MaxLevelReached = tr.ToLevel
			}
		case InterruptProcessBlocked:
			summary.Blocks++
		case InterruptProcessReady:
			summary.Readies++
		}
	}

	return summary
}
