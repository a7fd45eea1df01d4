package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDispatch captures one record per scheduler iteration.
	TraceLevelDispatch TraceLevel = "dispatch"
	// TraceLevelTransitions captures dispatch records and every handled interrupt.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelDispatch:    true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects dispatch and transition records during a run.
type SimulationTrace struct {
	Config      TraceConfig
	Dispatches  []DispatchRecord
	Transitions []TransitionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Dispatches:  make([]DispatchRecord, 0),
		Transitions: make([]TransitionRecord, 0),
	}
}

// RecordDispatch appends a dispatch record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if st.Config.Level == TraceLevelNone || st.Config.Level == "" {
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}

// RecordTransition appends a transition record. Only kept at TraceLevelTransitions.
func (st *SimulationTrace) RecordTransition(record TransitionRecord) {
	if st.Config.Level != TraceLevelTransitions {
		return
	}
	st.Transitions = append(st.Transitions, record)
}
