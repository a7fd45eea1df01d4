package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for dispatch records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDispatch})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		Iteration: 1,
		Clock:     1000,
		WorkTime:  10,
		CPULevel:  0,
		ProcessID: 7,
		Outcome:   "still-running",
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].ProcessID != 7 {
		t.Errorf("expected process ID 7, got %d", st.Dispatches[0].ProcessID)
	}
}

func TestSimulationTrace_DispatchLevel_DropsTransitions(t *testing.T) {
	// GIVEN a dispatch-only trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDispatch})

	// WHEN a transition is recorded
	st.RecordTransition(TransitionRecord{ProcessID: 1, Interrupt: InterruptLowerPriority, FromLevel: 0, ToLevel: 1})

	// THEN it is not kept
	if len(st.Transitions) != 0 {
		t.Errorf("expected 0 transitions at dispatch level, got %d", len(st.Transitions))
	}
}

func TestSimulationTrace_NoneLevel_RecordsNothing(t *testing.T) {
	for _, level := range []TraceLevel{TraceLevelNone, ""} {
		st := NewSimulationTrace(TraceConfig{Level: level})
		st.RecordDispatch(DispatchRecord{Iteration: 1})
		st.RecordTransition(TransitionRecord{Iteration: 1})
		if len(st.Dispatches) != 0 || len(st.Transitions) != 0 {
			t.Errorf("level %q: expected no records, got %d dispatches, %d transitions",
				level, len(st.Dispatches), len(st.Transitions))
		}
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a transitions trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTransitions})

	// WHEN multiple records are added
	st.RecordDispatch(DispatchRecord{Iteration: 1, CPULevel: 0})
	st.RecordDispatch(DispatchRecord{Iteration: 2, CPULevel: 1})
	st.RecordTransition(TransitionRecord{Iteration: 1, ProcessID: 1, Interrupt: InterruptLowerPriority})
	st.RecordTransition(TransitionRecord{Iteration: 2, ProcessID: 1, Interrupt: InterruptProcessBlocked})

	// THEN order is preserved
	if len(st.Dispatches) != 2 || len(st.Transitions) != 2 {
		t.Fatalf("expected 2 dispatches and 2 transitions, got %d and %d", len(st.Dispatches), len(st.Transitions))
	}
	if st.Dispatches[0].Iteration != 1 || st.Dispatches[1].Iteration != 2 {
		t.Error("dispatch order not preserved")
	}
	if st.Transitions[1].Interrupt != InterruptProcessBlocked {
		t.Errorf("expected second transition process-blocked, got %s", st.Transitions[1].Interrupt)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"dispatch", true},
		{"transitions", true},
		{"", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.valid)
		}
	}
}
