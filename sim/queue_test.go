package sim

import (
	"testing"
)

func processIDs(procs []*Process) []int {
	ids := make([]int, len(procs))
	for i, p := range procs {
		ids[i] = p.ID
	}
	return ids
}

func TestQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with processes [A, B]
	q := NewCPUQueue(0, 10)
	a := NewProcess(1, 100, 0)
	b := NewProcess(2, 100, 0)
	q.Enqueue(a)
	q.Enqueue(b)

	// WHEN Peek() is called
	got := q.Peek()

	// THEN it returns the front element without removing it
	if got != a {
		t.Errorf("Peek: got process %v, want %v", got.ID, a.ID)
	}
	if q.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", q.Len())
	}
}

func TestQueue_Peek_Empty_ReturnsNil(t *testing.T) {
	q := NewCPUQueue(0, 10)
	if got := q.Peek(); got != nil {
		t.Errorf("Peek on empty queue: got %v, want nil", got)
	}
	if !q.IsEmpty() {
		t.Error("new queue should be empty")
	}
}

func TestQueue_Enqueue_TagsProcessWithTier(t *testing.T) {
	cpu := NewCPUQueue(2, 50)
	blocking := NewBlockingQueue(50)
	p := NewProcess(1, 10, 0)

	cpu.Enqueue(p)
	if p.Level != 2 || p.State != StateReady {
		t.Errorf("after CPU enqueue: level=%d state=%s, want 2 ready", p.Level, p.State)
	}

	blocking.Enqueue(p)
	if p.Level != -1 || p.State != StateBlocked {
		t.Errorf("after blocking enqueue: level=%d state=%s, want -1 blocked", p.Level, p.State)
	}
}

func TestQueue_Enqueue_Nil_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Enqueue(nil) did not panic")
		}
	}()
	NewCPUQueue(0, 10).Enqueue(nil)
}

func TestQueueKind_Identity(t *testing.T) {
	tests := []struct {
		name       string
		kind       QueueKind
		isCPU      bool
		isBlocking bool
		level      int
		str        string
	}{
		{"blocking", BlockingKind(), false, true, -1, "blocking"},
		{"cpu 0", CPUKind(0), true, false, 0, "cpu[0]"},
		{"cpu 3", CPUKind(3), true, false, 3, "cpu[3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.kind.IsCPU() != tt.isCPU || tt.kind.IsBlocking() != tt.isBlocking {
				t.Errorf("IsCPU=%v IsBlocking=%v, want %v %v", tt.kind.IsCPU(), tt.kind.IsBlocking(), tt.isCPU, tt.isBlocking)
			}
			if tt.kind.Level() != tt.level {
				t.Errorf("Level() = %d, want %d", tt.kind.Level(), tt.level)
			}
			if tt.kind.String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.kind.String(), tt.str)
			}
		})
	}
}

func TestQueue_DoCPUWork_WithinQuantum_StillRunning(t *testing.T) {
	// GIVEN a tier with quantum 10 and a process needing 100 ticks
	q := NewCPUQueue(0, 10)
	p := NewProcess(1, 100, 0)
	q.Enqueue(p)

	// WHEN 10 ticks of CPU work are done (quantum is only exceeded, not reached)
	out := q.DoCPUWork(10)

	// THEN the process keeps running at the head
	if out.Kind != StillRunning || out.Process != p {
		t.Errorf("outcome = %v (%v), want still-running for process 1", out.Kind, out.Process)
	}
	if p.CPUTimeNeeded != 90 {
		t.Errorf("CPUTimeNeeded = %d, want 90", p.CPUTimeNeeded)
	}
	if q.Peek() != p {
		t.Error("process should remain at head")
	}
}

func TestQueue_DoCPUWork_ExceedsQuantum_TimedOutAndRemoved(t *testing.T) {
	q := NewCPUQueue(0, 10)
	p := NewProcess(1, 100, 0)
	q.Enqueue(p)

	q.DoCPUWork(6)
	out := q.DoCPUWork(6)

	if out.Kind != TimedOut {
		t.Fatalf("outcome = %v, want timed-out", out.Kind)
	}
	if q.Contains(p) || !q.IsEmpty() {
		t.Error("timed-out process should be removed from its queue")
	}
	if p.CPUTimeNeeded != 88 {
		t.Errorf("CPUTimeNeeded = %d, want 88", p.CPUTimeNeeded)
	}
}

func TestQueue_DoCPUWork_SliceResetsForNextHead(t *testing.T) {
	// GIVEN two processes where the first times out
	q := NewCPUQueue(0, 10)
	a := NewProcess(1, 100, 0)
	b := NewProcess(2, 100, 0)
	q.Enqueue(a)
	q.Enqueue(b)
	if out := q.DoCPUWork(11); out.Kind != TimedOut || out.Process != a {
		t.Fatalf("expected process 1 to time out, got %v for %v", out.Kind, out.Process)
	}

	// WHEN the next head runs for less than a full quantum
	out := q.DoCPUWork(5)

	// THEN it gets a fresh slice
	if out.Kind != StillRunning || out.Process != b {
		t.Errorf("outcome = %v for %v, want still-running for process 2", out.Kind, out.Process)
	}
}

func TestQueue_DoCPUWork_Drains_Finished(t *testing.T) {
	q := NewCPUQueue(1, 30)
	p := NewProcess(1, 5, 0)
	q.Enqueue(p)

	out := q.DoCPUWork(20)

	if out.Kind != Finished {
		t.Fatalf("outcome = %v, want finished", out.Kind)
	}
	if p.CPUTimeNeeded != 0 || p.State != StateFinished {
		t.Errorf("process = %v, want drained and finished", p)
	}
	if !q.IsEmpty() {
		t.Error("finished process should be removed")
	}
}

func TestQueue_DoCPUWork_NeedsBlocking_Blocked(t *testing.T) {
	q := NewCPUQueue(0, 10)
	p := NewProcess(1, 50, 20)
	q.Enqueue(p)

	out := q.DoCPUWork(5)

	if out.Kind != Blocked {
		t.Fatalf("outcome = %v, want blocked", out.Kind)
	}
	if p.CPUTimeNeeded != 50 {
		t.Errorf("blocked process consumed CPU: CPUTimeNeeded = %d, want 50", p.CPUTimeNeeded)
	}
	if !q.IsEmpty() {
		t.Error("blocked process should be removed")
	}
}

func TestQueue_NonPositiveElapsed_IsNoOp(t *testing.T) {
	for _, elapsed := range []int64{0, -5} {
		cpu := NewCPUQueue(0, 10)
		blocking := NewBlockingQueue(50)
		p := NewProcess(1, 100, 0)
		b := NewProcess(2, 100, 40)
		cpu.Enqueue(p)
		blocking.Enqueue(b)

		if out := cpu.DoCPUWork(elapsed); out.Kind != StillRunning {
			t.Errorf("elapsed=%d: CPU outcome = %v, want still-running", elapsed, out.Kind)
		}
		if out := blocking.DoBlockingWork(elapsed); out.Kind != StillRunning {
			t.Errorf("elapsed=%d: blocking outcome = %v, want still-running", elapsed, out.Kind)
		}
		if p.CPUTimeNeeded != 100 || b.BlockingTimeNeeded != 40 {
			t.Errorf("elapsed=%d: process state changed: cpu=%d blocking=%d", elapsed, p.CPUTimeNeeded, b.BlockingTimeNeeded)
		}
		if cpu.quantumClock != 0 || blocking.quantumClock != 0 {
			t.Errorf("elapsed=%d: quantum accrued", elapsed)
		}
	}
}

func TestQueue_DoBlockingWork_Drains_Ready(t *testing.T) {
	q := NewBlockingQueue(50)
	p := NewProcess(1, 10, 25)
	q.Enqueue(p)

	if out := q.DoBlockingWork(20); out.Kind != StillRunning {
		t.Fatalf("first outcome = %v, want still-running", out.Kind)
	}
	out := q.DoBlockingWork(20)

	if out.Kind != Ready || out.Process != p {
		t.Fatalf("outcome = %v, want ready", out.Kind)
	}
	if p.BlockingTimeNeeded != 0 || p.CPUTimeNeeded != 10 {
		t.Errorf("process = %v, want blocking drained and CPU untouched", p)
	}
	if !q.IsEmpty() {
		t.Error("ready process should be removed")
	}
}

func TestQueue_DoBlockingWork_ExceedsQuantum_RotatesHead(t *testing.T) {
	// GIVEN two waiters with long blocking times
	q := NewBlockingQueue(50)
	a := NewProcess(1, 10, 100)
	b := NewProcess(2, 10, 100)
	q.Enqueue(a)
	q.Enqueue(b)

	// WHEN the head exceeds the blocking quantum
	q.DoBlockingWork(30)
	out := q.DoBlockingWork(30)

	// THEN it moves to the tail without leaving the queue
	if out.Kind != Rotated || out.Process != a {
		t.Fatalf("outcome = %v for %v, want rotated for process 1", out.Kind, out.Process)
	}
	got := processIDs(q.Items())
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("queue order = %v, want [2 1]", got)
	}
	if a.BlockingTimeNeeded != 40 {
		t.Errorf("BlockingTimeNeeded = %d, want 40", a.BlockingTimeNeeded)
	}
}

func TestQueue_WrongWorkKind_Panics(t *testing.T) {
	t.Run("cpu work on blocking queue", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		NewBlockingQueue(50).DoCPUWork(10)
	})
	t.Run("blocking work on cpu queue", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		NewCPUQueue(0, 10).DoBlockingWork(10)
	})
}

func TestQueue_String(t *testing.T) {
	q := NewCPUQueue(1, 30)
	q.Enqueue(NewProcess(4, 1, 0))
	q.Enqueue(NewProcess(7, 1, 0))
	if got := q.String(); got != "cpu[1][4 7]" {
		t.Errorf("String() = %q, want %q", got, "cpu[1][4 7]")
	}
}
