package task

import (
	"testing"
	"time"
)

func TestFinalise(t *testing.T) {
	task := newTestTask()
	task.ApplyMutation(SetProp{Description("buy milk")}, t0)

	finalised := task.Finalise(t0)

	if finalised.Score != 0 {
		t.Errorf("expected score 0, got %d", finalised.Score)
	}
	if finalised.Task.ID != task.ID {
		t.Errorf("expected finalised task %q, got %q", task.ID, finalised.Task.ID)
	}
}

func TestFinalisedTask_Compare(t *testing.T) {
	high := FinalisedTask{Score: 20}
	low := FinalisedTask{Score: 10}

	if high.Compare(low) >= 0 {
		t.Errorf("expected score 20 to sort before score 10")
	}
	if low.Compare(high) <= 0 {
		t.Errorf("expected score 10 to sort after score 20")
	}
}

func TestFinalisedTask_EqualOnlyComparesScore(t *testing.T) {
	a := FinalisedTask{Task: Task{ID: "aaaa"}, Score: 5}
	b := FinalisedTask{Task: Task{ID: "bbbb"}, Score: 5}

	if !a.Equal(b) || a.Compare(b) != 0 {
		t.Errorf("expected tasks with equal scores to compare equal")
	}
}

func TestFinaliseAll(t *testing.T) {
	fresh := newTestTask()
	fresh.ID = "fresh"
	stale := newTestTask()
	stale.ID = "stale"
	stale.UpdatedAt = t0.Add(-time.Hour)
	tie := newTestTask()
	tie.ID = "tie"

	got := FinaliseAll([]Task{fresh, stale, tie}, t0)

	order := []ID{"stale", "fresh", "tie"}
	for i, id := range order {
		if got[i].Task.ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, got[i].Task.ID)
		}
	}
}
