package task

import (
	"cmp"
	"slices"
	"time"
)

// FinalisedTask pairs a task with its score at a fixed time.
type FinalisedTask struct {
	Task  Task   `json:"task"`
	Score uint64 `json:"score"`
}

// Finalise scores the task at now. The task moves into the result; callers
// must not keep mutating t afterwards, since the tag set is shared.
func (t Task) Finalise(now time.Time) FinalisedTask {
	return FinalisedTask{Task: t, Score: t.Score(now)}
}

// Compare orders by descending score. Tasks with equal scores compare equal
// regardless of which tasks they are.
func (f FinalisedTask) Compare(other FinalisedTask) int {
	return cmp.Compare(other.Score, f.Score)
}

// Equal reports whether both tasks have the same score. It does not look at
// the tasks themselves.
func (f FinalisedTask) Equal(other FinalisedTask) bool {
	return f.Score == other.Score
}

// FinaliseAll scores every task at now and sorts the result, highest score
// first. Ties keep their input order.
func FinaliseAll(tasks []Task, now time.Time) []FinalisedTask {
	finalised := make([]FinalisedTask, 0, len(tasks))
	for _, t := range tasks {
		finalised = append(finalised, t.Finalise(now))
	}
	SortFinalised(finalised)
	return finalised
}

// SortFinalised sorts highest score first, keeping ties in order.
func SortFinalised(tasks []FinalisedTask) {
	slices.SortStableFunc(tasks, FinalisedTask.Compare)
}
