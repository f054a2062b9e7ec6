package task

import (
	"math"
	"time"
)

// Baseline is the reference point due dates are measured back from: a due
// date d contributes Baseline - d.Unix(), so earlier due dates score higher.
const Baseline int64 = math.MaxInt32

// SoonDueWindow is how far ahead IsSoonDue looks.
const SoonDueWindow = 3 * 24 * time.Hour

const (
	// TagTimely doubles the due-date score of an overdue task.
	TagTimely = "timely"

	// TagUrgent doubles a task's score.
	TagUrgent = "urgent"
)

// Score ranks the task at now; higher means more urgent.
//
// Done tasks, and tasks waiting or snoozed past now, score 0. A task with a
// due date scores Baseline minus the due date in epoch seconds, doubled when
// it is tagged timely and overdue. A task without a due date scores the
// seconds since it was last updated. The urgent tag doubles the result.
//
// Due dates past Baseline (2038-01-19) and UpdatedAt values after now clamp
// to 0 rather than wrapping around.
func (t *Task) Score(now time.Time) uint64 {
	if t.IsHidden(now) {
		return 0
	}

	var score uint64
	if t.Due != nil {
		score = clampSeconds(Baseline - t.Due.Unix())
		if t.Tags.Has(TagTimely) && t.Due.Before(now) {
			score += score
		}
	} else {
		score = clampSeconds(int64(now.Sub(t.UpdatedAt) / time.Second))
	}

	if t.Tags.Has(TagUrgent) {
		score += score
	}

	return score
}

// IsHidden reports whether the task is done, or waiting or snoozed past now.
// An open task can still score 0, so listings filter on this instead.
func (t *Task) IsHidden(now time.Time) bool {
	if t.Done != nil {
		return true
	}
	if t.Wait != nil && t.Wait.After(now) {
		return true
	}
	return t.Snooze != nil && t.Snooze.After(now)
}

func clampSeconds(seconds int64) uint64 {
	if seconds < 0 {
		return 0
	}
	return uint64(seconds)
}

// IsOverdue reports whether the task has a due date before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Due != nil && t.Due.Before(now)
}

// IsSoonDue reports whether the task is due within SoonDueWindow of now.
// Overdue tasks are soon due too.
func (t *Task) IsSoonDue(now time.Time) bool {
	return t.Due != nil && t.Due.Before(now.Add(SoonDueWindow))
}
