package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/hypertask/task"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func plainHighlight(id string, _ int) string {
	return id
}

func bracketHighlight(id string, prefixLen int) string {
	return "[" + id[:prefixLen] + "]" + id[prefixLen:]
}

func testTask(id, description string, tags ...string) task.Task {
	return task.Task{
		ID:          task.ID(id),
		CreatedAt:   testNow.Add(-time.Hour),
		UpdatedAt:   testNow.Add(-time.Hour),
		Description: &description,
		Tags:        task.NewTags(tags...),
	}
}

func TestFormatTaskTableEmpty(t *testing.T) {
	if got := formatTaskTable(nil, nil, plainHighlight, testNow); got != "No tasks found.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatTaskTableColumns(t *testing.T) {
	due := testNow.Add(48 * time.Hour)
	walk := testTask("abcdefghkmnpqrst", "walk the dog", "home")
	walk.Due = &due
	walk.Recur = &task.Recurrence{Amount: 1, Unit: task.RecurDay}
	milk := testTask("xyz2345678abcdef", "buy milk")

	tasks := task.FinaliseAll([]task.Task{milk, walk}, testNow)

	got := formatTaskTable(tasks, nil, plainHighlight, testNow)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", got)
	}
	for _, header := range []string{"ID", "SCORE", "DESCRIPTION", "TAGS", "DUE", "RECUR"} {
		if !strings.Contains(lines[0], header) {
			t.Fatalf("expected header %s in %q", header, lines[0])
		}
	}
	if !strings.HasPrefix(lines[1], "abcdefghkmnpqrst") {
		t.Fatalf("expected due task first, got %q", lines[1])
	}
	for _, want := range []string{"walk the dog", "+home", "in 2d", "1d"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("expected %q in %q", want, lines[1])
		}
	}
	if !strings.Contains(lines[2], "buy milk") {
		t.Fatalf("expected second row for milk, got %q", lines[2])
	}
}

func TestFormatTaskTableHighlightsUniquePrefix(t *testing.T) {
	tasks := task.FinaliseAll([]task.Task{
		testTask("abcdefghkmnpqrst", "one"),
		testTask("abxyz23456789abc", "two"),
	}, testNow)

	got := formatTaskTable(tasks, nil, bracketHighlight, testNow)

	if !strings.Contains(got, "[abc]defghkmnpqrst") || !strings.Contains(got, "[abx]yz23456789abc") {
		t.Fatalf("expected 3-character prefixes highlighted, got %q", got)
	}
}

func TestVisibleTasksDropsHiddenTasks(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	farDue := time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC)

	done := testTask("abcdefghkmnpqrst", "done")
	done.Done = &past
	waiting := testTask("bcdefghkmnpqrsta", "waiting")
	waiting.Wait = &future
	snoozed := testTask("cdefghkmnpqrstab", "snoozed")
	snoozed.Snooze = &future

	fresh := testTask("xyz2345678abcdef", "fresh")
	fresh.CreatedAt = testNow
	fresh.UpdatedAt = testNow
	distant := testTask("yz2345678abcdefx", "due after 2038")
	distant.Due = &farDue

	tasks := task.FinaliseAll([]task.Task{done, waiting, snoozed, fresh, distant}, testNow.Add(500*time.Millisecond))
	visible := visibleTasks(tasks, testNow.Add(500*time.Millisecond))

	if len(visible) != 2 {
		t.Fatalf("expected fresh and distant tasks, got %+v", visible)
	}
	for _, f := range visible {
		if f.Score != 0 {
			t.Fatalf("expected zero scores for open tasks, got %d for %s", f.Score, f.Task.ID)
		}
		if f.Task.ID != fresh.ID && f.Task.ID != distant.ID {
			t.Fatalf("unexpected visible task %s", f.Task.ID)
		}
	}
}

func TestDisplayRowsPrefersConfig(t *testing.T) {
	if got := displayRows(7); got != 7 {
		t.Fatalf("expected configured rows, got %d", got)
	}
}

func TestFormatTags(t *testing.T) {
	if got := formatTags(nil); got != "-" {
		t.Fatalf("expected -, got %q", got)
	}
	if got := formatTags(task.NewTags("b", "a")); got != "+a +b" {
		t.Fatalf("expected sorted tags, got %q", got)
	}
}
