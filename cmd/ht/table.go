package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/amonks/hypertask/internal/ui"
	"github.com/amonks/hypertask/task"
)

func formatTaskTable(tasks []task.FinalisedTask, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	builder := ui.NewTableBuilder([]string{"ID", "SCORE", "DESCRIPTION", "TAGS", "DUE", "RECUR"}, len(tasks))

	if prefixLengths == nil {
		prefixLengths = taskIDPrefixLengths(tasks)
	}

	for _, f := range tasks {
		t := f.Task
		id := string(t.ID)
		row := []string{
			highlight(id, ui.PrefixLength(prefixLengths, id)),
			strconv.FormatUint(f.Score, 10),
			ui.TruncateTableCell(descriptionOrDash(t.Description)),
			formatTags(t.Tags),
			ui.FormatRelative(t.Due, now),
			formatRecur(t.Recur),
		}
		switch {
		case t.IsOverdue(now):
			builder.AddStyledRow(row, ui.OverdueStyle)
		case t.IsSoonDue(now):
			builder.AddStyledRow(row, ui.SoonDueStyle)
		default:
			builder.AddRow(row)
		}
	}

	return builder.String()
}

func taskIDPrefixLengths(tasks []task.FinalisedTask) map[string]int {
	values := make([]string, 0, len(tasks))
	for _, f := range tasks {
		values = append(values, string(f.Task.ID))
	}
	return ui.UniqueIDPrefixLengths(values)
}

func descriptionOrDash(description *string) string {
	if description == nil || strings.TrimSpace(*description) == "" {
		return "-"
	}
	return *description
}

func formatTags(tags task.Tags) string {
	if len(tags) == 0 {
		return "-"
	}
	sorted := tags.Sorted()
	for i, name := range sorted {
		sorted[i] = "+" + name
	}
	return strings.Join(sorted, " ")
}

func formatRecur(rule *task.Recurrence) string {
	if rule == nil {
		return "-"
	}
	return rule.String()
}
