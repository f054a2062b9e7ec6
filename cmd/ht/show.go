package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/hypertask/engine"
	"github.com/amonks/hypertask/internal/listflags"
	"github.com/amonks/hypertask/internal/markdown"
	internalstrings "github.com/amonks/hypertask/internal/strings"
	"github.com/amonks/hypertask/internal/ui"
	"github.com/amonks/hypertask/store"
	"github.com/amonks/hypertask/task"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task in detail",
	Long: `Show a task in detail. The ID may be abbreviated to any prefix that
matches a single task.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showJSON bool

const (
	showLabelWidth = 13
	showWidth      = 80
)

func init() {
	listflags.AddJSONFlag(showCmd, &showJSON)
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, tokens []string) error {
	t, err := current.findTask(tokens[0])
	if err != nil {
		return err
	}

	now := current.clock.Now()
	finalised := t.Finalise(now)
	if showJSON {
		return encodeJSON(current.stdout, finalised)
	}

	width := showWidth
	if w, _ := ui.TerminalSize(); w > 0 {
		width = w
	}
	render := markdown.Reflow
	if ui.ColorEnabled() {
		render = markdown.Render
	}
	writeTaskDetail(current.stdout, finalised, now, width, render)
	return nil
}

// findTask resolves an ID prefix and loads that task.
func (a *app) findTask(prefix string) (task.Task, error) {
	id, err := a.resolveID(prefix)
	if err != nil {
		return task.Task{}, err
	}
	found, err := a.runVerb(engine.Read{Queries: []task.Query{task.ByID{ID: id}}})
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range found {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
}

type renderFunc func(width, indent int, input []byte) []byte

func writeTaskDetail(w io.Writer, f task.FinalisedTask, now time.Time, width int, render renderFunc) {
	t := f.Task
	field := func(label, value string) {
		fmt.Fprintf(w, "%-*s%s\n", showLabelWidth, label+":", value)
	}
	timeField := func(label string, at *time.Time) {
		if at == nil {
			return
		}
		field(label, ui.FormatTimestamp(at)+" ("+ui.FormatRelative(at, now)+")")
	}

	field("ID", string(t.ID))
	field("Score", strconv.FormatUint(f.Score, 10))
	field("Tags", formatTags(t.Tags))
	timeField("Due", t.Due)
	timeField("Wait", t.Wait)
	timeField("Snooze", t.Snooze)
	if t.Recur != nil {
		field("Recur", t.Recur.String())
	}
	if t.Blocked != nil {
		field("Blocked by", string(*t.Blocked))
	}
	timeField("Done", t.Done)
	field("Created", ui.FormatTimestamp(&t.CreatedAt))
	field("Updated", ui.FormatTimestamp(&t.UpdatedAt))

	if t.Description == nil || internalstrings.IsBlank(*t.Description) {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Description:")
	body := render(width, 4, []byte(*t.Description))
	fmt.Fprintln(w, strings.TrimRight(string(body), "\n"))
}
