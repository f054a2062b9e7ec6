package main

import (
	"fmt"
	"time"

	"github.com/amonks/hypertask/engine"
	"github.com/amonks/hypertask/internal/args"
	"github.com/amonks/hypertask/internal/listflags"
	"github.com/amonks/hypertask/internal/ui"
	"github.com/amonks/hypertask/task"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [query]...",
	Short: "List tasks ordered by score",
	Long: `List tasks ordered by score, highest first.

With no queries every task is considered. Tasks scoring zero (done,
waiting, snoozed) are hidden unless --all is given.`,
	Aliases: []string{"ls"},
	Args:    cobra.ArbitraryArgs,
	RunE:    runList,
}

var (
	listJSON  bool
	listAll   bool
	listLimit int
)

// Without a configured row count, the table fills the terminal minus this
// many lines, or falls back to defaultRows.
const (
	rowsReserved = 5
	defaultRows  = 40
)

func init() {
	addListFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func addListFlags(cmd *cobra.Command) {
	listflags.AddJSONFlag(cmd, &listJSON)
	listflags.AddAllFlag(cmd, &listAll)
	listflags.AddLimitFlag(cmd, &listLimit)
}

func runList(cmd *cobra.Command, tokens []string) error {
	queries, err := args.ParseQueries(tokens)
	if err != nil {
		return err
	}

	var verb engine.Verb = engine.List{}
	if len(queries) > 0 {
		verb = engine.Read{Queries: queries}
	}
	tasks, err := current.runVerb(verb)
	if err != nil {
		return err
	}

	now := current.clock.Now()
	finalised := task.FinaliseAll(tasks, now)
	if !listAll {
		finalised = visibleTasks(finalised, now)
	}

	if listJSON {
		return encodeJSON(current.stdout, finalised)
	}

	limit := listLimit
	if limit == 0 {
		limit = displayRows(current.cfg.Display.Rows)
	}
	if limit > 0 && len(finalised) > limit {
		finalised = finalised[:limit]
	}
	fmt.Fprint(current.stdout, formatTaskTable(finalised, nil, ui.HighlightID, now))
	return nil
}

func visibleTasks(tasks []task.FinalisedTask, now time.Time) []task.FinalisedTask {
	visible := make([]task.FinalisedTask, 0, len(tasks))
	for _, t := range tasks {
		if !t.Task.IsHidden(now) {
			visible = append(visible, t)
		}
	}
	return visible
}

func displayRows(configured int) int {
	if configured > 0 {
		return configured
	}
	if _, height := ui.TerminalSize(); height > rowsReserved {
		return height - rowsReserved
	}
	return defaultRows
}

