package main

import (
	"github.com/amonks/hypertask/internal/editor"
	"github.com/amonks/hypertask/task"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task in $EDITOR",
	Long: `Edit a task in $EDITOR (or vi). The task is presented as TOML
frontmatter followed by the description; saving applies the differences
as an update.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, tokens []string) error {
	existing, err := current.findTask(tokens[0])
	if err != nil {
		return err
	}

	parsed, err := editor.EditTask(existing, editor.Command())
	if err != nil {
		return err
	}
	mutations, err := parsed.Mutations(existing, current.clock.Now())
	if err != nil {
		return err
	}
	mutations, err = current.resolveBlocked(mutations)
	if err != nil {
		return err
	}

	return update([]task.Query{task.ByID{ID: existing.ID}}, mutations, "updated")
}
