// Package listflags registers flags shared by commands that print tasks.
package listflags

import "github.com/spf13/cobra"

// AddJSONFlag adds a shared --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}

// AddAllFlag adds a shared --all flag that includes hidden tasks.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, "all", "a", false, "Include done, waiting and snoozed tasks")
}

// AddLimitFlag adds a shared --limit flag. Zero defers to the configured row count.
func AddLimitFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVarP(target, "limit", "n", 0, "Maximum number of tasks to show (0 uses display.rows)")
}
