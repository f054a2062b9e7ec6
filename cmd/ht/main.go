// Package main implements the ht CLI tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ht [query]...",
	Short: "Hypertask - tasks ranked by what to do next",
	Long: `Hypertask keeps one JSON file per task and ranks open tasks by a score
built from age, due date and tags.

Running ht with no subcommand lists tasks. Queries are +tag, -tag, or a
fragment of a task ID.`,
	Args:              cobra.ArbitraryArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	RunE:              runList,
}

var (
	rootDataDir  string
	rootLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "Directory holding task files (default from config)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	addListFlags(rootCmd)
}

// printError writes err to w, one line per wrapped cause, outermost first.
// Joined errors print each branch indented beneath a count.
func printError(w io.Writer, err error) {
	writeErrorChain(w, err, "", "error: ")
}

func writeErrorChain(w io.Writer, err error, indent, label string) {
	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			causes := joined.Unwrap()
			if len(causes) == 1 {
				err = causes[0]
				continue
			}
			fmt.Fprintf(w, "%s%s%d errors\n", indent, label, len(causes))
			for _, cause := range causes {
				writeErrorChain(w, cause, indent+"  ", "- ")
			}
			return
		}
		fmt.Fprintf(w, "%s%s%s\n", indent, label, strings.ReplaceAll(err.Error(), "\n", " "))
		err = errors.Unwrap(err)
		label = "caused by: "
	}
}
