package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/amonks/hypertask/engine"
	"github.com/amonks/hypertask/internal/args"
	"github.com/amonks/hypertask/task"
	"github.com/spf13/cobra"
)

// ErrMissingSeparator is returned when update has no "--" between queries
// and mutations.
var ErrMissingSeparator = errors.New(`expected "--" between queries and mutations`)

var addCmd = &cobra.Command{
	Use:   "add <mutation>...",
	Short: "Create a task",
	Long: `Create a task from mutation tokens.

Bare words form the description. +tag adds a tag, and key:value sets a
property (description, due, wait, snooze, recur, blocked, done). Flags
go before the first token; a leading token starting with "-" needs a "--"
in front of it.`,
	Example: `  ht add buy milk +errand due:tomorrow
  ht add water plants recur:3d due:today`,
	Aliases: []string{"create", "new"},
	Args:    cobra.ArbitraryArgs,
	RunE:    runAdd,
}

var addDescription string

var updateCmd = &cobra.Command{
	Use:   "update <query>... -- <mutation>...",
	Short: "Apply mutations to matching tasks",
	Long: `Apply mutations to every task matching the queries.

Queries and mutations are separated by "--". When the first query starts
with "-", escape the query list with a leading "--" as well.`,
	Example: `  ht update +errand -- due:2d +urgent
  ht update 7k2m -- -urgent recur:
  ht update -- -work -- +someday`,
	Aliases: []string{"modify", "mod"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runUpdate,
}

var updateDescription string

var doneCmd = &cobra.Command{
	Use:   "done <query>...",
	Short: "Mark matching tasks done",
	Long: `Mark matching tasks done. A recurring task stays open with its due and
wait dates moved forward by the recurrence.`,
	Aliases: []string{"finish"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDone,
}

var snoozeCmd = &cobra.Command{
	Use:   "snooze <query>... --until <time>",
	Short: "Hide matching tasks until a time",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSnooze,
}

var snoozeUntil string

var deleteCmd = &cobra.Command{
	Use:     "delete <query>...",
	Short:   "Delete matching tasks",
	Aliases: []string{"rm"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (overrides bare words)")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")

	snoozeCmd.Flags().StringVarP(&snoozeUntil, "until", "u", "", "When the task reappears (e.g. tomorrow, 3d, 2025-01-02)")
	_ = snoozeCmd.MarkFlagRequired("until")

	// Mutation tokens such as -tag would otherwise parse as flags.
	addCmd.Flags().SetInterspersed(false)
	updateCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(addCmd, updateCmd, doneCmd, snoozeCmd, deleteCmd)
}

func runAdd(cmd *cobra.Command, tokens []string) error {
	tokens = slices.DeleteFunc(slices.Clone(tokens), func(token string) bool { return token == "--" })
	mutations, err := parseMutations(tokens, addDescription, cmd.Flags().Changed("description"))
	if err != nil {
		return err
	}

	created, err := current.runVerb(engine.Create{Mutations: mutations})
	if err != nil {
		return err
	}
	for _, t := range created {
		fmt.Fprintf(current.stdout, "created %s\n", t.ID)
	}
	return nil
}

func runUpdate(cmd *cobra.Command, tokens []string) error {
	queryTokens, mutationTokens, err := splitAtSeparator(tokens)
	if err != nil {
		return err
	}
	queries, err := parseRequiredQueries(queryTokens)
	if err != nil {
		return err
	}
	mutations, err := parseMutations(mutationTokens, updateDescription, cmd.Flags().Changed("description"))
	if err != nil {
		return err
	}
	return update(queries, mutations, "updated")
}

func runDone(_ *cobra.Command, tokens []string) error {
	queries, err := parseRequiredQueries(tokens)
	if err != nil {
		return err
	}
	mutations := []task.Mutation{task.SetProp{Prop: task.Done{At: current.clock.Now()}}}
	return update(queries, mutations, "done")
}

func runSnooze(_ *cobra.Command, tokens []string) error {
	queries, err := parseRequiredQueries(tokens)
	if err != nil {
		return err
	}
	until, err := args.ParseTime(snoozeUntil, current.clock.Now())
	if err != nil {
		return err
	}
	mutations := []task.Mutation{task.SetProp{Prop: task.Snooze{Until: &until}}}
	return update(queries, mutations, "snoozed")
}

func runDelete(_ *cobra.Command, tokens []string) error {
	queries, err := parseRequiredQueries(tokens)
	if err != nil {
		return err
	}
	deleted, err := current.runVerb(engine.Delete{Queries: queries})
	printAffected(current.stdout, "deleted", deleted)
	return err
}

func update(queries []task.Query, mutations []task.Mutation, label string) error {
	updated, err := current.runVerb(engine.Update{Queries: queries, Mutations: mutations})
	printAffected(current.stdout, label, updated)
	return err
}

// parseMutations parses tokens, resolves abbreviated blocked IDs, and
// appends the --description flag when set.
func parseMutations(tokens []string, description string, descriptionSet bool) ([]task.Mutation, error) {
	mutations, err := args.ParseMutations(tokens, current.clock.Now())
	if err != nil {
		return nil, err
	}
	if descriptionSet {
		mutations = append(mutations, task.SetProp{Prop: task.Description(description)})
	}
	return current.resolveBlocked(mutations)
}

// splitAtSeparator splits tokens at the first literal "--". Flag parsing
// stops at the first positional argument, so the separator reaches the
// command as a token.
func splitAtSeparator(tokens []string) ([]string, []string, error) {
	i := slices.Index(tokens, "--")
	if i < 0 {
		return nil, nil, ErrMissingSeparator
	}
	return tokens[:i], tokens[i+1:], nil
}

func parseRequiredQueries(tokens []string) ([]task.Query, error) {
	if len(tokens) == 0 {
		return nil, errors.New("at least one query is required")
	}
	return args.ParseQueries(tokens)
}

func printAffected(w io.Writer, label string, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintf(w, "no tasks %s\n", label)
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%s %s: %s\n", label, t.ID, descriptionOrDash(t.Description))
	}
}
