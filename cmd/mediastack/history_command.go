package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mediastack/internal/index"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved scan runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, ctx, func(store *index.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				mode := ctx.outputMode(cmd)
				if mode == modeJSON {
					if runs == nil {
						runs = []index.RunSummary{}
					}
					return writeJSON(cmd, runs)
				}

				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					if mode == modeTable {
						fmt.Fprintln(out, "No runs recorded")
					}
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.CreatedAt.Local().Format(time.DateTime),
						run.Root,
						strconv.Itoa(run.StackCount),
						strconv.Itoa(run.UnstackedCount),
					})
				}
				if mode == modeTable {
					fmt.Fprintln(out, renderTable(
						[]string{"Run", "Created", "Root", "Stacks", "Unstacked"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
					))
					return nil
				}
				writeRows(out, rows)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the stacks recorded for a run (id prefixes are accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, ctx, func(store *index.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				mode := ctx.outputMode(cmd)
				if mode == modeJSON {
					return writeJSON(cmd, run)
				}
				out := cmd.OutOrStdout()
				if mode == modeTable {
					fmt.Fprintf(out, "Run %s\n", run.ID)
					fmt.Fprintf(out, "Root: %s\n", run.Root)
					fmt.Fprintf(out, "Created: %s\n", run.CreatedAt.Local().Format(time.DateTime))
				}
				writeResult(out, mode, run.Result)
				return nil
			})
		},
	}
}

func withIndex(cmd *cobra.Command, ctx *commandContext, fn func(*index.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := index.Open(cmd.Context(), cfg, ctx.ensureLogger())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
