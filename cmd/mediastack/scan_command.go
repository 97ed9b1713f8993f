package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediastack/internal/config"
	"mediastack/internal/index"
	"mediastack/internal/library"
	"mediastack/internal/logging"
	"mediastack/internal/services"
	"mediastack/internal/stack"
)

type scanReport struct {
	Root   string       `json:"root"`
	RunID  string       `json:"run_id,omitempty"`
	Result stack.Result `json:"result"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var save bool
	var hidden bool

	cmd := &cobra.Command{
		Use:   "scan DIR...",
		Short: "List directories and group their contents into stacks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolver, err := ctx.stackResolver()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			roots := make([]string, 0, len(args))
			for _, arg := range args {
				root, err := config.ExpandPath(arg)
				if err != nil {
					return services.Wrap(services.ErrInvalidArgument, "cli", "scan", arg, err)
				}
				roots = append(roots, root)
			}

			var opts []library.Option
			if hidden {
				opts = append(opts, library.WithHidden())
			}
			lister := library.NewLister(nil, logger, opts...)
			listings, err := lister.ListAll(cmd.Context(), roots)
			if err != nil {
				return err
			}

			var store *index.Store
			if save {
				store, err = index.Open(cmd.Context(), cfg, logger)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			reports := make([]scanReport, 0, len(roots))
			for i, root := range roots {
				runCtx := services.WithRunID(cmd.Context(), index.NewRunID())
				result := resolver.Resolve(listings[i])
				report := scanReport{Root: root, Result: result}
				if store != nil {
					summary, err := store.SaveRun(runCtx, root, result)
					if err != nil {
						return fmt.Errorf("save run for %s: %w", root, err)
					}
					report.RunID = summary.ID
				}
				logging.WithContext(runCtx, logger).Info("scan complete",
					logging.String(logging.FieldEventType, "scan_complete"),
					logging.String("root", root),
					logging.Int("entries", len(listings[i])),
					logging.Int("stacks", len(result.Stacks)),
					logging.Int("unstacked", len(result.Unstacked)))
				reports = append(reports, report)
			}

			mode := ctx.outputMode(cmd)
			if mode == modeJSON {
				return writeJSON(cmd, reports)
			}
			out := cmd.OutOrStdout()
			for _, report := range reports {
				if mode == modeTable {
					fmt.Fprintf(out, "%s\n", report.Root)
					if report.RunID != "" {
						fmt.Fprintf(out, "Saved as run %s\n", report.RunID)
					}
				}
				writeResult(out, mode, report.Result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the index")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Include dot-prefixed entries")
	return cmd
}
