package main

import (
	"github.com/spf13/cobra"

	"mediastack/internal/logging"
	"mediastack/internal/services"
	"mediastack/internal/stack"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   "resolve [--dir PATH]... [FILE]...",
		Short: "Group the given paths into stacks",
		Long: "Resolve groups file and folder paths into stacks without touching the filesystem.\n" +
			"Positional arguments are treated as files; pass folders with --dir.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(dirs) == 0 {
				return services.Wrap(services.ErrInvalidArgument, "cli", "resolve", "no paths given", nil)
			}
			resolver, err := ctx.stackResolver()
			if err != nil {
				return err
			}

			entries := make([]stack.Entry, 0, len(args)+len(dirs))
			for _, dir := range dirs {
				entries = append(entries, stack.Entry{ID: dir, IsFolder: true})
			}
			for _, file := range args {
				entries = append(entries, stack.Entry{ID: file})
			}
			result := resolver.Resolve(entries)

			ctx.ensureLogger().Info("resolve complete",
				logging.String(logging.FieldEventType, "resolve_complete"),
				logging.Int("entries", len(entries)),
				logging.Int("stacks", len(result.Stacks)),
				logging.Int("unstacked", len(result.Unstacked)))

			mode := ctx.outputMode(cmd)
			if mode == modeJSON {
				return writeJSON(cmd, result)
			}
			writeResult(cmd.OutOrStdout(), mode, result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&dirs, "dir", nil, "Folder path to include (repeatable)")
	return cmd
}
