package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediastack/internal/audiobook"
)

type audiobookReport struct {
	Path string              `json:"path"`
	Info *audiobook.FileInfo `json:"info"`
}

func newAudiobookCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audiobook PATH...",
		Short: "Show container, part and chapter numbers parsed from audiobook file names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.audiobookResolver()
			if err != nil {
				return err
			}

			reports := make([]audiobookReport, 0, len(args))
			for _, path := range args {
				info, err := resolver.ParseFile(path)
				if err != nil {
					return err
				}
				reports = append(reports, audiobookReport{Path: path, Info: info})
			}

			mode := ctx.outputMode(cmd)
			if mode == modeJSON {
				return writeJSON(cmd, reports)
			}
			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				if report.Info == nil {
					rows = append(rows, []string{report.Path, "-", "-", "-"})
					continue
				}
				rows = append(rows, []string{
					report.Path,
					report.Info.Container,
					formatNumber(report.Info.PartNumber),
					formatNumber(report.Info.ChapterNumber),
				})
			}
			out := cmd.OutOrStdout()
			if mode == modeTable {
				fmt.Fprintln(out, renderTable(
					[]string{"Path", "Container", "Part", "Chapter"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
				))
				return nil
			}
			writeRows(out, rows)
			return nil
		},
	}
}

func formatNumber(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}
