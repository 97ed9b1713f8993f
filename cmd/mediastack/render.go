package main

import (
	"fmt"
	"io"
	"strconv"

	"mediastack/internal/stack"
	"mediastack/internal/textutil"
)

func kindLabel(folder bool) string {
	if folder {
		return "folder"
	}
	return "file"
}

// writeResult prints result in table or plain form. Plain rows are
// "stack\t<n>\t<name>\t<kind>\t<path>" per member followed by
// "unstacked\t<path>".
func writeResult(w io.Writer, mode outputMode, result stack.Result) {
	if mode == modeTable {
		rows := make([][]string, 0)
		for i, st := range result.Stacks {
			for part, path := range st.Files {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					textutil.DisplayName(st.Name),
					kindLabel(st.IsFolderStack),
					strconv.Itoa(part + 1),
					path,
				})
			}
		}
		if len(rows) > 0 {
			fmt.Fprintln(w, renderTable(
				[]string{"Stack", "Name", "Kind", "Part", "Path"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
		} else {
			fmt.Fprintln(w, "No stacks found")
		}
		if len(result.Unstacked) > 0 {
			unstacked := make([][]string, 0, len(result.Unstacked))
			for _, id := range result.Unstacked {
				unstacked = append(unstacked, []string{id})
			}
			fmt.Fprintln(w, renderTable([]string{"Unstacked"}, unstacked, nil))
		}
		return
	}

	rows := make([][]string, 0, len(result.Unstacked))
	for i, st := range result.Stacks {
		for _, path := range st.Files {
			rows = append(rows, []string{"stack", strconv.Itoa(i + 1), st.Name, kindLabel(st.IsFolderStack), path})
		}
	}
	for _, id := range result.Unstacked {
		rows = append(rows, []string{"unstacked", id})
	}
	writeRows(w, rows)
}
