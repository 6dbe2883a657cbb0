// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/srctools/internal/wsolve"
	"github.com/pdiddy/srctools/pkg/types"
)

var wsolveCmd = &cobra.Command{
	Use:   "wsolve [root]",
	Short: "Strip trailing whitespace and convert tabs to spaces",
	Long: `Wsolve walks a directory tree (the current directory by default) and
rewrites every file whose name does not start with an ignored prefix:
trailing whitespace is stripped from each line, lines are joined with "\n"
without a final newline, and tabs are replaced with spaces. Binary files
and the directories listed in skip_dirs are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWsolve,
}

func init() {
	wsolveCmd.Flags().StringSlice("ignore", nil, "file name prefixes to leave untouched (repeatable)")
	wsolveCmd.Flags().StringSlice("skip-dir", nil, "directory names not to descend into (repeatable)")
	wsolveCmd.Flags().Int("tab-width", 0, "spaces per tab (default 2)")
	wsolveCmd.Flags().Int("workers", 0, "files processed concurrently (default: number of CPUs)")
	wsolveCmd.Flags().Bool("progress", false, "show a progress bar")

	bindFlags(wsolveCmd.Flags(), map[string]string{
		"wsolve.ignore_prefixes": "ignore",
		"wsolve.skip_dirs":       "skip-dir",
		"wsolve.tab_width":       "tab-width",
		"wsolve.workers":         "workers",
		"wsolve.progress":        "progress",
	})

	rootCmd.AddCommand(wsolveCmd)
}

func runWsolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Wsolve.Root = args[0]
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "{ # Version")
	fmt.Fprintf(out, "  name        = %s,\n", cmd.Name())
	fmt.Fprintf(out, "  version     = %s,\n", version)
	fmt.Fprintln(out, "  description = Removes whitespaces and replaces tabs with spaces")
	fmt.Fprintln(out, "}")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "> Working ...")
	fmt.Fprintln(out)

	start := time.Now()
	summary, err := wsolve.Run(cmd.Context(), cfg.Wsolve, out)
	elapsed := time.Since(start)

	rec := types.RunRecord{
		Tool:      types.ToolWsolve,
		Target:    cfg.Wsolve.Root,
		Status:    types.RunSucceeded,
		Items:     summary.Total(),
		Elapsed:   elapsed,
		StartedAt: start,
	}
	switch {
	case err != nil:
		rec.Status = types.RunFailed
		rec.Error = err.Error()
	case summary.HasFailures():
		rec.Status = types.RunFailed
		rec.Error = fmt.Sprintf("%d file(s) failed", summary.Failed)
	}
	recordRun(cmd.Context(), cfg.History, rec)

	if err != nil {
		return err
	}

	fmt.Fprintln(out, "{ # Job done!")
	fmt.Fprintf(out, "  time          = %.3fs,\n", elapsed.Seconds())
	fmt.Fprintf(out, "  files_touched = %d\n", summary.Total())
	fmt.Fprintln(out, "}")

	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed normalization", summary.Failed)
	}
	return nil
}
