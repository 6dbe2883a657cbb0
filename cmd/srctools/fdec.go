// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/srctools/internal/fdec"
	"github.com/pdiddy/srctools/pkg/types"
)

var fdecCmd = &cobra.Command{
	Use:   "fdec [source-file]",
	Short: "Generate forward function declarations from a C source file",
	Long: `Fdec scans a C source file for lines that start with a word character
and end at the first closing parenthesis, drops the last such line (the
entry point), removes duplicates and writes the remaining signatures as
forward declarations into an include-guarded header (fdec.h next to the
source by default).

The scan is a heuristic, not a parser: statements such as "if (x)" that
start a line are picked up as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFdec,
}

func init() {
	fdecCmd.Flags().StringP("output", "o", "", "header to write (default: fdec.h next to the source)")
	fdecCmd.Flags().String("tool-name", "", "name on the \"Generated by\" line")
	fdecCmd.Flags().Bool("dry-run", false, "print the header to stdout instead of writing it")

	bindFlags(fdecCmd.Flags(), map[string]string{
		"fdec.output":    "output",
		"fdec.tool_name": "tool-name",
	})

	rootCmd.AddCommand(fdecCmd)
}

func runFdec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Fdec.Input = args[0]
	}
	out := cmd.OutOrStdout()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		res, err := fdec.Prepare(cfg.Fdec)
		if err != nil {
			return err
		}
		fmt.Fprint(out, res.Document)
		return nil
	}

	fmt.Fprintf(out, "~+~+~ %s ~+~+~\n", cmd.CommandPath())
	fmt.Fprintf(out, "> Generating function declarations from %s ...\n", cfg.Fdec.Input)

	start := time.Now()
	res, err := fdec.Generate(cfg.Fdec)
	elapsed := time.Since(start)

	rec := types.RunRecord{
		Tool:      types.ToolFdec,
		Target:    cfg.Fdec.Input,
		Output:    fdec.OutputPath(cfg.Fdec),
		Status:    types.RunSucceeded,
		Elapsed:   elapsed,
		StartedAt: start,
	}
	if err != nil {
		rec.Status = types.RunFailed
		rec.Error = err.Error()
	} else {
		rec.Items = len(res.Declarations)
	}
	recordRun(cmd.Context(), cfg.History, rec)

	if err != nil {
		return err
	}
	fmt.Fprintf(out, "= Done! ( %.3fs )\n", elapsed.Seconds())
	return nil
}
