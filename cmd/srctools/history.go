// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/srctools/internal/fileutil"
	"github.com/pdiddy/srctools/internal/history"
	"github.com/pdiddy/srctools/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the run history ledger (list, export)",
	Long: `History reads the local SQLite ledger in which fdec and wsolve record
each run: the target, outcome, item count and elapsed time.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatHistoryOutput(w io.Writer, runs []types.RunRecord, jsonOutput bool) error {
	if jsonOutput {
		if runs == nil {
			runs = []types.RunRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-6s  %-9s  %-30s  %6s  %s\n",
		"ID", "Started", "Tool", "Status", "Target", "Items", "Time")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		target := r.Target
		if len(target) > 30 {
			target = "..." + target[len(target)-27:]
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-6s  %-9s  %-30s  %6d  %.3fs\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Tool, r.Status,
			target, r.Items, r.Elapsed.Seconds())
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to YAML or JSON",
	Long: `Export writes every recorded run (or a filtered subset) as YAML or JSON,
to stdout or to the file named by --output.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	var buf bytes.Buffer
	switch format {
	case "yaml", "":
		err = store.ExportYAML(cmd.Context(), opts, &buf)
	case "json":
		err = store.ExportJSON(cmd.Context(), opts, &buf)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := fileutil.WriteFileAtomic(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) history.QueryOptions {
	tool, _ := cmd.Flags().GetString("tool")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.QueryOptions{
		Tool:       types.Tool(tool),
		Status:     types.RunStatus(status),
		MaxResults: limit,
	}
}

// recordRun appends rec to the ledger when history is enabled. Ledger
// errors are logged and never change the outcome of the run itself.
func recordRun(ctx context.Context, cfg types.HistoryConfig, rec types.RunRecord) {
	if !cfg.Enabled {
		return
	}
	store, err := history.NewStore(cfg)
	if err != nil {
		log.Warn("history unavailable", "err", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn("could not record run", "tool", rec.Tool, "err", err)
	}
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("tool", "", "filter by tool: fdec or wsolve")
		c.Flags().String("status", "", "filter by status: succeeded or failed")
	}

	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = history.max_results)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().StringP("output", "o", "", "file to write (default: stdout)")
	historyExportCmd.Flags().Int("limit", 0, "maximum runs to export (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
