// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/contact-finder/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List reports recorded in the run ledger",
	Long: `History reads the SQLite run ledger written by find --ledger and lists the
most recent reports, newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().String("ledger", "", "SQLite ledger file (default from config)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("ledger")
	if path == "" {
		path = cfg.Ledger.Path
	}
	if path == "" {
		return fmt.Errorf("no ledger configured: pass --ledger or set ledger.path")
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := l.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	formatRuns(runs, cmd.OutOrStdout())
	return nil
}

// formatRuns writes runs as a human-readable table to w.
func formatRuns(runs []ledger.Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%-4s  %-16s  %-24s  %-16s  %-9s  %s\n", "ID", "Date", "Company", "Location", "Contacts", "File")
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d  %-16s  %-24s  %-16s  %3d/%-5d  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(r.Company, 24), truncate(r.Location, 16),
			r.Written, r.Requested, r.Path)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
