// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/ledger"
	"github.com/pdiddy/pdftext/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past extractions from the run ledger",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return err
	}
	defer l.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	source, _ := cmd.Flags().GetString("source")

	var recs []types.ExtractionRecord
	if source != "" {
		recs, err = l.History(cmd.Context(), source, limit)
	} else {
		recs, err = l.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), recs, jsonOutput)
}

func formatHistory(w io.Writer, recs []types.ExtractionRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No extractions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %5s  %9s  %8s  %s\n",
		"Started", "Status", "Pages", "Bytes", "Time", "Name")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range recs {
		name := r.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-9s  %5d  %9d  %8s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Pages, r.Bytes,
			r.Duration.Round(time.Millisecond), name)
		if r.Error != "" {
			fmt.Fprintf(w, "    %s\n", r.Error)
		}
	}

	fmt.Fprintf(w, "\n%d extractions\n", len(recs))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().String("source", "", "only show extractions of this PDF path")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}
