// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/ledger"
	"github.com/pdiddy/pdftext/internal/pdftext"
	"github.com/pdiddy/pdftext/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract SOURCE [DESTINATION]",
	Short: "Extract the text of one PDF",
	Long: `Extract reads every page of SOURCE and writes the page-marked text to
DESTINATION, replacing any existing file. Without DESTINATION the text is
printed to stdout and status lines go to stderr.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	job := types.Job{Source: args[0]}
	if len(args) == 2 {
		job.Destination = args[1]
	}
	job.Name, _ = cmd.Flags().GetString("name")

	// Keep stdout clean for the text itself when there is no destination.
	var status io.Writer = cmd.OutOrStdout()
	if job.Destination == "" {
		status = cmd.ErrOrStderr()
	}

	noRecord, _ := cmd.Flags().GetBool("no-record")
	var rec convert.Recorder
	if cfg.Record && !noRecord {
		l, err := ledger.Open(cfg.LedgerPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: run ledger unavailable: %v\n", err)
		} else {
			defer l.Close()
			rec = l
		}
	}

	ex := pdftext.NewExtractor(pdftext.PDFOpener{}, status)
	res := convert.RunJob(cmd.Context(), ex, job, rec, status)
	if res.Err != nil {
		return res.Err
	}

	if job.Destination == "" {
		fmt.Fprint(cmd.OutOrStdout(), res.Text)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("name", "", "label recorded in the run ledger (default: source file name)")
	extractCmd.Flags().Bool("no-record", false, "do not write this run to the ledger")

	rootCmd.AddCommand(extractCmd)
}
