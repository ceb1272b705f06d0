// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/ledger"
	"github.com/pdiddy/pdftext/internal/pdftext"
	"github.com/pdiddy/pdftext/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every document in a job list",
	Long: `Batch extracts each job in order, printing progress before each document
and a summary at the end. A failed document never stops the ones after it.

Jobs come from --jobs when given, otherwise from the "jobs" list in the
config file, otherwise from the built-in FMVSS 213 and 213a documents.
Every attempt is recorded in the run ledger unless --no-record is set.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobsFile, _ := cmd.Flags().GetString("jobs")
	jobs, err := resolveJobs(cfg, jobsFile)
	if err != nil {
		return err
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

	out := cmd.OutOrStdout()
	ex := pdftext.NewExtractor(pdftext.PDFOpener{}, out)
	convert.RunBatch(cmd.Context(), ex, jobs, rec, out)
	return nil
}

// resolveJobs picks the job list: the job file when given, else the
// configured jobs, else the defaults.
func resolveJobs(cfg types.Config, jobsFile string) ([]types.Job, error) {
	if jobsFile != "" {
		return convert.ReadJobFile(jobsFile)
	}
	return cfg.BatchJobs(), nil
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("jobs", "", "YAML job file listing source and destination paths")
	cmd.Flags().Bool("no-record", false, "do not write this run to the ledger")
}

func init() {
	addBatchFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
