// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

const defaultJobFile = "pdftext-jobs.yaml"

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Create and inspect batch job files",
}

var jobsInitCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Write a job file containing the default jobs",
	Long: `Init writes a YAML job file (default pdftext-jobs.yaml) listing the
built-in FMVSS documents. Edit it and pass it to "pdftext batch --jobs".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultJobFile
		if len(args) == 1 {
			path = args[0]
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := convert.WriteJobFile(path, types.DefaultJobs()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the jobs a batch run would extract",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		jobsFile, _ := cmd.Flags().GetString("jobs")
		jobs, err := resolveJobs(cfg, jobsFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, j := range jobs {
			dest := j.Destination
			if dest == "" {
				dest = "(not saved)"
			}
			fmt.Fprintf(out, "%d. %s\n   source:      %s\n   destination: %s\n", i+1, j.Label(), j.Source, dest)
		}
		return nil
	},
}

func init() {
	jobsInitCmd.Flags().Bool("force", false, "overwrite an existing job file")
	jobsListCmd.Flags().String("jobs", "", "YAML job file to list instead of the configured jobs")

	jobsCmd.AddCommand(jobsInitCmd)
	jobsCmd.AddCommand(jobsListCmd)
	rootCmd.AddCommand(jobsCmd)
}
