// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdftext CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/pdftext"
	"github.com/pdiddy/pdftext/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Run without arguments it extracts the
// configured batch, like "pdftext batch".
var rootCmd = &cobra.Command{
	Use:   "pdftext",
	Short: "Extract page-marked plain text from PDF documents",
	Long: `pdftext extracts the text of PDF documents page by page, prefixing each
page with a "=== Page N ===" marker, and saves it as UTF-8 text files.

Run without arguments, pdftext extracts every job in the configured batch
(see "pdftext batch"). Use "pdftext extract" for a single document and
"pdftext history" to list past runs.`,
	Args:          cobra.NoArgs,
	RunE:          runBatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdftext.yaml or ~/.config/pdftext/pdftext.yaml)")
	addBatchFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftext"))
		}
	}

	viper.SetDefault("ledger", types.DefaultLedgerPath)
	viper.SetDefault("record", true)

	viper.SetEnvPrefix("PDFTEXT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged file, environment, and default settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints err unless the extractor has already reported it.
func reportError(w io.Writer, err error) {
	if errors.Is(err, pdftext.ErrExtraction) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
