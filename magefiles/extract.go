//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and runs the configured batch. Set JOBS to a job
// file to extract a different list.
func Extract() error {
	mg.Deps(Build)

	args := []string{"batch"}
	if jobs := os.Getenv("JOBS"); jobs != "" {
		args = append(args, "--jobs", jobs)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
