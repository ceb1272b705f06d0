// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultLedgerPath is the SQLite ledger location used when none is configured.
const DefaultLedgerPath = ".pdftext/ledger.db"

// Config holds the settings read from pdftext.yaml and PDFTEXT_* environment
// variables.
type Config struct {
	// Jobs lists the documents a batch run extracts. When empty the batch
	// falls back to DefaultJobs.
	Jobs []Job `json:"jobs" yaml:"jobs" mapstructure:"jobs"`

	// Ledger is the path of the SQLite run ledger.
	Ledger string `json:"ledger" yaml:"ledger" mapstructure:"ledger"`

	// Record controls whether batch runs write to the ledger (default true).
	Record bool `json:"record" yaml:"record" mapstructure:"record"`
}

// BatchJobs returns the configured jobs, or DefaultJobs when none are set.
func (c Config) BatchJobs() []Job {
	if len(c.Jobs) == 0 {
		return DefaultJobs()
	}
	return c.Jobs
}

// LedgerPath returns the configured ledger path or DefaultLedgerPath.
func (c Config) LedgerPath() string {
	if c.Ledger == "" {
		return DefaultLedgerPath
	}
	return c.Ledger
}
