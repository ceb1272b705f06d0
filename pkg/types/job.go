// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
	"time"
)

// ExtractionStatus indicates the outcome of a single extraction attempt.
type ExtractionStatus string

const (
	ExtractionDone   ExtractionStatus = "extracted"
	ExtractionFailed ExtractionStatus = "failed"
)

// Job names one PDF to extract and, optionally, where to save its text.
type Job struct {
	// Name is a human-readable label used in progress output. When empty,
	// the source file name is used.
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`

	// Source is the path of the PDF document.
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// Destination is the path of the text file to write. An empty
	// destination means the text is only returned, not saved.
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty" mapstructure:"destination"`
}

// Label returns the job name, falling back to the source file name
// without its extension.
func (j Job) Label() string {
	if j.Name != "" {
		return j.Name
	}
	base := filepath.Base(j.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtractionRecord is one entry in the run ledger.
type ExtractionRecord struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Source      string           `json:"source"`
	Destination string           `json:"destination,omitempty"`
	Status      ExtractionStatus `json:"status"`

	// Pages is the document page count; zero when the document never opened.
	Pages int `json:"pages"`

	// Bytes is the length of the extracted text in bytes.
	Bytes int `json:"bytes"`

	// Error holds the failure text for failed extractions.
	Error string `json:"error,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// DefaultJobs returns the two FMVSS documents the tool was first written
// to convert. They are used when neither a job file nor configured jobs
// are available.
func DefaultJobs() []Job {
	return []Job{
		{
			Name:        "FMVSS 213a Side Impact",
			Source:      "/workspace/projects/assets/Final-rule-FMVSS-213a-side-impact-child-restraint-systems-web (1).pdf",
			Destination: "/workspace/projects/fmvss_213a_side_impact.txt",
		},
		{
			Name:        "FMVSS 213",
			Source:      "/workspace/projects/assets/TP-213-11-10272023 213.pdf",
			Destination: "/workspace/projects/fmvss_213.txt",
		},
	}
}
