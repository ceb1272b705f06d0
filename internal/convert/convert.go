// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs batches of PDF-to-text extraction jobs, printing
// per-job progress and a summary, and recording each attempt.
package convert

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pdftext/internal/pdftext"
	"github.com/pdiddy/pdftext/pkg/types"
)

// Extractor extracts the text of one PDF. *pdftext.Extractor implements it.
type Extractor interface {
	ExtractDocument(source, destination string) (pdftext.Extraction, error)
}

// Recorder persists the outcome of each extraction. *ledger.Ledger
// implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.ExtractionRecord) error
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Extracted int
	Failed    int
}

// Total returns the number of jobs that were attempted.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any job failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// JobResult is the outcome of one job: the extracted text (empty on
// failure), the record written to the ledger, and the extraction error.
type JobResult struct {
	Text   string
	Record types.ExtractionRecord
	Err    error
}

// OK reports whether the extraction succeeded.
func (r JobResult) OK() bool {
	return r.Record.Status == types.ExtractionDone
}

// now is replaced in tests.
var now = time.Now

// RunJob extracts a single job and, when rec is non-nil, records the
// attempt.
func RunJob(ctx context.Context, ex Extractor, job types.Job, rec Recorder, w io.Writer) JobResult {
	start := now()
	res, err := ex.ExtractDocument(job.Source, job.Destination)

	record := types.ExtractionRecord{
		Name:        job.Label(),
		Source:      job.Source,
		Destination: job.Destination,
		Status:      types.ExtractionDone,
		Pages:       res.Pages,
		Bytes:       len(res.Text),
		StartedAt:   start.UTC(),
		Duration:    now().Sub(start),
	}
	if err != nil {
		record.Status = types.ExtractionFailed
		record.Error = err.Error()
	}

	if rec != nil {
		if err := rec.Record(ctx, record); err != nil {
			fmt.Fprintf(w, "warning: could not record %s: %v\n", job.Label(), err)
		}
	}
	return JobResult{Text: res.Text, Record: record, Err: err}
}

// RunBatch processes jobs in order. A failed job never stops the jobs after
// it; only cancellation of ctx does. The completion message and summary are
// always printed.
func RunBatch(ctx context.Context, ex Extractor, jobs []types.Job, rec Recorder, w io.Writer) BatchResult {
	var result BatchResult
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "\nstopped: %v (%d job(s) not started)\n", err, len(jobs)-i)
			break
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Extracting %s...\n", job.Label())

		if RunJob(ctx, ex, job, rec, w).OK() {
			result.Extracted++
		} else {
			result.Failed++
		}
	}

	fmt.Fprintln(w, "\nExtraction complete.")
	fmt.Fprintf(w, "Batch summary: %d extracted, %d failed (total: %d)\n",
		result.Extracted, result.Failed, result.Total())
	return result
}
