// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts the plain text of a PDF document page by page,
// prefixing each page with a "=== Page N ===" marker, and optionally saves
// the result as a UTF-8 text file.
package pdftext

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ErrExtraction is the single error class returned by the Extractor. Every
// failure (open, page read, write) wraps it.
var ErrExtraction = errors.New("extraction failed")

// pageSpacer follows each page's text.
const pageSpacer = "\n\n"

// PageMarker returns the marker line written before page n (1-based).
func PageMarker(n int) string {
	return fmt.Sprintf("=== Page %d ===\n", n)
}

// Extraction is the result of a successful extraction.
type Extraction struct {
	// Text is the marker-delimited text of every page in order.
	Text string

	// Pages is the document page count.
	Pages int
}

// Extractor turns PDF documents into marker-delimited text. Status lines
// (save confirmations and failure diagnostics) are written to w.
type Extractor struct {
	opener Opener
	w      io.Writer
}

// NewExtractor returns an Extractor that opens documents with opener and
// reports status to w. A nil w discards status output.
func NewExtractor(opener Opener, w io.Writer) *Extractor {
	if w == nil {
		w = io.Discard
	}
	return &Extractor{opener: opener, w: w}
}

// Extract reads every page of the PDF at source and returns the joined text.
// When destination is non-empty the text is also written there, replacing
// any existing file. On failure Extract prints a diagnostic and returns an
// empty string with an error wrapping ErrExtraction.
func (e *Extractor) Extract(source, destination string) (string, error) {
	ex, err := e.ExtractDocument(source, destination)
	if err != nil {
		return "", err
	}
	return ex.Text, nil
}

// ExtractDocument is Extract returning the page count alongside the text.
// On failure Text is empty and Pages holds the page count if the document
// was opened.
func (e *Extractor) ExtractDocument(source, destination string) (Extraction, error) {
	ex, err := e.extract(source, destination)
	if err != nil {
		fmt.Fprintf(e.w, "extraction failed: %v\n", err)
		return Extraction{Pages: ex.Pages}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return ex, nil
}

func (e *Extractor) extract(source, destination string) (Extraction, error) {
	text, pages, err := e.readPages(source)
	if err != nil {
		return Extraction{Pages: pages}, err
	}

	text = validUTF8(text)

	if destination != "" {
		if err := writeText(destination, text); err != nil {
			return Extraction{Pages: pages}, err
		}
		fmt.Fprintf(e.w, "text saved to: %s\n", destination)
	}

	return Extraction{Text: text, Pages: pages}, nil
}

// readPages opens source, collects each page's marker and text, and closes
// the document before returning.
func (e *Extractor) readPages(source string) (text string, pages int, err error) {
	doc, err := e.opener.Open(source)
	if err != nil {
		return "", 0, fmt.Errorf("opening document: %w", err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil && err == nil {
			text = ""
			err = fmt.Errorf("closing %s: %w", source, cerr)
		}
	}()

	pages = doc.NumPage()

	var b strings.Builder
	for i := 0; i < pages; i++ {
		pt, err := doc.PageText(i)
		if err != nil {
			return "", pages, fmt.Errorf("reading %s page %d: %w", source, i+1, err)
		}
		b.WriteString(PageMarker(i + 1))
		b.WriteString(pt)
		b.WriteString(pageSpacer)
	}

	return b.String(), pages, nil
}

// validUTF8 replaces ill-formed UTF-8 with U+FFFD so that the returned text
// and the saved file hold the same bytes.
func validUTF8(s string) string {
	// The UTF-8 encoder substitutes ill-formed bytes and never fails.
	out, _ := unicode.UTF8.NewEncoder().String(s)
	return out
}

// writeText creates or truncates path and writes text to it.
func writeText(path, text string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := io.WriteString(f, text); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
