// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// Document is an open PDF whose pages can be read as plain text.
type Document interface {
	// NumPage returns the number of pages in the document.
	NumPage() int

	// PageText returns the plain text of page i, where 0 <= i < NumPage().
	PageText(i int) (string, error)

	// Close releases the underlying file.
	Close() error
}

// Opener opens a PDF document by path.
type Opener interface {
	Open(path string) (Document, error)
}

// PDFOpener opens documents with github.com/ledongthuc/pdf.
type PDFOpener struct{}

// Open opens the PDF at path. Parser panics on malformed input are returned
// as errors, and the file is closed whenever Open fails.
func (PDFOpener) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	r, err := parseReader(f, fi.Size(), pdf.NewReader)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pdfDocument{file: f, reader: r}, nil
}

// parseReader runs parse over f and closes f if parse fails or panics.
func parseReader(f *os.File, size int64, parse func(io.ReaderAt, int64) (*pdf.Reader, error)) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r = nil
			err = fmt.Errorf("%v", p)
		}
		if err != nil {
			f.Close()
		}
	}()
	return parse(f, size)
}

type pdfDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *pdfDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: %v", i+1, r)
		}
	}()

	// The reader numbers pages from 1.
	p := d.reader.Page(i + 1)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
