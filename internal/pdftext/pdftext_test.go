// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocument implements Document over an in-memory list of page texts.
type fakeDocument struct {
	pages    []string
	pageErrs map[int]error
	closeErr error
	closed   bool
	reads    []int
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) PageText(i int) (string, error) {
	if d.closed {
		return "", errors.New("document closed")
	}
	d.reads = append(d.reads, i)
	if err, ok := d.pageErrs[i]; ok {
		return "", err
	}
	return d.pages[i], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return d.closeErr
}

// fakeOpener hands out fakeDocuments by path.
type fakeOpener struct {
	docs map[string]*fakeDocument
}

func (o *fakeOpener) Open(path string) (Document, error) {
	doc, ok := o.docs[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file or directory", path)
	}
	return doc, nil
}

func newExtractor(docs map[string]*fakeDocument) (*Extractor, *bytes.Buffer) {
	var log bytes.Buffer
	return NewExtractor(&fakeOpener{docs: docs}, &log), &log
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{
			name:  "single page",
			pages: []string{"Hello"},
			want:  "=== Page 1 ===\nHello\n\n",
		},
		{
			name:  "no pages",
			pages: nil,
			want:  "",
		},
		{
			name:  "three pages in order",
			pages: []string{"first", "second", "third"},
			want: "=== Page 1 ===\nfirst\n\n" +
				"=== Page 2 ===\nsecond\n\n" +
				"=== Page 3 ===\nthird\n\n",
		},
		{
			name:  "empty page keeps its marker",
			pages: []string{"a", "", "c"},
			want:  "=== Page 1 ===\na\n\n=== Page 2 ===\n\n\n=== Page 3 ===\nc\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &fakeDocument{pages: tt.pages}
			ex, log := newExtractor(map[string]*fakeDocument{"doc.pdf": doc})

			got, err := ex.Extract("doc.pdf", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, doc.closed, "document should be closed")
			assert.Empty(t, log.String(), "no destination means no save confirmation")
		})
	}
}

var markerRe = regexp.MustCompile(`(?m)^=== Page (\d+) ===$`)

func TestExtractMarkersAscending(t *testing.T) {
	const n = 25
	pages := make([]string, n)
	for i := range pages {
		pages[i] = fmt.Sprintf("body of page %d", i+1)
	}
	doc := &fakeDocument{pages: pages}
	ex, _ := newExtractor(map[string]*fakeDocument{"big.pdf": doc})

	got, err := ex.Extract("big.pdf", "")
	require.NoError(t, err)

	matches := markerRe.FindAllStringSubmatch(got, -1)
	require.Len(t, matches, n)
	for i, m := range matches {
		num, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.Equal(t, i+1, num)
	}

	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, doc.reads, "pages must be read once each in ascending order")
}

func TestExtractDocumentPageCount(t *testing.T) {
	doc := &fakeDocument{pages: []string{"a", "b"}}
	ex, _ := newExtractor(map[string]*fakeDocument{"two.pdf": doc})

	got, err := ex.ExtractDocument("two.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, "=== Page 1 ===\na\n\n=== Page 2 ===\nb\n\n", got.Text)
}

func TestExtractWritesDestination(t *testing.T) {
	doc := &fakeDocument{pages: []string{"Grüße", "第二页"}}
	ex, log := newExtractor(map[string]*fakeDocument{"doc.pdf": doc})
	dest := filepath.Join(t.TempDir(), "doc.txt")

	got, err := ex.Extract("doc.pdf", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, got, string(data))
	assert.True(t, utf8.Valid(data))
	assert.Contains(t, log.String(), "text saved to: "+dest)
}

func TestExtractOverwritesDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(dest, []byte(strings.Repeat("stale content\n", 100)), 0o644))

	docs := map[string]*fakeDocument{"doc.pdf": {pages: []string{"Hello"}}}
	ex, _ := newExtractor(docs)

	first, err := ex.Extract("doc.pdf", dest)
	require.NoError(t, err)
	firstData, err := os.ReadFile(dest)
	require.NoError(t, err)

	docs["doc.pdf"] = &fakeDocument{pages: []string{"Hello"}}
	second, err := ex.Extract("doc.pdf", dest)
	require.NoError(t, err)
	secondData, err := os.ReadFile(dest)
	require.NoError(t, err)

	assert.Equal(t, "=== Page 1 ===\nHello\n\n", string(firstData))
	assert.Equal(t, firstData, secondData)
	assert.Equal(t, first, second)
}

func TestExtractFailures(t *testing.T) {
	pageErr := errors.New("corrupt content stream")

	tests := []struct {
		name       string
		source     string
		doc        *fakeDocument
		badDest    bool
		wantLog    string
		wantClosed bool
		wantPages  int
	}{
		{
			name:    "missing source",
			source:  "missing.pdf",
			wantLog: "extraction failed: opening document: open missing.pdf: no such file",
		},
		{
			name:       "page read error",
			source:     "doc.pdf",
			doc:        &fakeDocument{pages: []string{"ok", "bad", "never"}, pageErrs: map[int]error{1: pageErr}},
			wantLog:    "corrupt content stream",
			wantClosed: true,
			wantPages:  3,
		},
		{
			name:       "close error",
			source:     "doc.pdf",
			doc:        &fakeDocument{pages: []string{"ok"}, closeErr: errors.New("bad descriptor")},
			wantLog:    "closing doc.pdf",
			wantClosed: true,
			wantPages:  1,
		},
		{
			name:       "unwritable destination",
			source:     "doc.pdf",
			doc:        &fakeDocument{pages: []string{"ok"}},
			badDest:    true,
			wantLog:    "extraction failed: creating",
			wantClosed: true,
			wantPages:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := map[string]*fakeDocument{}
			if tt.doc != nil {
				docs[tt.source] = tt.doc
			}
			ex, log := newExtractor(docs)

			dest := ""
			if tt.badDest {
				dest = filepath.Join(t.TempDir(), "no-such-dir", "out.txt")
			}

			got, err := ex.ExtractDocument(tt.source, dest)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExtraction)
			assert.Empty(t, got.Text)
			assert.Equal(t, tt.wantPages, got.Pages)
			assert.Contains(t, log.String(), tt.wantLog)
			if tt.doc != nil {
				assert.Equal(t, tt.wantClosed, tt.doc.closed)
			}
			if tt.badDest {
				assert.NoFileExists(t, dest)
			}
		})
	}
}

func TestExtractOpenErrorNamesSourceOnce(t *testing.T) {
	ex, log := newExtractor(nil)

	_, err := ex.Extract("missing.pdf", "")
	require.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, 1, strings.Count(log.String(), "missing.pdf"))
	assert.Equal(t, 1, strings.Count(err.Error(), "missing.pdf"))
}

func TestValidUTF8(t *testing.T) {
	assert.Equal(t, "plain ascii", validUTF8("plain ascii"))
	assert.Equal(t, "Grüße", validUTF8("Grüße"))
	assert.Equal(t, "a\uFFFDb", validUTF8("a\xffb"))
	assert.Equal(t, "", validUTF8(""))
}

func TestExtractPageErrorStopsReading(t *testing.T) {
	doc := &fakeDocument{
		pages:    []string{"ok", "bad", "never"},
		pageErrs: map[int]error{1: errors.New("boom")},
	}
	ex, _ := newExtractor(map[string]*fakeDocument{"doc.pdf": doc})

	text, err := ex.Extract("doc.pdf", "")
	require.ErrorIs(t, err, ErrExtraction)
	assert.Empty(t, text)
	assert.Equal(t, []int{0, 1}, doc.reads)
}

func TestExtractFailureDoesNotAffectNextCall(t *testing.T) {
	ex, log := newExtractor(map[string]*fakeDocument{
		"good.pdf": {pages: []string{"fine"}},
	})

	_, err := ex.Extract("bad.pdf", "")
	require.ErrorIs(t, err, ErrExtraction)

	got, err := ex.Extract("good.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "=== Page 1 ===\nfine\n\n", got)
	assert.Equal(t, 1, strings.Count(log.String(), "extraction failed:"))
}

func TestExtractReplacesIllFormedUTF8(t *testing.T) {
	doc := &fakeDocument{pages: []string{"caf\xff"}}
	ex, _ := newExtractor(map[string]*fakeDocument{"doc.pdf": doc})
	dest := filepath.Join(t.TempDir(), "doc.txt")

	got, err := ex.Extract("doc.pdf", dest)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "caf\uFFFD")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, got, string(data))
}

func TestPageMarker(t *testing.T) {
	assert.Equal(t, "=== Page 1 ===\n", PageMarker(1))
	assert.Equal(t, "=== Page 120 ===\n", PageMarker(120))
}

func TestNewExtractorNilWriter(t *testing.T) {
	ex := NewExtractor(&fakeOpener{}, nil)
	_, err := ex.Extract("missing.pdf", "")
	assert.ErrorIs(t, err, ErrExtraction)
}
