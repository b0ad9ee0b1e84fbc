// Package ingest reads uploaded files of several formats into a DocTree so
// their text can be condensed into a parse request.
package ingest

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/infographic/internal/doctree"
)

// Source converts the bytes of one file format into a DocTree.
type Source interface {
	Extract(data []byte, title string) (*doctree.DocTree, error)
}

// Options control extraction.
type Options struct {
	// MaxBytes rejects larger inputs. Zero means no limit.
	MaxBytes int64
	// PdftotextFallback runs the pdftotext binary when the PDF library fails.
	PdftotextFallback bool
}

var sources = map[string]func(Options) Source{
	".txt":      func(Options) Source { return textSource{} },
	".md":       func(Options) Source { return markdownSource{} },
	".markdown": func(Options) Source { return markdownSource{} },
	".csv":      func(Options) Source { return csvSource{} },
	".html":     func(Options) Source { return htmlSource{} },
	".htm":      func(Options) Source { return htmlSource{} },
	".pdf":      func(o Options) Source { return pdfSource{fallback: o.PdftotextFallback} },
	".docx":     func(Options) Source { return docxSource{} },
}

// ForFile returns the source for a filename's extension.
func ForFile(filename string, opts Options) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mk, ok := sources[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
	return mk(opts), nil
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	_, ok := sources[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extensions lists the supported extensions.
func Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".csv", ".html", ".htm", ".pdf", ".docx"}
}

// Title derives a document title from a filename: the base name without its
// extension.
func Title(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Read extracts r as the format named by filename's extension.
func Read(r io.Reader, filename string, opts Options) (*doctree.DocTree, error) {
	src, err := ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	if opts.MaxBytes > 0 {
		r = io.LimitReader(r, opts.MaxBytes+1)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if opts.MaxBytes > 0 && int64(buf.Len()) > opts.MaxBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", filename, opts.MaxBytes)
	}
	return src.Extract(buf.Bytes(), Title(filename))
}
