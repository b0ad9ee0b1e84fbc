// Package export encodes scenes as PNG, JPEG, SVG or a standalone HTML page.
// Every encoder works in memory; a failed export never leaves partial output.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	SVG  Format = "svg"
	HTML Format = "html"
)

// Formats lists the supported encodings.
func Formats() []Format {
	return []Format{PNG, JPEG, SVG, HTML}
}

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	case "html", "htm":
		return HTML, nil
	}
	return "", apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, fmt.Sprintf("unsupported export format %q", s))
}

// Ext is the file extension without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// Label is the upper-case name used in user messages.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	case HTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

const (
	DefaultScale       = 2
	DefaultJPEGQuality = 98
)

// Options control encoding. Zero values take the defaults.
type Options struct {
	Scale       float64
	JPEGQuality int
	// Theme styles the page chrome of HTML exports.
	Theme theme.Theme
	Brand string
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Brand == "" {
		o.Brand = theme.BrandName
	}
	return o
}

// Encode renders s in the given format. The whole result is produced in
// memory; any failure, including empty output, is ExportFailed.
func Encode(s *scene.Scene, format Format, opts Options) ([]byte, error) {
	if s == nil {
		return nil, apperr.New(apperr.ExportFailed, apperr.CodeExportFailed, apperr.MsgNothingToExport)
	}
	opts = opts.withDefaults()

	var buf bytes.Buffer
	var err error
	switch format {
	case SVG:
		err = writeSVG(&buf, s)
	case PNG, JPEG:
		err = writeRaster(&buf, s, format, opts)
	case HTML:
		err = writeHTML(&buf, s, opts)
	default:
		return nil, apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, apperr.Export(format.Label(), err)
	}
	if buf.Len() == 0 {
		return nil, apperr.Export(format.Label(), fmt.Errorf("encoder produced no output"))
	}
	return buf.Bytes(), nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename is "<brand>-Infographic-<unix-ms>.<ext>".
func Filename(brand string, format Format, at time.Time) string {
	brand = strings.Trim(unsafeFilename.ReplaceAllString(brand, "-"), "-")
	if brand == "" {
		brand = theme.BrandName
	}
	return brand + "-Infographic-" + strconv.FormatInt(at.UnixMilli(), 10) + "." + format.Ext()
}

// WriteFile stores data as dir/name through a temporary file and a rename so
// readers never observe a partial file.
func WriteFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}

// Exporter allows one export at a time. A second call while one is running
// fails with Busy instead of queueing.
type Exporter struct {
	opts    Options
	running atomic.Bool
}

func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export encodes s and returns the bytes with a suggested filename.
func (e *Exporter) Export(s *scene.Scene, format Format, now time.Time) ([]byte, string, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, "", apperr.New(apperr.Busy, apperr.CodeExportInProgress, apperr.MsgExportBusy)
	}
	defer e.running.Store(false)

	data, err := Encode(s, format, e.opts)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(e.opts.withDefaults().Brand, format, now), nil
}
