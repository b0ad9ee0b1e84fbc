package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/layout"
	"github.com/dgallion1/infographic/internal/settings"
)

// exportFlags pick the encoding and destination.
type exportFlags struct {
	format string
	out    string
	scale  float64
	look   lookFlags
}

func (f *exportFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", "png", "Output format: png, jpeg, svg or html")
	fs.StringVarP(&f.out, "out", "o", "", `Output file or directory; "-" writes to stdout (default: a timestamped file in the current directory)`)
	fs.Float64Var(&f.scale, "scale", export.DefaultScale, "Pixel density of raster exports")
	f.look.register(cmd)
}

// export renders doc with the flags and writes the encoded result.
func (f *exportFlags) export(cmd *cobra.Command, doc *document.Document) error {
	format, err := export.ParseFormat(f.format)
	if err != nil {
		return err
	}
	style, err := f.look.style()
	if err != nil {
		return err
	}
	sc, err := layout.Render(doc, style, f.look.kind(), f.look.options())
	if err != nil {
		return err
	}

	cfg := config.Load()
	opts := export.Options{Scale: f.scale, Brand: cfg.BrandName, Theme: loadSettings(cfg).Theme()}
	data, name, err := export.NewExporter(opts).Export(sc, format, time.Now())
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), f.out, name, format, data)
}

// writeOutput sends data to stdout for "-", into a directory when out names
// one, or to the file out. An empty out writes name into the current
// directory.
func writeOutput(stdout io.Writer, out, name string, format export.Format, data []byte) error {
	if out == "-" {
		if binary(format) && isTerminal(stdout) {
			return fmt.Errorf("refusing to write %s data to a terminal; use --out", format.Label())
		}
		_, err := stdout.Write(data)
		return err
	}

	dir, file := ".", name
	if out != "" {
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			dir = out
		} else {
			dir, file = filepath.Dir(out), filepath.Base(out)
		}
	}
	path, err := export.WriteFile(dir, file, data)
	if err != nil {
		return err
	}
	log.Info("exported", "path", path, "format", format, "bytes", len(data))
	fmt.Fprintln(stdout, path)
	return nil
}

func binary(f export.Format) bool {
	return f == export.PNG || f == export.JPEG
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func settingsStore(cfg config.Config) *settings.FileStore {
	if cfg.SettingsPath != "" {
		return settings.NewFileStore(cfg.SettingsPath)
	}
	return settings.NewFileStore(settings.DefaultPath())
}

// loadSettings never fails; unreadable settings fall back to the defaults.
func loadSettings(cfg config.Config) settings.Settings {
	s, err := settingsStore(cfg).Load()
	if err != nil {
		log.Warn("load settings", "error", err)
	}
	return s
}
