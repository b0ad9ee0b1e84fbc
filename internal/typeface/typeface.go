// Package typeface measures and wraps text with the bundled Go fonts so that
// layout and raster export agree on line breaks.
package typeface

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Style selects a face within the family.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	default:
		return "regular"
	}
}

type faceKey struct {
	style Style
	size  float64
}

// faces are not safe for concurrent use, so every access goes through mu.
var (
	mu      sync.Mutex
	fonts   map[Style]*opentype.Font
	faces   = map[faceKey]font.Face{}
	loadErr error
	once    sync.Once
)

func load() {
	fonts = make(map[Style]*opentype.Font, 3)
	for style, ttf := range map[Style][]byte{
		Regular: goregular.TTF,
		Bold:    gobold.TTF,
		Italic:  goitalic.TTF,
	} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			loadErr = fmt.Errorf("parse %s font: %w", style, err)
			return
		}
		fonts[style] = f
	}
}

// faceLocked returns a cached face; mu must be held.
func faceLocked(style Style, size float64) (font.Face, error) {
	once.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	size = math.Round(size*4) / 4
	k := faceKey{style, size}
	if f, ok := faces[k]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fonts[style], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %s@%g: %w", style, size, err)
	}
	faces[k] = f
	return f, nil
}

// Use runs fn with exclusive access to the face for style at size (in pixels).
func Use(style Style, size float64, fn func(font.Face) error) error {
	mu.Lock()
	defer mu.Unlock()
	f, err := faceLocked(style, size)
	if err != nil {
		return err
	}
	return fn(f)
}

// Measure returns the advance width of s in pixels.
func Measure(style Style, size float64, s string) float64 {
	var w fixed.Int26_6
	_ = Use(style, size, func(f font.Face) error {
		w = font.MeasureString(f, s)
		return nil
	})
	return toFloat(w)
}

// Metrics are vertical font measurements in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

func FaceMetrics(style Style, size float64) Metrics {
	m := Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size * 1.2}
	_ = Use(style, size, func(f font.Face) error {
		fm := f.Metrics()
		m = Metrics{Ascent: toFloat(fm.Ascent), Descent: toFloat(fm.Descent), Height: toFloat(fm.Height)}
		return nil
	})
	return m
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
