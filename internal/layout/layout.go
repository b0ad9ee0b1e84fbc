// Package layout turns a document and a style into a scene using one of six
// fixed arrangements. Every renderer is a pure function of its inputs.
package layout

import (
	"math"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
)

// Kind identifies an arrangement.
type Kind string

const (
	VerticalCards    Kind = "vertical-cards"
	HorizontalSteps  Kind = "horizontal-steps"
	TimelineFlow     Kind = "timeline-flow"
	RadialProcess    Kind = "radial-process"
	CircularProgress Kind = "circular-progress"
	MultiColumn      Kind = "multi-column"
)

// Default is used when no kind, or an unknown one, is given.
const Default = VerticalCards

// Info describes a kind for pickers.
type Info struct {
	ID          Kind   `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var kinds = []Info{
	{VerticalCards, "Vertical Step by Step", "Deep narrative evolution"},
	{HorizontalSteps, "Horizontal Flow", "Linear structural progression"},
	{TimelineFlow, "Vertical Flow", "Empowered historical journey"},
	{RadialProcess, "Radial Process", "Ideas orbiting a central hub"},
	{CircularProgress, "Circular Progress", "A continuous cycle of stages"},
	{MultiColumn, "Columns", "Complex data empowered"},
}

// Kinds lists every arrangement in display order.
func Kinds() []Info {
	return append([]Info(nil), kinds...)
}

func (k Kind) Valid() bool {
	for _, i := range kinds {
		if i.ID == k {
			return true
		}
	}
	return false
}

// ParseKind maps an identifier to a Kind, falling back to Default.
func ParseKind(s string) Kind {
	if k := Kind(s); k.Valid() {
		return k
	}
	return Default
}

// Responsive breakpoints in logical pixels.
const (
	BreakpointSM = 640
	BreakpointMD = 768
	BreakpointLG = 1024

	DefaultViewport = 1280
)

// Options are the render inputs that do not come from the document or style.
type Options struct {
	// Viewport is the available width. Zero means DefaultViewport.
	Viewport float64
}

func (o Options) viewport() float64 {
	if o.Viewport <= 0 {
		return DefaultViewport
	}
	return o.Viewport
}

// Renderer produces a scene for one arrangement.
type Renderer interface {
	Kind() Kind
	Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene
}

var registry = map[Kind]Renderer{
	VerticalCards:    verticalCards{},
	HorizontalSteps:  horizontalSteps{},
	TimelineFlow:     timelineFlow{},
	RadialProcess:    radialProcess{},
	CircularProgress: circularProgress{},
	MultiColumn:      multiColumn{},
}

// Select returns the renderer for k; unknown kinds get the default.
func Select(k Kind) Renderer {
	if r, ok := registry[k]; ok {
		return r
	}
	return registry[Default]
}

// Render validates doc and dispatches to the renderer for kind. Documents
// without steps never reach a renderer.
func Render(doc *document.Document, style theme.Style, kind Kind, opts Options) (*scene.Scene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return Select(kind).Render(doc, style.WithDefaults(), opts), nil
}

// NodeAngle is the angle of step index out of count around a circle: the
// first step sits at 12 o'clock and the rest follow clockwise. A count of
// zero or less yields 12 o'clock.
func NodeAngle(index, count int) float64 {
	if count <= 0 {
		return -math.Pi / 2
	}
	return 2*math.Pi*float64(index)/float64(count) - math.Pi/2
}

// NodePosition places step index on a circle of radius r around (cx, cy).
func NodePosition(cx, cy, r float64, index, count int) (x, y float64) {
	a := NodeAngle(index, count)
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}
