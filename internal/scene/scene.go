// Package scene is the renderer-neutral visual tree produced by layouts and
// consumed by exporters. Coordinates are logical pixels with the origin at
// the top-left of the scene.
package scene

import (
	"image/color"
	"math"
	"time"

	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/typeface"
)

// Rect is an axis-aligned frame.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Union returns the smallest rect containing r and o. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.MaxX(), o.MaxX()), math.Max(r.MaxY(), o.MaxY())
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Paint is a solid color or, when To is set, a linear gradient from From to
// To along the given angle (0 = left to right, 90 = top to bottom).
type Paint struct {
	From     color.NRGBA
	To       *color.NRGBA
	AngleDeg float64
}

func Solid(c color.NRGBA) Paint { return Paint{From: c} }

func Gradient(from, to color.NRGBA, angleDeg float64) Paint {
	return Paint{From: from, To: &to, AngleDeg: angleDeg}
}

func (p Paint) IsGradient() bool { return p.To != nil }

// Stroke describes an outline. Zero Width means no outline.
type Stroke struct {
	Color color.NRGBA
	Width float64
	Dash  []float64
}

// Side selects one edge of a box.
type Side int

const (
	Left Side = iota
	Top
	Right
	Bottom
)

// EdgeAccent is a thick colored border on one side of a box.
type EdgeAccent struct {
	Side  Side
	Width float64
	Color color.NRGBA
}

// Shadow is a soft drop shadow under a box.
type Shadow struct {
	OffsetY float64
	Blur    float64
	Color   color.NRGBA
}

// Role tags elements for exporters and tests.
type Role string

const (
	RoleContainer  Role = "container"
	RoleHeader     Role = "header"
	RoleTitle      Role = "title"
	RoleSubtitle   Role = "subtitle"
	RoleStep       Role = "step"
	RoleStepTitle  Role = "step-title"
	RoleStepBody   Role = "step-description"
	RoleBadge      Role = "badge"
	RoleIcon       Role = "icon"
	RoleConnector  Role = "connector"
	RoleHub        Role = "hub"
	RoleDecoration Role = "decoration"
	RoleLabel      Role = "label"
)

// Element is one drawable node. Opacity fields multiply the element's
// colors; zero means opaque.
type Element interface {
	Bounds() Rect
	element()
}

type Box struct {
	Frame   Rect
	Radius  float64
	Fill    Paint
	Opacity float64
	Stroke  Stroke
	Accent  *EdgeAccent
	Shadow  *Shadow
	Role    Role
}

type Circle struct {
	CX, CY, R float64
	Fill      *Paint
	Stroke    Stroke
	Opacity   float64
	Role      Role
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Stroke
	Opacity        float64
	Role           Role
}

// Anchor is the horizontal alignment of text relative to X.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Text is a block of wrapped lines. Y is the baseline of the first line.
// Lines concatenate to the original string.
type Text struct {
	X, Y       float64
	Lines      []string
	Style      typeface.Style
	Size       float64
	LineHeight float64
	Color      color.NRGBA
	Anchor     Anchor
	Tracking   float64
	Role       Role
}

// Content returns the original text.
func (t *Text) Content() string {
	n := 0
	for _, l := range t.Lines {
		n += len(l)
	}
	b := make([]byte, 0, n)
	for _, l := range t.Lines {
		b = append(b, l...)
	}
	return string(b)
}

type Icon struct {
	ID      icon.ID
	Frame   Rect
	Color   color.NRGBA
	Opacity float64
	Role    Role
}

// Group collects the elements of one logical unit. Step groups carry their
// index, the accent they were drawn with, and the original title and
// description so exporters can emit them verbatim.
type Group struct {
	Role        Role
	StepIndex   int
	StepID      string
	Accent      color.NRGBA
	Delay       time.Duration
	Title       string
	Description string
	Children    []Element
}

func (*Box) element()    {}
func (*Circle) element() {}
func (*Line) element()   {}
func (*Text) element()   {}
func (*Icon) element()   {}
func (*Group) element()  {}

func (b *Box) Bounds() Rect { return b.Frame }

func (c *Circle) Bounds() Rect {
	r := c.R + c.Stroke.Width/2
	return Rect{c.CX - r, c.CY - r, 2 * r, 2 * r}
}

func (l *Line) Bounds() Rect {
	x0, y0 := math.Min(l.X1, l.X2), math.Min(l.Y1, l.Y2)
	return Rect{x0, y0, math.Abs(l.X2 - l.X1), math.Abs(l.Y2 - l.Y1)}
}

func (t *Text) Bounds() Rect {
	var w float64
	for _, l := range t.Lines {
		if lw := typeface.Measure(t.Style, t.Size, typeface.Visible(l)); lw > w {
			w = lw
		}
	}
	x := t.X
	switch t.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	top := t.Y - t.Size
	return Rect{x, top, w, float64(len(t.Lines)) * t.LineHeight}
}

func (i *Icon) Bounds() Rect { return i.Frame }

func (g *Group) Bounds() Rect {
	var r Rect
	for _, c := range g.Children {
		r = r.Union(c.Bounds())
	}
	return r
}

// Add appends children and returns g for chaining.
func (g *Group) Add(els ...Element) *Group {
	g.Children = append(g.Children, els...)
	return g
}

// EffectiveOpacity treats an unset (zero) opacity as fully opaque.
func EffectiveOpacity(o float64) float64 {
	if o <= 0 || o > 1 {
		return 1
	}
	return o
}

// Layout identifies the arrangement a scene was built with.
type Layout string

// Scene is a complete rendered infographic.
type Scene struct {
	Width      float64
	Height     float64
	Background color.NRGBA
	Layout     Layout
	Elements   []Element
}

// Walk visits every element depth-first in paint order. Returning false from
// fn skips a group's children.
func (s *Scene) Walk(fn func(Element) bool) {
	var walk func([]Element)
	walk = func(els []Element) {
		for _, e := range els {
			if !fn(e) {
				continue
			}
			if g, ok := e.(*Group); ok {
				walk(g.Children)
			}
		}
	}
	walk(s.Elements)
}

// Steps returns the step groups in paint order.
func (s *Scene) Steps() []*Group {
	var out []*Group
	s.Walk(func(e Element) bool {
		if g, ok := e.(*Group); ok && g.Role == RoleStep {
			out = append(out, g)
			return false
		}
		return true
	})
	return out
}

// Texts returns every text element with the given role.
func (s *Scene) Texts(role Role) []*Text {
	var out []*Text
	s.Walk(func(e Element) bool {
		if t, ok := e.(*Text); ok && t.Role == role {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Bounds is the union of all element bounds.
func (s *Scene) Bounds() Rect {
	var r Rect
	for _, e := range s.Elements {
		r = r.Union(e.Bounds())
	}
	return r
}

// Fit grows the scene so that every element plus padding is inside it.
// Content is never clipped.
func (s *Scene) Fit(pad float64) {
	b := s.Bounds()
	if w := b.MaxX() + pad; w > s.Width {
		s.Width = math.Ceil(w)
	}
	if h := b.MaxY() + pad; h > s.Height {
		s.Height = math.Ceil(h)
	}
}
