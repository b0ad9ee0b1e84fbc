package layout

import (
	"image/color"
	"strconv"
	"time"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// Line-height multipliers.
const (
	leadingTight   = 1.25
	leadingSnug    = 1.375
	leadingNormal  = 1.5
	leadingRelaxed = 1.625
)

// Entrance delay per step position.
const staggerStep = 100 * time.Millisecond

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// frame carries the per-render state shared by all arrangements.
type frame struct {
	doc      *document.Document
	pal      theme.Palette
	viewport float64
	sm       bool
	md       bool
	lg       bool
}

func newFrame(doc *document.Document, style theme.Style, opts Options) *frame {
	vp := opts.viewport()
	return &frame{
		doc:      doc,
		pal:      theme.Resolve(style),
		viewport: vp,
		sm:       vp >= BreakpointSM,
		md:       vp >= BreakpointMD,
		lg:       vp >= BreakpointLG,
	}
}

// when returns a if cond holds, otherwise b.
func when(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// text wraps s into width and places its top edge at top. For AnchorMiddle x
// is the center, for AnchorEnd the right edge. Empty input yields a text with
// no lines and zero height.
func (f *frame) text(x, top, width float64, s string, style typeface.Style, size, leading float64, c color.NRGBA, anchor scene.Anchor, role scene.Role) (*scene.Text, float64) {
	blk := typeface.Layout(style, size, s, width, leading)
	m := typeface.FaceMetrics(style, size)
	baseline := top + (blk.LineHeight-m.Height)/2 + m.Ascent
	return &scene.Text{
		X:          x,
		Y:          baseline,
		Lines:      blk.Lines,
		Style:      style,
		Size:       size,
		LineHeight: blk.LineHeight,
		Color:      c,
		Anchor:     anchor,
		Role:       role,
	}, blk.Height()
}

// label is single-line centered text inside a box of height h at (cx, top).
func label(cx, top, h float64, s string, style typeface.Style, size float64, c color.NRGBA, tracking float64, role scene.Role) *scene.Text {
	m := typeface.FaceMetrics(style, size)
	return &scene.Text{
		X:          cx,
		Y:          top + (h-m.Ascent-m.Descent)/2 + m.Ascent,
		Lines:      []string{s},
		Style:      style,
		Size:       size,
		LineHeight: size * leadingNormal,
		Color:      c,
		Anchor:     scene.AnchorMiddle,
		Tracking:   tracking,
		Role:       role,
	}
}

func labelWidth(s string, style typeface.Style, size, tracking float64) float64 {
	n := 0
	for range s {
		n++
	}
	return typeface.Measure(style, size, s) + tracking*float64(n)
}

// header lays out the title, optional subtitle and returns the elements and
// the bottom edge. cx is the horizontal center.
func (f *frame) header(cx, top, width, titleSize, subtitleSize, subtitleGap float64) (*scene.Group, float64) {
	g := &scene.Group{Role: scene.RoleHeader}
	t, h := f.text(cx, top, width, f.doc.Title, typeface.Regular, titleSize, 1.2, f.pal.Title, scene.AnchorMiddle, scene.RoleTitle)
	g.Add(t)
	y := top + h
	if f.doc.Subtitle != "" {
		y += subtitleGap
		st, sh := f.text(cx, y, width, f.doc.Subtitle, typeface.Italic, subtitleSize, leadingNormal, f.pal.Subtitle, scene.AnchorMiddle, scene.RoleSubtitle)
		g.Add(st)
		y += sh
	}
	return g, y
}

// step starts the group for step i.
func (f *frame) step(i int, delay time.Duration) *scene.Group {
	st := f.doc.Steps[i]
	return &scene.Group{
		Role:        scene.RoleStep,
		StepIndex:   i,
		StepID:      st.ID,
		Accent:      f.pal.StepAccent(i),
		Delay:       time.Duration(i) * delay,
		Title:       st.Title,
		Description: st.Description,
	}
}

// position is the 1-based badge label for step i. Badges always number by
// position, whatever the step's own number says.
func position(i int) string {
	return strconv.Itoa(i + 1)
}

func paddedPosition(i int) string {
	if i+1 < 10 {
		return "0" + position(i)
	}
	return position(i)
}

func (f *frame) borderStroke() scene.Stroke {
	b := f.pal.Border
	if b.None() {
		return scene.Stroke{}
	}
	s := scene.Stroke{Color: b.Color, Width: b.Width}
	if b.Dashed {
		s.Dash = []float64{4, 3}
	}
	return s
}

func (f *frame) cardShadow() *scene.Shadow {
	if f.pal.DarkBackground {
		return &scene.Shadow{OffsetY: 20, Blur: 40, Color: color.NRGBA{A: 0x66}}
	}
	return &scene.Shadow{OffsetY: 20, Blur: 40, Color: color.NRGBA{R: 26, G: 38, B: 51, A: 0x1f}}
}

// card is an accent-filled step card with the resolved radius and border.
func (f *frame) card(r scene.Rect, bordered bool) *scene.Box {
	b := &scene.Box{
		Frame:  r,
		Radius: f.pal.Radius,
		Fill:   scene.Solid(f.pal.CardFill),
		Shadow: f.cardShadow(),
		Role:   scene.RoleStep,
	}
	if bordered {
		b.Stroke = f.borderStroke()
	}
	return b
}

// badge is a filled square or round marker with a centered label.
func badge(r scene.Rect, radius float64, fill color.NRGBA, text string, size float64, c color.NRGBA) []scene.Element {
	return []scene.Element{
		&scene.Box{Frame: r, Radius: radius, Fill: scene.Solid(fill), Role: scene.RoleBadge},
		label(r.X+r.W/2, r.Y, r.H, text, typeface.Bold, size, c, 0, scene.RoleBadge),
	}
}

// iconWell is a tinted well with a glyph centered in it.
func iconWell(r scene.Rect, radius float64, well color.NRGBA, id icon.ID, iconSize float64, c color.NRGBA) []scene.Element {
	return []scene.Element{
		&scene.Box{Frame: r, Radius: radius, Fill: scene.Solid(well), Role: scene.RoleIcon},
		glyph(r.X+r.W/2, r.Y+r.H/2, id, iconSize, c),
	}
}

func glyph(cx, cy float64, id icon.ID, size float64, c color.NRGBA) *scene.Icon {
	return &scene.Icon{
		ID:    id,
		Frame: scene.Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size},
		Color: c,
		Role:  scene.RoleIcon,
	}
}

// container is the outer surface; it is prepended once the height is known.
func (f *frame) container(w, h float64, bordered bool) *scene.Box {
	b := &scene.Box{
		Frame:  scene.Rect{W: w, H: h},
		Radius: f.pal.Radius,
		Fill:   scene.Solid(f.pal.Background),
		Role:   scene.RoleContainer,
	}
	if bordered {
		b.Stroke = f.borderStroke()
	}
	return b
}

// overlay is the faint decorative wash over the container.
func (f *frame) overlay(w, h float64, from, to color.NRGBA, angle float64) *scene.Box {
	return &scene.Box{
		Frame:   scene.Rect{W: w, H: h},
		Radius:  f.pal.Radius,
		Fill:    scene.Gradient(from, to, angle),
		Opacity: 0.02,
		Role:    scene.RoleDecoration,
	}
}

// finish assembles the scene, growing it to fit any overflow.
func (f *frame) finish(kind Kind, w, h float64, bordered bool, decoration *scene.Box, els ...scene.Element) *scene.Scene {
	s := &scene.Scene{
		Width:      w,
		Height:     h,
		Background: f.pal.Background,
		Layout:     scene.Layout(kind),
	}
	s.Elements = append(s.Elements, f.container(w, h, bordered))
	if decoration != nil {
		s.Elements = append(s.Elements, decoration)
	}
	s.Elements = append(s.Elements, els...)
	s.Fit(0)
	if s.Width != w || s.Height != h {
		c := s.Elements[0].(*scene.Box)
		c.Frame.W, c.Frame.H = s.Width, s.Height
		if decoration != nil {
			decoration.Frame.W, decoration.Frame.H = s.Width, s.Height
		}
	}
	return s
}

func steps(groups []*scene.Group) []scene.Element {
	out := make([]scene.Element, len(groups))
	for i, g := range groups {
		out[i] = g
	}
	return out
}
