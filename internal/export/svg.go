package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

const (
	svgNS      = "http://www.w3.org/2000/svg"
	fontFamily = "Go, 'Helvetica Neue', Arial, sans-serif"
)

// Markup returns the scene as standalone SVG markup. This is the markup
// copied to the clipboard.
func Markup(s *scene.Scene) (string, error) {
	var b strings.Builder
	if err := writeSVG(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}

type svgWriter struct {
	defs    *etree.Element
	ids     map[string]string
	counter int
}

func writeSVG(w io.Writer, s *scene.Scene) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := buildSVG(s)
	doc.SetRoot(root)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func buildSVG(s *scene.Scene) *etree.Element {
	root := etree.NewElement("svg")
	root.CreateAttr("xmlns", svgNS)
	root.CreateAttr("width", num(s.Width))
	root.CreateAttr("height", num(s.Height))
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(s.Width), num(s.Height)))
	root.CreateAttr("data-layout", string(s.Layout))

	sw := &svgWriter{ids: map[string]string{}}
	sw.defs = root.CreateElement("defs")

	bg := root.CreateElement("rect")
	bg.CreateAttr("width", num(s.Width))
	bg.CreateAttr("height", num(s.Height))
	setColor(bg, "fill", s.Background)

	for _, e := range s.Elements {
		sw.element(root, e)
	}
	if len(sw.defs.ChildElements()) == 0 {
		root.RemoveChild(sw.defs)
	}
	return root
}

func (sw *svgWriter) id(prefix, key string, build func(id string) *etree.Element) string {
	if id, ok := sw.ids[prefix+key]; ok {
		return id
	}
	sw.counter++
	id := prefix + strconv.Itoa(sw.counter)
	sw.ids[prefix+key] = id
	sw.defs.AddChild(build(id))
	return id
}

func (sw *svgWriter) element(parent *etree.Element, e scene.Element) {
	switch e := e.(type) {
	case *scene.Group:
		sw.group(parent, e)
	case *scene.Box:
		sw.box(parent, e)
	case *scene.Circle:
		sw.circle(parent, e)
	case *scene.Line:
		sw.line(parent, e)
	case *scene.Text:
		sw.text(parent, e)
	case *scene.Icon:
		sw.icon(parent, e)
	}
}

func (sw *svgWriter) group(parent *etree.Element, g *scene.Group) {
	el := parent.CreateElement("g")
	el.CreateAttr("class", string(g.Role))
	if g.Role == scene.RoleStep {
		el.CreateAttr("data-step-index", strconv.Itoa(g.StepIndex))
		el.CreateAttr("data-step-id", g.StepID)
		el.CreateAttr("data-delay-ms", strconv.FormatInt(g.Delay.Milliseconds(), 10))
		el.CreateElement("title").SetText(g.Title)
		el.CreateElement("desc").SetText(g.Description)
	}
	for _, c := range g.Children {
		sw.element(el, c)
	}
}

func (sw *svgWriter) paint(el *etree.Element, attr string, p scene.Paint) {
	if !p.IsGradient() {
		setColor(el, attr, p.From)
		return
	}
	key := fmt.Sprintf("%v-%v-%g", p.From, *p.To, p.AngleDeg)
	id := sw.id("grad", key, func(id string) *etree.Element {
		g := etree.NewElement("linearGradient")
		g.CreateAttr("id", id)
		x1, y1, x2, y2 := gradientVector(p.AngleDeg)
		g.CreateAttr("x1", num(x1))
		g.CreateAttr("y1", num(y1))
		g.CreateAttr("x2", num(x2))
		g.CreateAttr("y2", num(y2))
		for i, c := range []color.NRGBA{p.From, *p.To} {
			stop := g.CreateElement("stop")
			stop.CreateAttr("offset", strconv.Itoa(i))
			stop.CreateAttr("stop-color", theme.Hex(c))
			if c.A != 0xff {
				stop.CreateAttr("stop-opacity", num(theme.Opacity(c)))
			}
		}
		return g
	})
	el.CreateAttr(attr, "url(#"+id+")")
}

// gradientVector maps an angle to objectBoundingBox endpoints.
func gradientVector(deg float64) (x1, y1, x2, y2 float64) {
	rad := deg * math.Pi / 180
	dx, dy := math.Cos(rad)/2, math.Sin(rad)/2
	return 0.5 - dx, 0.5 - dy, 0.5 + dx, 0.5 + dy
}

func (sw *svgWriter) shadow(sh *scene.Shadow) string {
	key := fmt.Sprintf("%g-%g-%v", sh.OffsetY, sh.Blur, sh.Color)
	return sw.id("shadow", key, func(id string) *etree.Element {
		f := etree.NewElement("filter")
		f.CreateAttr("id", id)
		f.CreateAttr("x", "-50%")
		f.CreateAttr("y", "-50%")
		f.CreateAttr("width", "200%")
		f.CreateAttr("height", "200%")
		d := f.CreateElement("feDropShadow")
		d.CreateAttr("dx", "0")
		d.CreateAttr("dy", num(sh.OffsetY))
		d.CreateAttr("stdDeviation", num(sh.Blur/2))
		d.CreateAttr("flood-color", theme.Hex(sh.Color))
		d.CreateAttr("flood-opacity", num(theme.Opacity(sh.Color)))
		return f
	})
}

func clampRadius(r float64, f scene.Rect) float64 {
	return math.Max(0, math.Min(r, math.Min(f.W, f.H)/2))
}

func rectAttrs(el *etree.Element, f scene.Rect, radius float64) {
	el.CreateAttr("x", num(f.X))
	el.CreateAttr("y", num(f.Y))
	el.CreateAttr("width", num(f.W))
	el.CreateAttr("height", num(f.H))
	if r := clampRadius(radius, f); r > 0 {
		el.CreateAttr("rx", num(r))
	}
}

func (sw *svgWriter) box(parent *etree.Element, b *scene.Box) {
	el := parent.CreateElement("rect")
	rectAttrs(el, b.Frame, b.Radius)
	sw.paint(el, "fill", b.Fill)
	setOpacity(el, b.Opacity)
	setStroke(el, b.Stroke)
	if b.Shadow != nil {
		el.CreateAttr("filter", "url(#"+sw.shadow(b.Shadow)+")")
	}
	if b.Role != "" {
		el.CreateAttr("class", string(b.Role))
	}

	if b.Accent == nil {
		return
	}
	sw.counter++
	clipID := "clip" + strconv.Itoa(sw.counter)
	clip := sw.defs.CreateElement("clipPath")
	clip.CreateAttr("id", clipID)
	rectAttrs(clip.CreateElement("rect"), b.Frame, b.Radius)

	acc := parent.CreateElement("rect")
	rectAttrs(acc, accentRect(b.Frame, b.Accent), 0)
	setColor(acc, "fill", b.Accent.Color)
	acc.CreateAttr("clip-path", "url(#"+clipID+")")
}

// accentRect is the strip an edge accent covers inside frame.
func accentRect(f scene.Rect, a *scene.EdgeAccent) scene.Rect {
	switch a.Side {
	case scene.Top:
		return scene.Rect{X: f.X, Y: f.Y, W: f.W, H: a.Width}
	case scene.Right:
		return scene.Rect{X: f.MaxX() - a.Width, Y: f.Y, W: a.Width, H: f.H}
	case scene.Bottom:
		return scene.Rect{X: f.X, Y: f.MaxY() - a.Width, W: f.W, H: a.Width}
	default:
		return scene.Rect{X: f.X, Y: f.Y, W: a.Width, H: f.H}
	}
}

func (sw *svgWriter) circle(parent *etree.Element, c *scene.Circle) {
	el := parent.CreateElement("circle")
	el.CreateAttr("cx", num(c.CX))
	el.CreateAttr("cy", num(c.CY))
	el.CreateAttr("r", num(c.R))
	if c.Fill != nil {
		sw.paint(el, "fill", *c.Fill)
	} else {
		el.CreateAttr("fill", "none")
	}
	setStroke(el, c.Stroke)
	setOpacity(el, c.Opacity)
}

func (sw *svgWriter) line(parent *etree.Element, l *scene.Line) {
	el := parent.CreateElement("line")
	el.CreateAttr("x1", num(l.X1))
	el.CreateAttr("y1", num(l.Y1))
	el.CreateAttr("x2", num(l.X2))
	el.CreateAttr("y2", num(l.Y2))
	setStroke(el, l.Stroke)
	setOpacity(el, l.Opacity)
}

func (sw *svgWriter) text(parent *etree.Element, t *scene.Text) {
	if len(t.Lines) == 0 {
		return
	}
	el := parent.CreateElement("text")
	el.CreateAttr("xml:space", "preserve")
	el.CreateAttr("x", num(t.X))
	el.CreateAttr("y", num(t.Y))
	el.CreateAttr("font-family", fontFamily)
	el.CreateAttr("font-size", num(t.Size))
	switch t.Style {
	case typeface.Bold:
		el.CreateAttr("font-weight", "700")
	case typeface.Italic:
		el.CreateAttr("font-style", "italic")
	}
	switch t.Anchor {
	case scene.AnchorMiddle:
		el.CreateAttr("text-anchor", "middle")
	case scene.AnchorEnd:
		el.CreateAttr("text-anchor", "end")
	}
	if t.Tracking != 0 {
		el.CreateAttr("letter-spacing", num(t.Tracking))
	}
	setColor(el, "fill", t.Color)
	if t.Role != "" {
		el.CreateAttr("class", string(t.Role))
	}
	for i, line := range t.Lines {
		ts := el.CreateElement("tspan")
		ts.CreateAttr("x", num(t.X))
		ts.CreateAttr("y", num(t.Y+float64(i)*t.LineHeight))
		ts.SetText(line)
	}
}

func (sw *svgWriter) icon(parent *etree.Element, ic *scene.Icon) {
	g := parent.CreateElement("g")
	g.CreateAttr("class", "icon icon-"+strings.ToLower(ic.ID.String()))
	k := ic.Frame.W / icon.GridSize
	g.CreateAttr("transform", fmt.Sprintf("translate(%s %s) scale(%s)", num(ic.Frame.X), num(ic.Frame.Y), num(k)))
	g.CreateAttr("fill", "none")
	setColor(g, "stroke", ic.Color)
	g.CreateAttr("stroke-width", num(icon.StrokeWidth))
	g.CreateAttr("stroke-linecap", "round")
	g.CreateAttr("stroke-linejoin", "round")
	setOpacity(g, ic.Opacity)

	glyph := ic.ID.Glyph()
	for _, p := range glyph.Paths {
		tag := "polyline"
		if p.Closed {
			tag = "polygon"
		}
		el := g.CreateElement(tag)
		parts := make([]string, len(p.Points))
		for i, pt := range p.Points {
			parts[i] = num(pt.X) + "," + num(pt.Y)
		}
		el.CreateAttr("points", strings.Join(parts, " "))
	}
	for _, c := range glyph.Circles {
		el := g.CreateElement("circle")
		el.CreateAttr("cx", num(c.CX))
		el.CreateAttr("cy", num(c.CY))
		el.CreateAttr("r", num(c.R))
		if c.Filled {
			setColor(el, "fill", ic.Color)
			el.CreateAttr("stroke", "none")
		}
	}
}

func setColor(el *etree.Element, attr string, c color.NRGBA) {
	el.CreateAttr(attr, theme.Hex(c))
	if c.A != 0xff {
		el.CreateAttr(attr+"-opacity", num(theme.Opacity(c)))
	}
}

func setStroke(el *etree.Element, s scene.Stroke) {
	if s.Width <= 0 {
		return
	}
	setColor(el, "stroke", s.Color)
	el.CreateAttr("stroke-width", num(s.Width))
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = num(d)
		}
		el.CreateAttr("stroke-dasharray", strings.Join(parts, " "))
	}
}

func setOpacity(el *etree.Element, o float64) {
	if v := scene.EffectiveOpacity(o); v < 1 {
		el.CreateAttr("opacity", num(v))
	}
}

// num formats a coordinate compactly.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
