package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// Raster canvas limits. maxSide is the largest dimension the JPEG encoder
// accepts; maxPixels bounds the RGBA buffer to 256 MiB.
const (
	maxSide   = 65535
	maxPixels = 64 << 20
)

// fitScale returns the density to draw w×h logical pixels at. It is the
// requested scale unless that canvas would exceed the limits, in which case
// it is lowered to the largest density that fits. Content is never cropped:
// when even 1× does not fit, fitScale fails.
func fitScale(w, h, scale float64) (float64, error) {
	fit := scale
	if side := math.Max(w, h); side*fit > maxSide {
		fit = maxSide / side
	}
	if area := w * h; area*fit*fit > maxPixels {
		fit = math.Sqrt(maxPixels / area)
	}
	if fit == scale {
		return scale, nil
	}
	if fit < 1 {
		return 0, fmt.Errorf("canvas %.0fx%.0f is too large to rasterize at full size", w, h)
	}
	// Truncate so rounding up to whole pixels stays within the limits.
	return math.Floor(fit*1000) / 1000, nil
}

func writeRaster(w io.Writer, s *scene.Scene, format Format, opts Options) error {
	img, err := Rasterize(s, opts.Scale)
	if err != nil {
		return err
	}
	switch format {
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.JPEGQuality})
	default:
		return png.Encode(w, img)
	}
}

// Rasterize draws s at the given pixel density onto a canvas pre-filled with
// the scene background.
func Rasterize(s *scene.Scene, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("empty canvas %.0fx%.0f", s.Width, s.Height)
	}
	scale, err := fitScale(s.Width, s.Height, scale)
	if err != nil {
		return nil, err
	}
	wpx, hpx := int(math.Ceil(s.Width*scale)), int(math.Ceil(s.Height*scale))
	c := &canvas{img: image.NewRGBA(image.Rect(0, 0, wpx, hpx)), scale: scale}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	for _, e := range s.Elements {
		if err := c.element(e, 1); err != nil {
			return nil, err
		}
	}
	return c.img, nil
}

type pt struct{ X, Y float64 }

type canvas struct {
	img   *image.RGBA
	scale float64
}

func (c *canvas) px(v float64) float64 { return v * c.scale }

func (c *canvas) rect(r scene.Rect) scene.Rect {
	return scene.Rect{X: c.px(r.X), Y: c.px(r.Y), W: c.px(r.W), H: c.px(r.H)}
}

func (c *canvas) element(e scene.Element, alpha float64) error {
	switch e := e.(type) {
	case *scene.Group:
		for _, ch := range e.Children {
			if err := c.element(ch, alpha); err != nil {
				return err
			}
		}
	case *scene.Box:
		c.box(e, alpha)
	case *scene.Circle:
		c.circle(e, alpha)
	case *scene.Line:
		c.line(e, alpha)
	case *scene.Text:
		return c.text(e, alpha)
	case *scene.Icon:
		c.icon(e, alpha)
	}
	return nil
}

func (c *canvas) box(b *scene.Box, alpha float64) {
	alpha *= scene.EffectiveOpacity(b.Opacity)
	f := c.rect(b.Frame)
	r := clampRadius(c.px(b.Radius), f)

	if b.Shadow != nil {
		c.shadow(f, r, b.Shadow, alpha)
	}
	outline := roundRect(f, r)
	c.fill([][]pt{outline}, c.paint(b.Fill, f, alpha))

	if b.Accent != nil {
		strip := clipToRect(outline, c.rect(accentRect(b.Frame, b.Accent)))
		if len(strip) > 2 {
			c.fill([][]pt{strip}, uniform(b.Accent.Color, alpha))
		}
	}
	if b.Stroke.Width > 0 {
		c.strokeClosed(outline, f, r, b.Stroke, alpha)
	}
}

func (c *canvas) shadow(f scene.Rect, r float64, sh *scene.Shadow, alpha float64) {
	const layers = 6
	blur := c.px(sh.Blur) / 2
	col := sh.Color
	col.A = uint8(float64(col.A) / layers)
	for i := 0; i < layers; i++ {
		grow := blur * float64(layers-i) / layers
		g := scene.Rect{X: f.X - grow, Y: f.Y + c.px(sh.OffsetY) - grow, W: f.W + 2*grow, H: f.H + 2*grow}
		c.fill([][]pt{roundRect(g, r+grow)}, uniform(col, alpha))
	}
}

// strokeClosed outlines a rounded rect. Solid strokes are a ring between
// an inflated and a deflated outline; dashed strokes are built per segment.
func (c *canvas) strokeClosed(outline []pt, f scene.Rect, r float64, s scene.Stroke, alpha float64) {
	w := c.px(s.Width)
	src := uniform(s.Color, alpha)
	if len(s.Dash) > 0 {
		c.fill(strokePolyline(outline, true, w, c.dash(s.Dash), false), src)
		return
	}
	outer := roundRect(scene.Rect{X: f.X - w/2, Y: f.Y - w/2, W: f.W + w, H: f.H + w}, r+w/2)
	inner := roundRect(scene.Rect{X: f.X + w/2, Y: f.Y + w/2, W: f.W - w, H: f.H - w}, math.Max(r-w/2, 0))
	c.fill([][]pt{outer, reverse(inner)}, src)
}

func (c *canvas) circle(e *scene.Circle, alpha float64) {
	alpha *= scene.EffectiveOpacity(e.Opacity)
	cx, cy, r := c.px(e.CX), c.px(e.CY), c.px(e.R)
	if e.Fill != nil {
		bounds := scene.Rect{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r}
		c.fill([][]pt{circlePoly(cx, cy, r)}, c.paint(*e.Fill, bounds, alpha))
	}
	if e.Stroke.Width <= 0 {
		return
	}
	w := c.px(e.Stroke.Width)
	src := uniform(e.Stroke.Color, alpha)
	if len(e.Stroke.Dash) > 0 {
		c.fill(strokePolyline(circlePoly(cx, cy, r), true, w, c.dash(e.Stroke.Dash), false), src)
		return
	}
	c.fill([][]pt{circlePoly(cx, cy, r+w/2), reverse(circlePoly(cx, cy, math.Max(r-w/2, 0)))}, src)
}

func (c *canvas) line(l *scene.Line, alpha float64) {
	alpha *= scene.EffectiveOpacity(l.Opacity)
	if l.Stroke.Width <= 0 {
		return
	}
	pts := []pt{{c.px(l.X1), c.px(l.Y1)}, {c.px(l.X2), c.px(l.Y2)}}
	c.fill(strokePolyline(pts, false, c.px(l.Stroke.Width), c.dash(l.Stroke.Dash), false), uniform(l.Stroke.Color, alpha))
}

func (c *canvas) icon(ic *scene.Icon, alpha float64) {
	alpha *= scene.EffectiveOpacity(ic.Opacity)
	f := c.rect(ic.Frame)
	k := f.W / icon.GridSize
	w := icon.StrokeWidth * k
	src := uniform(ic.Color, alpha)
	g := ic.ID.Glyph()

	var strokes [][]pt
	for _, p := range g.Paths {
		pts := make([]pt, len(p.Points))
		for i, q := range p.Points {
			pts[i] = pt{f.X + q.X*k, f.Y + q.Y*k}
		}
		strokes = append(strokes, strokePolyline(pts, p.Closed, w, nil, true)...)
	}
	// A ring's hole would cut through any stroke it overlaps, so rings are
	// filled on their own.
	for _, ci := range g.Circles {
		cx, cy, r := f.X+ci.CX*k, f.Y+ci.CY*k, ci.R*k
		if ci.Filled {
			strokes = append(strokes, circlePoly(cx, cy, r))
			continue
		}
		c.fill([][]pt{circlePoly(cx, cy, r+w/2), reverse(circlePoly(cx, cy, math.Max(r-w/2, 0)))}, src)
	}
	c.fill(strokes, src)
}

func (c *canvas) text(t *scene.Text, alpha float64) error {
	if len(t.Lines) == 0 {
		return nil
	}
	src := image.NewUniform(fade(t.Color, alpha))
	tracking := fixed.Int26_6(c.px(t.Tracking) * 64)
	return typeface.Use(t.Style, c.px(t.Size), func(face font.Face) error {
		d := &font.Drawer{Dst: c.img, Src: src, Face: face}
		for i, line := range t.Lines {
			vis := typeface.Visible(line)
			if vis == "" {
				continue
			}
			width := d.MeasureString(vis)
			if tracking != 0 {
				for range vis {
					width += tracking
				}
			}
			x := fixed.Int26_6(c.px(t.X) * 64)
			switch t.Anchor {
			case scene.AnchorMiddle:
				x -= width / 2
			case scene.AnchorEnd:
				x -= width
			}
			d.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(c.px(t.Y+float64(i)*t.LineHeight) * 64)}
			if tracking == 0 {
				d.DrawString(vis)
				continue
			}
			for _, r := range vis {
				d.DrawString(string(r))
				d.Dot.X += tracking
			}
		}
		return nil
	})
}

func (c *canvas) dash(d []float64) []float64 {
	if len(d) == 0 {
		return nil
	}
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = c.px(v)
	}
	return out
}

// fill rasterizes polygons into the bounding box they cover and composites
// src through the coverage mask.
func (c *canvas) fill(polys [][]pt, src image.Image) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range polys {
		for _, q := range p {
			minX, minY = math.Min(minX, q.X), math.Min(minY, q.Y)
			maxX, maxY = math.Max(maxX, q.X), math.Max(maxY, q.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return
	}
	b := c.img.Bounds()
	x0, y0 := max(int(math.Floor(minX)), b.Min.X), max(int(math.Floor(minY)), b.Min.Y)
	x1, y1 := min(int(math.Ceil(maxX)), b.Max.X), min(int(math.Ceil(maxY)), b.Max.Y)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	z := vector.NewRasterizer(x1-x0, y1-y0)
	z.DrawOp = draw.Over
	ox, oy := float64(x0), float64(y0)
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		z.MoveTo(float32(p[0].X-ox), float32(p[0].Y-oy))
		for _, q := range p[1:] {
			z.LineTo(float32(q.X-ox), float32(q.Y-oy))
		}
		z.ClosePath()
	}
	r := image.Rect(x0, y0, x1, y1)
	z.Draw(c.img, r, src, r.Min)
}

func (c *canvas) paint(p scene.Paint, bounds scene.Rect, alpha float64) image.Image {
	if !p.IsGradient() {
		return uniform(p.From, alpha)
	}
	return newGradient(p.From, *p.To, p.AngleDeg, bounds, alpha)
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 1 {
		c.A = uint8(float64(c.A)*alpha + 0.5)
	}
	return c
}

func uniform(c color.NRGBA, alpha float64) image.Image {
	return image.NewUniform(fade(c, alpha))
}

// linearGradient is an unbounded image that projects each pixel onto the
// gradient axis of a frame.
type linearGradient struct {
	from, to color.NRGBA
	x0, y0   float64
	dx, dy   float64
	len2     float64
	alpha    float64
}

func newGradient(from, to color.NRGBA, deg float64, f scene.Rect, alpha float64) *linearGradient {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	half := math.Abs(f.W/2*cos) + math.Abs(f.H/2*sin)
	cx, cy := f.X+f.W/2, f.Y+f.H/2
	g := &linearGradient{
		from:  from,
		to:    to,
		x0:    cx - cos*half,
		y0:    cy - sin*half,
		dx:    cos * 2 * half,
		dy:    sin * 2 * half,
		alpha: alpha,
	}
	g.len2 = g.dx*g.dx + g.dy*g.dy
	return g
}

func (g *linearGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *linearGradient) Bounds() image.Rectangle {
	return image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)
}

func (g *linearGradient) At(x, y int) color.Color {
	t := 0.0
	if g.len2 > 0 {
		t = ((float64(x)+0.5-g.x0)*g.dx + (float64(y)+0.5-g.y0)*g.dy) / g.len2
	}
	t = math.Max(0, math.Min(1, t))
	return fade(theme.Blend(g.from, g.to, t), g.alpha)
}

// roundRect flattens a rounded rectangle, clockwise on screen.
func roundRect(f scene.Rect, r float64) []pt {
	r = clampRadius(r, f)
	if r <= 0 {
		return []pt{{f.X, f.Y}, {f.MaxX(), f.Y}, {f.MaxX(), f.MaxY()}, {f.X, f.MaxY()}}
	}
	n := max(4, int(r/2))
	var out []pt
	corners := []struct {
		cx, cy, start float64
	}{
		{f.MaxX() - r, f.Y + r, -math.Pi / 2},
		{f.MaxX() - r, f.MaxY() - r, 0},
		{f.X + r, f.MaxY() - r, math.Pi / 2},
		{f.X + r, f.Y + r, math.Pi},
	}
	for _, c := range corners {
		for i := 0; i <= n; i++ {
			a := c.start + float64(i)/float64(n)*math.Pi/2
			out = append(out, pt{c.cx + r*math.Cos(a), c.cy + r*math.Sin(a)})
		}
	}
	return out
}

// circlePoly flattens a circle, clockwise on screen.
func circlePoly(cx, cy, r float64) []pt {
	if r <= 0 {
		return nil
	}
	n := max(24, int(r))
	out := make([]pt, n)
	for i := range n {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		out[i] = pt{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return out
}

func reverse(p []pt) []pt {
	out := make([]pt, len(p))
	for i, q := range p {
		out[len(p)-1-i] = q
	}
	return out
}

func area(p []pt) float64 {
	var a float64
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return a / 2
}

// clockwise returns p with positive screen orientation so that overlapping
// pieces of one stroke add up instead of cancelling.
func clockwise(p []pt) []pt {
	if area(p) < 0 {
		return reverse(p)
	}
	return p
}

// strokePolyline turns a polyline into quads per segment plus round joins,
// optionally dashed. Caps are round when caps is set.
func strokePolyline(points []pt, closed bool, width float64, dash []float64, caps bool) [][]pt {
	if len(points) < 2 || width <= 0 {
		return nil
	}
	path := points
	if closed {
		path = append(append([]pt(nil), points...), points[0])
	}
	runs := [][]pt{path}
	if len(dash) > 0 {
		runs = dashPath(path, dash)
	}
	half := width / 2
	var out [][]pt
	for _, run := range runs {
		for i := 0; i+1 < len(run); i++ {
			if q := segmentQuad(run[i], run[i+1], half); q != nil {
				out = append(out, q)
			}
			if i > 0 {
				out = append(out, circlePoly(run[i].X, run[i].Y, half))
			}
		}
		if caps || (closed && len(dash) == 0) {
			out = append(out, circlePoly(run[0].X, run[0].Y, half))
			last := run[len(run)-1]
			out = append(out, circlePoly(last.X, last.Y, half))
		}
	}
	return out
}

func segmentQuad(a, b pt, half float64) []pt {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*half, dx/l*half
	return clockwise([]pt{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	})
}

// dashPath cuts a polyline into the "on" runs of an alternating dash pattern.
func dashPath(path []pt, dash []float64) [][]pt {
	total := 0.0
	for _, d := range dash {
		total += d
	}
	if total <= 0 {
		return [][]pt{path}
	}
	var runs [][]pt
	idx, left, on := 0, dash[0], true
	cur := []pt{path[0]}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for seg-pos > left {
			pos += left
			t := pos / seg
			p := pt{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
			if on {
				runs = append(runs, append(cur, p))
				cur = nil
			} else {
				cur = []pt{p}
			}
			on = !on
			idx = (idx + 1) % len(dash)
			left = dash[idx]
		}
		left -= seg - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

// clipToRect clips a convex polygon to r.
func clipToRect(poly []pt, r scene.Rect) []pt {
	edges := []struct {
		inside func(pt) bool
		cross  func(a, b pt) pt
	}{
		{func(p pt) bool { return p.X >= r.X }, func(a, b pt) pt { return lerpX(a, b, r.X) }},
		{func(p pt) bool { return p.X <= r.MaxX() }, func(a, b pt) pt { return lerpX(a, b, r.MaxX()) }},
		{func(p pt) bool { return p.Y >= r.Y }, func(a, b pt) pt { return lerpY(a, b, r.Y) }},
		{func(p pt) bool { return p.Y <= r.MaxY() }, func(a, b pt) pt { return lerpY(a, b, r.MaxY()) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && !e.inside(prev):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(cur):
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func lerpX(a, b pt, x float64) pt {
	t := (x - a.X) / (b.X - a.X)
	return pt{x, a.Y + (b.Y-a.Y)*t}
}

func lerpY(a, b pt, y float64) pt {
	t := (y - a.Y) / (b.Y - a.Y)
	return pt{a.X + (b.X-a.X)*t, y}
}
