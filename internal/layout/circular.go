package layout

import (
	"math"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// circularProgress places the steps on a ring, each as a marker, a "Step N"
// pill and a title card.
type circularProgress struct{}

func (circularProgress) Kind() Kind { return CircularProgress }

func (circularProgress) Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene {
	f := newFrame(doc, style, opts)
	pal := f.pal
	n := len(doc.Steps)

	const (
		marker   = 28.0
		ringW    = 8.0
		pillSize = 10.0
		cardMinW = 200.0
		cardMaxT = 232.0
		cardPadX = 24.0
		cardPadY = 16.0
	)
	size := math.Min(700, 0.85*f.viewport)
	radius := 240 * size / 700
	pad := when(f.md, 80, 32)
	w := math.Max(size, 2*radius+cardMaxT+2*cardPadX) + 2*pad

	head, y := f.header(w/2, pad, w-2*pad, when(f.md, 60, 36), 20, 24)
	y += 64
	areaTop := y
	cx, cy := w/2, y+size/2

	pillH := pillSize*leadingNormal + 8
	markerTop := marker + ringW/2
	for i := range doc.Steps {
		_, ny := NodePosition(cx, cy, radius, i, n)
		if top := ny - markerTop; top < areaTop {
			cy += areaTop - top
		}
	}

	ring := (&scene.Group{Role: scene.RoleDecoration}).Add(
		&scene.Circle{CX: cx, CY: cy, R: radius, Stroke: scene.Stroke{Color: pal.Ring, Width: 12}, Role: scene.RoleDecoration},
		&scene.Circle{CX: cx, CY: cy, R: radius, Stroke: scene.Stroke{Color: pal.Primary, Width: 4, Dash: []float64{20, 20}}, Opacity: 0.3, Role: scene.RoleDecoration},
		&scene.Icon{
			ID:      icon.Sparkles,
			Frame:   scene.Rect{X: cx - 60, Y: cy - 60, W: 120, H: 120},
			Color:   pal.Primary,
			Opacity: 0.05,
			Role:    scene.RoleDecoration,
		},
	)

	groups := make([]*scene.Group, n)
	for i, st := range doc.Steps {
		g := f.step(i, staggerStep)
		nx, ny := NodePosition(cx, cy, radius, i, n)

		g.Add(
			&scene.Circle{
				CX:     nx,
				CY:     ny,
				R:      marker,
				Fill:   paintPtr(scene.Solid(g.Accent)),
				Stroke: scene.Stroke{Color: pal.NodeRing, Width: ringW},
				Role:   scene.RoleBadge,
			},
			glyph(nx, ny, st.Icon, 24, white),
		)

		pillTop := ny + markerTop + 12
		text := "Step " + position(i)
		pw := labelWidth(text, typeface.Bold, pillSize, 1) + 24
		g.Add(
			&scene.Box{
				Frame:  scene.Rect{X: nx - pw/2, Y: pillTop, W: pw, H: pillH},
				Radius: pillH / 2,
				Fill:   scene.Solid(theme.WithAlpha(white, 0.95)),
				Role:   scene.RoleLabel,
			},
			label(nx, pillTop, pillH, text, typeface.Bold, pillSize, pal.CardLabel, 1, scene.RoleLabel),
		)

		cardTop := pillTop + pillH + 8
		blk := typeface.Layout(typeface.Bold, 16, st.Title, cardMaxT, leadingTight)
		cw := math.Max(cardMinW, blk.Width+2*cardPadX)
		title, th := f.text(nx, cardTop+cardPadY, cw-2*cardPadX, st.Title, typeface.Bold, 16, leadingTight, pal.CardTitle, scene.AnchorMiddle, scene.RoleStepTitle)
		card := f.card(scene.Rect{X: nx - cw/2, Y: cardTop, W: cw, H: th + 2*cardPadY}, true)
		card.Accent = &scene.EdgeAccent{Side: scene.Bottom, Width: 4, Color: g.Accent}
		g.Add(card, title)

		groups[i] = g
	}

	h := cy + size/2 + pad
	els := append([]scene.Element{head, ring}, steps(groups)...)
	return f.finish(CircularProgress, w, h, true, nil, els...)
}
