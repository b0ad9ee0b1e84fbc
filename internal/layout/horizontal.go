package layout

import (
	"math"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// horizontalSteps lays the steps out left to right with chevrons between
// them. Below the md breakpoint the row becomes a column.
type horizontalSteps struct{}

func (horizontalSteps) Kind() Kind { return HorizontalSteps }

func (horizontalSteps) Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene {
	f := newFrame(doc, style, opts)
	pal := f.pal
	n := len(doc.Steps)

	const (
		gap     = 40.0
		cardPad = 40.0
		iconBox = 88.0
		overlap = 24.0
	)
	pad := when(f.md, 96, 40)
	cardW := when(f.lg, 360, 320)
	row := f.md
	w := f.viewport
	if row {
		w = math.Max(w, 2*pad+float64(n)*cardW+float64(n-1)*gap)
	} else {
		cardW = w - 2*pad
	}

	head, y := f.header(w/2, pad, w-2*pad, when(f.md, 60, 36), 20, 24)
	y += 80

	badgeSize := when(f.md, 56, 48)
	rowLeft := (w - (float64(n)*cardW + float64(n-1)*gap)) / 2
	if !row {
		rowLeft = pad
	}

	groups := make([]*scene.Group, n)
	cards := make([]*scene.Box, n)
	var connectors []scene.Element
	rowBottom := 0.0
	for i, st := range doc.Steps {
		g := f.step(i, staggerStep)
		x, top := rowLeft+float64(i)*(cardW+gap), y+overlap
		if !row {
			x = rowLeft
		}

		card := f.card(scene.Rect{X: x, Y: top, W: cardW}, true)
		strip := &scene.Box{
			Frame:   scene.Rect{X: x, Y: top, W: cardW, H: 4},
			Fill:    scene.Gradient(pal.Primary, pal.Accent, 0),
			Opacity: 0.6,
			Role:    scene.RoleDecoration,
		}
		badgeRect := scene.Rect{X: x + cardPad, Y: top - overlap, W: badgeSize, H: badgeSize}

		iconTop := badgeRect.MaxY() + 32
		well := scene.Rect{X: x + cardPad, Y: iconTop, W: iconBox, H: iconBox}
		textW := cardW - 2*cardPad
		titleTop := well.MaxY() + 32
		title, th := f.text(x+cardPad, titleTop, textW, st.Title, typeface.Bold, 24, leadingTight, pal.CardTitle, scene.AnchorStart, scene.RoleStepTitle)
		descTop := titleTop + th + 24
		desc, dh := f.text(x+cardPad, descTop, textW, st.Description, typeface.Regular, when(f.md, 16, 14), leadingRelaxed, theme.WithAlpha(pal.CardDescription, 0.8), scene.AnchorStart, scene.RoleStepBody)
		card.Frame.H = descTop + dh + cardPad - top

		g.Add(card, strip)
		g.Add(badge(badgeRect, pal.Radius, g.Accent, position(i), when(f.md, 22, 18), pal.OnPrimary)...)
		g.Add(iconWell(well, 8, pal.IconWell, st.Icon, 48, pal.Icon)...)
		g.Add(title, desc)

		groups[i], cards[i] = g, card
		if row {
			rowBottom = math.Max(rowBottom, card.Frame.MaxY())
		} else {
			y = card.Frame.MaxY() + gap
		}
	}

	if row {
		for _, c := range cards {
			c.Frame.H = rowBottom - c.Frame.Y
		}
		for i := 0; i < n-1; i++ {
			c := cards[i]
			cx, cy := c.Frame.MaxX()+gap/2, c.Frame.Y+c.Frame.H/2
			connectors = append(connectors,
				&scene.Circle{
					CX:     cx,
					CY:     cy,
					R:      24,
					Fill:   paintPtr(scene.Solid(pal.CardFill)),
					Stroke: scene.Stroke{Color: pal.BorderColor(), Width: 2},
					Role:   scene.RoleConnector,
				},
				glyph(cx, cy, icon.ChevronRight, 24, pal.Chevron),
			)
		}
		y = rowBottom
	} else {
		y -= gap
	}
	h := y + pad

	els := append([]scene.Element{head}, steps(groups)...)
	if len(connectors) > 0 {
		els = append(els, (&scene.Group{Role: scene.RoleConnector}).Add(connectors...))
	}
	return f.finish(HorizontalSteps, w, h, true, nil, els...)
}
