package layout

import (
	"math"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// timelineFlow hangs the steps off a vertical spine, alternating sides from
// the sm breakpoint up.
type timelineFlow struct{}

func (timelineFlow) Kind() Kind { return TimelineFlow }

func (timelineFlow) Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene {
	f := newFrame(doc, style, opts)
	pal := f.pal

	w := math.Min(1024, f.viewport)
	pad := when(f.md, 96, 40)
	inner := math.Min(896, w-2*pad)
	innerX := (w - inner) / 2

	head, y := f.header(w/2, pad, inner, when(f.md, 60, 36), 20, 24)
	y += 80 + 40

	spineX := w / 2
	if !f.sm {
		spineX = innerX + 24
	}
	node := when(f.md, 80, 48)
	ring := when(f.md, 12, 4)
	cardPad := when(f.md, 48, 32)
	spacing := when(f.md, 128, 80)
	col := inner / 12

	const well = 56.0
	spineTop := y - 40
	groups := make([]*scene.Group, len(doc.Steps))
	for i, st := range doc.Steps {
		g := f.step(i, staggerStep)

		var cardX, cardW float64
		right := i%2 == 0 && f.sm
		switch {
		case !f.sm:
			cardX, cardW = innerX+64, inner-64
		case right:
			cardX, cardW = innerX, 5*col
		default:
			cardX, cardW = innerX+7*col, 5*col
		}
		textW := cardW - 2*cardPad

		anchor, textX, wellX := scene.AnchorStart, cardX+cardPad, cardX+cardPad
		if right {
			anchor, textX, wellX = scene.AnchorEnd, cardX+cardW-cardPad, cardX+cardW-cardPad-well
		}

		wellRect := scene.Rect{X: wellX, Y: y + cardPad, W: well, H: well}
		titleTop := wellRect.MaxY() + 24
		title, th := f.text(textX, titleTop, textW, st.Title, typeface.Bold, when(f.md, 30, 20), leadingTight, pal.CardTitle, anchor, scene.RoleStepTitle)
		descTop := titleTop + th + 16
		desc, dh := f.text(textX, descTop, textW, st.Description, typeface.Regular, when(f.md, 18, 14), leadingRelaxed, theme.WithAlpha(pal.CardDescription, 0.8), anchor, scene.RoleStepBody)
		card := f.card(scene.Rect{X: cardX, Y: y, W: cardW, H: descTop + dh + cardPad - y}, true)

		cy := card.Frame.Y + card.Frame.H/2
		r := node/2 - ring/2
		g.Add(card)
		g.Add(iconWell(wellRect, 8, pal.IconWell, st.Icon, 28, pal.Icon)...)
		g.Add(title, desc)
		g.Add(
			&scene.Circle{
				CX:     spineX,
				CY:     cy,
				R:      r,
				Fill:   paintPtr(scene.Solid(pal.Primary)),
				Stroke: scene.Stroke{Color: pal.NodeRing, Width: ring},
				Role:   scene.RoleBadge,
			},
			label(spineX, cy-r, 2*r, position(i), typeface.Bold, when(f.md, 30, 18), pal.OnPrimary, 0, scene.RoleBadge),
		)

		groups[i] = g
		y = card.Frame.MaxY() + spacing
	}
	y -= spacing
	spineBottom := y + 40

	spineW := when(f.md, 12, 4)
	spineRect := scene.Rect{X: spineX - spineW/2, Y: spineTop, W: spineW, H: spineBottom - spineTop}
	spine := (&scene.Group{Role: scene.RoleConnector}).Add(
		&scene.Box{Frame: spineRect, Radius: spineW / 2, Fill: scene.Solid(pal.Spine), Role: scene.RoleConnector},
		&scene.Box{Frame: spineRect, Radius: spineW / 2, Fill: scene.Gradient(pal.Primary, pal.Accent, 90), Opacity: 0.3, Role: scene.RoleConnector},
	)

	h := spineBottom + pad
	deco := f.overlay(w, h, pal.Primary, pal.Accent, 180)
	els := append([]scene.Element{head, spine}, steps(groups)...)
	return f.finish(TimelineFlow, w, h, true, deco, els...)
}
