package layout

import (
	"image/color"
	"math"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// multiColumn is a responsive grid of centered section cards.
type multiColumn struct{}

func (multiColumn) Kind() Kind { return MultiColumn }

// columns returns the grid width for a viewport.
func columns(viewport float64) int {
	switch {
	case viewport < BreakpointSM:
		return 1
	case viewport < BreakpointLG:
		return 2
	default:
		return 3
	}
}

func (multiColumn) Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene {
	f := newFrame(doc, style, opts)
	pal := f.pal

	const (
		cardPad = 40.0
		topBar  = 8.0
		corner  = 32.0
	)
	w := math.Min(1280, f.viewport)
	pad := when(f.md, 96, 40)
	inner := w - 2*pad
	cols := columns(f.viewport)
	gap := when(f.md, 64, 40)
	colW := (inner - float64(cols-1)*gap) / float64(cols)

	head, y := f.header(w/2, pad, inner, when(f.md, 60, 36), 20, 24)
	y += 80

	pillBg := theme.WithAlpha(color.NRGBA{}, 0.05)
	if pal.DarkAccent {
		pillBg = theme.WithAlpha(white, 0.05)
	}
	iconSize := when(f.md, 96, 80)

	groups := make([]*scene.Group, len(doc.Steps))
	var row []*scene.Box
	rowBottom := y
	flush := func() {
		for _, c := range row {
			c.Frame.H = rowBottom - c.Frame.Y
		}
		row = row[:0]
	}
	for i, st := range doc.Steps {
		col := i % cols
		if col == 0 && i > 0 {
			flush()
			y = rowBottom + gap
		}
		g := f.step(i, staggerStep)
		x := pad + float64(col)*(colW+gap)
		cx := x + colW/2

		card := f.card(scene.Rect{X: x, Y: y, W: colW}, false)
		card.Accent = &scene.EdgeAccent{Side: scene.Top, Width: topBar, Color: g.Accent}

		cornerRect := scene.Rect{X: x + colW - 16 - corner, Y: y + 16, W: corner, H: corner}
		iconTop := y + topBar + cardPad
		iconRect := scene.Rect{X: cx - iconSize/2, Y: iconTop, W: iconSize, H: iconSize}

		pillText := "Section " + position(i)
		pillH := 11*leadingNormal + 8
		pw := labelWidth(pillText, typeface.Bold, 11, 1.5) + 24
		pillTop := iconRect.MaxY() + 32

		textW := colW - 2*cardPad
		titleTop := pillTop + pillH + 16
		title, th := f.text(cx, titleTop, textW, st.Title, typeface.Bold, when(f.md, 24, 20), leadingTight, pal.CardTitle, scene.AnchorMiddle, scene.RoleStepTitle)
		descTop := titleTop + th + 16
		desc, dh := f.text(cx, descTop, textW, st.Description, typeface.Regular, when(f.md, 16, 14), leadingRelaxed, theme.WithAlpha(pal.CardDescription, 0.7), scene.AnchorMiddle, scene.RoleStepBody)
		card.Frame.H = descTop + dh + cardPad - y

		g.Add(card)
		g.Add(
			&scene.Box{Frame: cornerRect, Radius: math.Min(pal.Radius, corner/2), Fill: scene.Solid(g.Accent), Opacity: 0.2, Role: scene.RoleBadge},
			label(cornerRect.X+corner/2, cornerRect.Y, corner, position(i), typeface.Bold, 12, white, 0, scene.RoleBadge),
		)
		g.Add(
			&scene.Box{Frame: iconRect, Radius: pal.Radius, Fill: scene.Solid(pal.Primary), Role: scene.RoleIcon},
			glyph(cx, iconRect.Y+iconSize/2, st.Icon, when(f.md, 48, 40), white),
		)
		g.Add(
			&scene.Box{Frame: scene.Rect{X: cx - pw/2, Y: pillTop, W: pw, H: pillH}, Radius: pillH / 2, Fill: scene.Solid(pillBg), Role: scene.RoleLabel},
			label(cx, pillTop, pillH, pillText, typeface.Bold, 11, pal.CardLabel, 1.5, scene.RoleLabel),
		)
		g.Add(title, desc)

		groups[i] = g
		row = append(row, card)
		rowBottom = math.Max(rowBottom, card.Frame.MaxY())
	}
	flush()
	h := rowBottom + pad

	return f.finish(MultiColumn, w, h, true, nil, append([]scene.Element{head}, steps(groups)...)...)
}
