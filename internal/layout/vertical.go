package layout

import (
	"math"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// verticalCards stacks one full-width card per step with a numbered badge on
// the left and an accent stripe down the left edge.
type verticalCards struct{}

func (verticalCards) Kind() Kind { return VerticalCards }

func (verticalCards) Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene {
	f := newFrame(doc, style, opts)
	pal := f.pal

	w := math.Min(896, f.viewport)
	pad := when(f.md, 80, 40)
	inner := w - 2*pad

	head, y := f.header(w/2, pad, inner, when(f.md, 48, 30), when(f.md, 20, 16), 16)
	y += 32
	head.Add(&scene.Box{
		Frame:  scene.Rect{X: w/2 - 48, Y: y, W: 96, H: 4},
		Radius: 2,
		Fill:   scene.Gradient(pal.Primary, pal.Accent, 0),
		Role:   scene.RoleDecoration,
	})
	y += 4 + 48

	const (
		cardPad = 40.0
		stripe  = 12.0
		gap     = 40.0
		well    = 44.0
	)
	badgeSize := when(f.md, 64, 48)
	titleSize := when(f.md, 30, 20)
	bodySize := when(f.md, 18, 16)

	groups := make([]*scene.Group, len(doc.Steps))
	for i, st := range doc.Steps {
		g := f.step(i, staggerStep)
		top := y
		left := pad + stripe + cardPad

		badgeRect := scene.Rect{X: left, Y: top + cardPad, W: badgeSize, H: badgeSize}
		contentX, contentTop := left+badgeSize+32, top+cardPad
		if !f.sm {
			contentX, contentTop = left, badgeRect.MaxY()+24
		}
		contentW := pad + inner - cardPad - contentX

		titleX := contentX + well + 16
		title, th := f.text(titleX, 0, contentW-well-16, st.Title, typeface.Bold, titleSize, leadingTight, pal.CardTitle, scene.AnchorStart, scene.RoleStepTitle)
		rowH := math.Max(well, th)
		shiftText(title, contentTop+(rowH-th)/2)

		descTop := contentTop + rowH + 16
		desc, dh := f.text(contentX, descTop, contentW, st.Description, typeface.Regular, bodySize, leadingRelaxed, theme.WithAlpha(pal.CardDescription, 0.8), scene.AnchorStart, scene.RoleStepBody)

		bottom := math.Max(badgeRect.MaxY(), descTop+dh) + cardPad
		card := f.card(scene.Rect{X: pad, Y: top, W: inner, H: bottom - top}, true)
		card.Accent = &scene.EdgeAccent{Side: scene.Left, Width: stripe, Color: g.Accent}

		g.Add(card)
		g.Add(badge(badgeRect, pal.Radius, pal.Primary, paddedPosition(i), when(f.md, 24, 20), pal.OnPrimary)...)
		g.Add(&scene.Circle{
			CX:   contentX + well/2,
			CY:   contentTop + rowH/2,
			R:    well / 2,
			Fill: paintPtr(scene.Solid(pal.IconWell)),
			Role: scene.RoleIcon,
		})
		g.Add(glyph(contentX+well/2, contentTop+rowH/2, st.Icon, 24, pal.Icon))
		g.Add(title, desc)

		groups[i] = g
		y = bottom + gap
	}
	h := y - gap + pad

	deco := f.overlay(w, h, pal.Accent, pal.Primary, 135)
	return f.finish(VerticalCards, w, h, true, deco, append([]scene.Element{head}, steps(groups)...)...)
}

// shiftText moves a text block so that its top edge sits at top. Text built
// at top zero has its baseline offset from zero, so the offset is additive.
func shiftText(t *scene.Text, top float64) {
	t.Y += top
}

func paintPtr(p scene.Paint) *scene.Paint { return &p }
