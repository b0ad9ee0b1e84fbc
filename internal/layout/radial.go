package layout

import (
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
	"github.com/dgallion1/infographic/internal/typeface"
)

// radialProcess orbits the steps around a hub that names the first word of
// the title.
type radialProcess struct{}

func (radialProcess) Kind() Kind { return RadialProcess }

func (radialProcess) Render(doc *document.Document, style theme.Style, opts Options) *scene.Scene {
	f := newFrame(doc, style, opts)
	pal := f.pal
	n := len(doc.Steps)

	const (
		hub      = 224.0
		nodeW    = 176.0
		nodePad  = 20.0
		nodeBadg = 40.0
		nodeWell = 30.0
		stagger  = 150 * time.Millisecond
	)
	size := math.Min(800, 0.9*f.viewport)
	k := size / 800
	radius := 280 * k
	pad := when(f.md, 80, 32)
	w := math.Max(size, 2*radius+nodeW) + 2*pad

	head, y := f.header(w/2, pad, w-2*pad, when(f.md, 48, 30), when(f.md, 20, 18), 16)
	y += 64
	areaTop := y
	cx, cy := w/2, y+size/2

	// Node card heights do not depend on position, so measure first and then
	// lower the center if the top card would rise into the header.
	textW := nodeW - 2*nodePad
	heights := make([]float64, n)
	for i, st := range doc.Steps {
		th := typeface.Layout(typeface.Bold, 14, st.Title, textW, leadingTight).Height()
		dh := typeface.Layout(typeface.Regular, 12, st.Description, textW, leadingSnug).Height()
		heights[i] = nodePad + nodeBadg + 12 + th + 6 + dh + nodePad
	}
	for i := range doc.Steps {
		_, ny := NodePosition(cx, cy, radius, i, n)
		if top := ny - heights[i]/2; top < areaTop {
			cy += areaTop - top
		}
	}

	lines := &scene.Group{Role: scene.RoleConnector}
	groups := make([]*scene.Group, n)
	for i, st := range doc.Steps {
		nx, ny := NodePosition(cx, cy, radius, i, n)
		lines.Add(&scene.Line{
			X1:      cx,
			Y1:      cy,
			X2:      nx,
			Y2:      ny,
			Stroke:  scene.Stroke{Color: pal.HubLine, Width: 2},
			Opacity: 0.2,
			Role:    scene.RoleConnector,
		})

		g := f.step(i, stagger)
		top := ny - heights[i]/2
		x := nx - nodeW/2
		card := f.card(scene.Rect{X: x, Y: top, W: nodeW, H: heights[i]}, true)

		badgeRect := scene.Rect{X: x + nodePad, Y: top + nodePad, W: nodeBadg, H: nodeBadg}
		wellCX, wellCY := x+nodeW-nodePad-nodeWell/2, badgeRect.Y+nodeBadg/2
		titleTop := badgeRect.MaxY() + 12
		title, th := f.text(x+nodePad, titleTop, textW, st.Title, typeface.Bold, 14, leadingTight, pal.CardTitle, scene.AnchorStart, scene.RoleStepTitle)
		desc, _ := f.text(x+nodePad, titleTop+th+6, textW, st.Description, typeface.Regular, 12, leadingSnug, theme.WithAlpha(pal.CardDescription, 0.7), scene.AnchorStart, scene.RoleStepBody)

		g.Add(card)
		g.Add(badge(badgeRect, math.Min(pal.Radius, nodeBadg/2), pal.Primary, position(i), 16, pal.OnPrimary)...)
		g.Add(
			&scene.Circle{CX: wellCX, CY: wellCY, R: nodeWell / 2, Fill: paintPtr(scene.Solid(pal.IconWell)), Role: scene.RoleIcon},
			glyph(wellCX, wellCY, st.Icon, 16, pal.Icon),
		)
		g.Add(title, desc)
		groups[i] = g
	}

	hubRect := scene.Rect{X: cx - hub/2, Y: cy - hub/2, W: hub, H: hub}
	ringColor := pal.BorderColor()
	if pal.DarkBackground {
		ringColor = theme.WithAlpha(white, 0.2)
	}
	hubGroup := (&scene.Group{Role: scene.RoleHub}).Add(
		&scene.Box{
			Frame:  hubRect,
			Radius: pal.Radius,
			Fill:   scene.Solid(pal.CardFill),
			Stroke: scene.Stroke{Color: ringColor, Width: 4},
			Shadow: f.cardShadow(),
			Role:   scene.RoleHub,
		},
	)
	wellTop := hubRect.Y + 36
	hubGroup.Add(
		&scene.Circle{CX: cx, CY: wellTop + 36, R: 36, Fill: paintPtr(scene.Solid(pal.IconWell)), Role: scene.RoleHub},
		glyph(cx, wellTop+36, icon.Sparkles, 36, pal.Icon),
		label(cx, wellTop+72+8, 18, "HUB", typeface.Bold, 12, pal.CardLabel, 2, scene.RoleLabel),
	)
	word, _ := f.text(cx, wellTop+72+30, hub-32, cases.Upper(language.Und).String(doc.FirstWord()), typeface.Bold, 24, leadingTight, pal.CardTitle, scene.AnchorMiddle, scene.RoleLabel)
	hubGroup.Add(word)

	h := cy + size/2 + pad
	els := append([]scene.Element{head, lines, hubGroup}, steps(groups)...)
	return f.finish(RadialProcess, w, h, true, nil, els...)
}
