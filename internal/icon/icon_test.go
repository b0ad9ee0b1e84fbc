package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		want ID
	}{
		{"Activity", Activity},
		{"Target", Target},
		{"Zap", Zap},
		{"target", Target},
		{"trending-up", TrendingUp},
		{"Trending_Up", TrendingUp},
		{"MESSAGE SQUARE", MessageSquare},
		{"gear", Settings},
		{"bolt", Zap},
		{"CheckCircle", Check},
		{"", Unknown},
		{"Rocketship", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.name))
		})
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	for _, id := range Catalog() {
		assert.True(t, id.Known(), id.String())
		assert.Equal(t, id, Resolve(id.String()), "catalog name %q must resolve to itself", id.String())
	}
	assert.Len(t, Names(), len(Catalog()))
	assert.Contains(t, Names(), "Shield")
}

func TestUnknownUsesDefaultGlyph(t *testing.T) {
	assert.False(t, Unknown.Known())
	assert.Equal(t, "CircleDot", Unknown.String())
	assert.Equal(t, Unknown.Glyph(), ID(999).Glyph())
	assert.Equal(t, "CircleDot", ID(-1).String())
}

func TestEveryGlyphHasGeometryOnGrid(t *testing.T) {
	ids := append([]ID{Unknown}, Catalog()...)
	for _, id := range ids {
		g := id.Glyph()
		assert.NotEmpty(t, len(g.Paths)+len(g.Circles), id.String())
		for _, p := range g.Paths {
			assert.GreaterOrEqual(t, len(p.Points), 2, id.String())
			for _, pt := range p.Points {
				assert.True(t, pt.X >= 0 && pt.X <= GridSize && pt.Y >= 0 && pt.Y <= GridSize,
					"%s point %v outside grid", id, pt)
			}
		}
		for _, c := range g.Circles {
			assert.Greater(t, c.R, 0.0, id.String())
		}
	}
}
