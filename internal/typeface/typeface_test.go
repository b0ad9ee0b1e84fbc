package typeface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureGrowsWithText(t *testing.T) {
	short := Measure(Regular, 18, "Plan")
	long := Measure(Regular, 18, "Plan the launch")
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)
	assert.Greater(t, Measure(Regular, 36, "Plan"), short)
}

func TestFaceMetrics(t *testing.T) {
	m := FaceMetrics(Bold, 30)
	assert.Greater(t, m.Ascent, 0.0)
	assert.Greater(t, m.Height, m.Ascent)
}

func TestWrapPreservesBytes(t *testing.T) {
	inputs := []string{
		"Define scope",
		"A fairly long description that will certainly need to wrap across more than one line of output.",
		"  leading spaces and  double  spaces  ",
		"line one\nline two\n\nafter blank",
		"Supercalifragilisticexpialidocious-and-then-some-more-unbroken-text",
		"Ünïcödé wörds — with dashes & <markup>",
	}
	for _, in := range inputs {
		lines := Wrap(Regular, 18, in, 120)
		assert.Equal(t, in, strings.Join(lines, ""), "wrap must be lossless")
	}
}

func TestWrapRespectsWidth(t *testing.T) {
	text := strings.Repeat("word ", 40)
	lines := Wrap(Regular, 18, text, 200)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, Measure(Regular, 18, Visible(l)), 200.0, "line %q", l)
	}
}

func TestWrapHardBreaks(t *testing.T) {
	lines := Wrap(Regular, 18, "a\nb", 1000)
	assert.Equal(t, []string{"a\n", "b"}, lines)
	assert.Nil(t, Wrap(Regular, 18, "", 100))
}

func TestLayoutBlock(t *testing.T) {
	b := Layout(Bold, 20, "Build the thing", 1000, 1.25)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, 25.0, b.LineHeight)
	assert.Equal(t, 25.0, b.Height())
	assert.InDelta(t, Measure(Bold, 20, "Build the thing"), b.Width, 0.001)
}
