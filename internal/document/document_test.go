package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launchPlan() Raw {
	return Raw{
		Title: "Launch Plan",
		Steps: []RawStep{
			{ID: "1", Number: 1, Title: "Plan", Description: "Define scope", IconName: "Target"},
			{ID: "2", Number: 2, Title: "Build", Description: "Implement", IconName: "Zap"},
		},
	}
}

func TestNormalizeResolvesIconsOnce(t *testing.T) {
	doc, err := Normalize(launchPlan())
	require.NoError(t, err)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, icon.Target, doc.Steps[0].Icon)
	assert.Equal(t, icon.Zap, doc.Steps[1].Icon)
}

func TestNormalizeUnknownIconFallsBack(t *testing.T) {
	raw := launchPlan()
	raw.Steps[0].IconName = "Rocketship"
	doc, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, icon.Unknown, doc.Steps[0].Icon)
	assert.Equal(t, "Rocketship", doc.Steps[0].IconName)
}

func TestNormalizeEmptySteps(t *testing.T) {
	_, err := Normalize(Raw{Title: "Nothing"})
	assert.ErrorIs(t, err, apperr.ErrNoStepsFound)

	_, err = Normalize(Raw{Title: "Blank", Steps: []RawStep{{ID: "a", Title: "  ", Description: "\t"}}})
	assert.ErrorIs(t, err, apperr.ErrNoStepsFound)
}

func TestNormalizeMissingTitle(t *testing.T) {
	raw := launchPlan()
	raw.Title = "   "
	_, err := Normalize(raw)
	assert.ErrorIs(t, err, apperr.ErrUpstreamMalformed)
}

func TestNormalizeFixesIDsAndNumbers(t *testing.T) {
	doc, err := Normalize(Raw{
		Title: "T",
		Steps: []RawStep{
			{Title: "a"},
			{ID: "x", Title: "b"},
			{ID: "x", Title: "c", Number: 7},
		},
	})
	require.NoError(t, err)
	require.Len(t, doc.Steps, 3)
	assert.Equal(t, "step-1", doc.Steps[0].ID)
	assert.Equal(t, 1, doc.Steps[0].Number)
	assert.Equal(t, "x", doc.Steps[1].ID)
	assert.Equal(t, "step-3", doc.Steps[2].ID)
	assert.Equal(t, 7, doc.Steps[2].Number)
	assert.NoError(t, doc.Validate())
}

func TestNormalizeAppliesNFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	doc, err := Normalize(Raw{Title: "Cafe\u0301 ", Steps: []RawStep{{Title: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", doc.Title)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	d := &Document{Title: "t", Steps: []Step{{ID: "a"}, {ID: "a"}}}
	assert.ErrorIs(t, d.Validate(), apperr.ErrInvalid)
	assert.ErrorIs(t, (&Document{Title: "t"}).Validate(), apperr.ErrNoStepsFound)
}

func TestDecodeJSONWithStringNumbers(t *testing.T) {
	in := `{"title":"Launch Plan","steps":[{"id":"1","number":"1","title":"Plan","description":"Define scope","iconName":"Target"}]}`
	doc, err := Decode(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Steps[0].Number)
	assert.Equal(t, icon.Target, doc.Steps[0].Icon)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	src := `title: Launch Plan
subtitle: Q3
steps:
  - id: "1"
    number: 1
    title: Plan
    description: Define scope
    iconName: Target
  - id: "2"
    number: 2
    title: Build
    description: Implement
    iconName: Zap
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Q3", doc.Subtitle)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, icon.Zap, doc.Steps[1].Icon)
	assert.Equal(t, "Launch", doc.FirstWord())
}

func TestRawRoundTrip(t *testing.T) {
	doc, err := Normalize(launchPlan())
	require.NoError(t, err)
	again, err := Normalize(doc.Raw())
	require.NoError(t, err)
	assert.Equal(t, doc, again)

	c := doc.Clone()
	c.Steps[0].Title = "changed"
	assert.Equal(t, "Plan", doc.Steps[0].Title)
}
