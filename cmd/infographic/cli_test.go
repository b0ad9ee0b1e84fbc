package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/theme"
)

const sampleYAML = `title: Release Train
subtitle: From branch to production
steps:
  - title: Cut the branch
    description: Freeze features for the release.
    iconName: Flag
  - title: Verify
    description: Run the full suite.
    iconName: Check
    number: "2"
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestRenderCommandWritesIntoDirectory(t *testing.T) {
	t.Setenv("SETTINGS_PATH", filepath.Join(t.TempDir(), "settings.toml"))
	out := t.TempDir()

	cmd := newRenderCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{writeSample(t), "-f", "svg", "-o", out, "--layout", "circular-progress"})
	require.NoError(t, cmd.Execute())

	path := strings.TrimSpace(stdout.String())
	assert.Equal(t, out, filepath.Dir(path))
	assert.Regexp(t, `^NovaViA-Infographic-\d+\.svg$`, filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cut the branch")
}

func TestRenderCommandToStdout(t *testing.T) {
	t.Setenv("SETTINGS_PATH", filepath.Join(t.TempDir(), "settings.toml"))
	cmd := newRenderCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{writeSample(t), "-f", "png", "-o", "-", "--scale", "1"})
	require.NoError(t, cmd.Execute())
	assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("\x89PNG")))
}

func TestRenderCommandRejectsBadStyle(t *testing.T) {
	cmd := newRenderCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{writeSample(t), "--corners", "blobby"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

func TestWriteOutputToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "chart.svg")
	var stdout bytes.Buffer
	require.NoError(t, writeOutput(&stdout, target, "ignored.svg", export.SVG, []byte("<svg/>")))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
	assert.Equal(t, target, strings.TrimSpace(stdout.String()))
}

func TestLookFlagsStyle(t *testing.T) {
	f := lookFlags{accent: "navy", background: "#123456", border: "dashed"}
	s, err := f.style()
	require.NoError(t, err)
	assert.Equal(t, "#1A2633", s.AccentColor)
	assert.Equal(t, "#123456", s.BackgroundColor)
	assert.Equal(t, theme.BorderDashed, s.BorderVariant)
	assert.Equal(t, theme.DefaultStyle().CornerStyle, s.CornerStyle)
}

func TestDocumentMarkdown(t *testing.T) {
	doc, err := document.Load(writeSample(t))
	require.NoError(t, err)
	md := documentMarkdown(doc)
	assert.True(t, strings.HasPrefix(md, "# Release Train\n\n_From branch to production_\n\n"))
	assert.Contains(t, md, "## 1. Cut the branch\n\nFreeze features for the release.\n\n`Flag`")
	assert.Contains(t, md, "## 2. Verify")

	out, err := renderMarkdown(md, "notty", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Release Train")
}

func TestSaveDocumentRoundTrip(t *testing.T) {
	doc, err := document.Load(writeSample(t))
	require.NoError(t, err)
	for _, name := range []string{"doc.json", "doc.yml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, saveDocument(path, doc))
		back, err := document.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, doc.Raw(), back.Raw(), name)
	}
}

func TestInputTextPrefersFlagThenFile(t *testing.T) {
	cfg := config.Config{MaxUploadBytes: 1 << 20, MaxInputTokens: 6000}

	got, err := inputText(strings.NewReader("from stdin"), nil, "from flag", cfg)
	require.NoError(t, err)
	assert.Equal(t, "from flag", got)

	got, err = inputText(strings.NewReader("from stdin"), nil, "", cfg)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte("# Plan\n\nGather requirements.\n"), 0o644))
	got, err = inputText(strings.NewReader("ignored"), []string{path}, "", cfg)
	require.NoError(t, err)
	assert.Contains(t, got, "Gather requirements.")

	_, err = inputText(nil, []string{filepath.Join(t.TempDir(), "x.exe")}, "", cfg)
	assert.Error(t, err)
}

func TestSettingsDarkMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	t.Setenv("SETTINGS_PATH", path)

	run := func(args ...string) string {
		cmd := newSettingsCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"dark-mode"}, args...))
		require.NoError(t, cmd.Execute())
		return out.String()
	}
	assert.Contains(t, run(), "dark mode: off")
	assert.Contains(t, run("on"), "dark mode: on")
	assert.Contains(t, run("show"), "dark mode: on")
	assert.Contains(t, run("off"), "dark mode: off")
}

func TestCatalogListsEveryLayout(t *testing.T) {
	var out bytes.Buffer
	writeCatalog(&out)
	for _, id := range []string{"vertical-cards", "radial-process", "multi-column", "extra-soft", "dashed", "Lightbulb", "HTML"} {
		assert.Contains(t, out.String(), id)
	}
}

func TestUserMessage(t *testing.T) {
	err := apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgTransportFallback, errors.New("dial tcp"))
	verbosity = 0
	assert.Equal(t, apperr.MsgTransportFallback, userMessage(err))
	verbosity = 1
	t.Cleanup(func() { verbosity = 0 })
	assert.Equal(t, apperr.MsgTransportFallback+" (dial tcp)", userMessage(err))
	assert.Equal(t, "plain", userMessage(errors.New("plain")))
}
