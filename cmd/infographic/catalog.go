package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/layout"
	"github.com/dgallion1/infographic/internal/theme"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.BrandPrimary)).
			Bold(true).
			MarginTop(1)

	idStyle = lipgloss.NewStyle().
			Bold(true).
			Width(20)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.BrandMuted))
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List layouts, colors, styles, icons and formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writeCatalog(cmd.OutOrStdout())
		},
	}
}

func writeCatalog(w io.Writer) {
	section(w, "Layouts")
	for _, k := range layout.Kinds() {
		row(w, string(k.ID), k.Label+mutedStyle.Render(" · "+k.Description))
	}

	section(w, "Accent colors")
	swatches(w, theme.AccentColors)
	section(w, "Background colors")
	swatches(w, theme.BackgroundColors)

	section(w, "Corners")
	for _, o := range theme.CornerOptions {
		row(w, o.ID, o.Label)
	}
	section(w, "Borders")
	for _, o := range theme.BorderOptions {
		row(w, o.ID, o.Label)
	}

	section(w, "Icons")
	fmt.Fprintln(w, strings.Join(icon.Names(), ", "))

	section(w, "Formats")
	var formats []string
	for _, f := range export.Formats() {
		formats = append(formats, f.Label())
	}
	fmt.Fprintln(w, strings.Join(formats, ", "))
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

func row(w io.Writer, id, label string) {
	fmt.Fprintln(w, idStyle.Render(id)+label)
}

func swatches(w io.Writer, list []theme.Swatch) {
	for _, s := range list {
		chip := lipgloss.NewStyle().Background(lipgloss.Color(s.Value)).Render("    ")
		row(w, s.ID, chip+" "+s.Label+mutedStyle.Render(" "+s.Value))
	}
}
