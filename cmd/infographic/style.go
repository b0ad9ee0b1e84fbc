package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/layout"
	"github.com/dgallion1/infographic/internal/theme"
)

// lookFlags are the appearance options shared by every rendering command.
type lookFlags struct {
	accent     string
	background string
	corners    string
	border     string
	layout     string
	viewport   float64
}

func (f *lookFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.accent, "accent", "", "Accent color: a preset ID (see catalog) or #RRGGBB")
	fs.StringVar(&f.background, "background", "", "Background color: a preset ID or #RRGGBB")
	fs.StringVar(&f.corners, "corners", "", "Corner style: sharp, soft or extra-soft")
	fs.StringVar(&f.border, "border", "", "Border variant: solid, dashed or none")
	fs.StringVarP(&f.layout, "layout", "l", string(layout.Default), "Layout ID (see catalog)")
	fs.Float64Var(&f.viewport, "viewport", layout.DefaultViewport, "Viewport width in pixels")
}

// style resolves the flags against the presets and fills the rest from the
// defaults.
func (f *lookFlags) style() (theme.Style, error) {
	s := theme.Style{
		AccentColor:     swatchValue(theme.AccentColors, f.accent),
		BackgroundColor: swatchValue(theme.BackgroundColors, f.background),
		CornerStyle:     theme.CornerStyle(f.corners),
		BorderVariant:   theme.BorderVariant(f.border),
	}.WithDefaults()
	if err := s.Validate(); err != nil {
		return theme.Style{}, err
	}
	return s, nil
}

func (f *lookFlags) kind() layout.Kind {
	k := layout.ParseKind(f.layout)
	if string(k) != f.layout {
		log.Warn("unknown layout, using default", "layout", f.layout, "default", k)
	}
	return k
}

func (f *lookFlags) options() layout.Options {
	return layout.Options{Viewport: f.viewport}
}

func swatchValue(list []theme.Swatch, v string) string {
	if sw, ok := theme.LookupSwatch(list, v); ok {
		return sw.Value
	}
	return v
}
