package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/layout"
)

func newCopySVGCmd() *cobra.Command {
	var look lookFlags
	cmd := &cobra.Command{
		Use:   "copy-svg <document.json|document.yaml>",
		Short: "Copy the SVG markup of a document to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			markup, err := svgMarkup(doc, &look)
			if err != nil {
				return err
			}
			if clipboard.Unsupported {
				return fmt.Errorf("no clipboard available on this system")
			}
			if err := clipboard.WriteAll(markup); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d bytes of SVG to the clipboard\n", len(markup))
			return nil
		},
	}
	look.register(cmd)
	return cmd
}

func svgMarkup(doc *document.Document, look *lookFlags) (string, error) {
	style, err := look.style()
	if err != nil {
		return "", err
	}
	sc, err := layout.Render(doc, style, look.kind(), look.options())
	if err != nil {
		return "", err
	}
	markup, err := export.Markup(sc)
	if err != nil {
		return "", apperr.Export(export.SVG.Label(), err)
	}
	return markup, nil
}
