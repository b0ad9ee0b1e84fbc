package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/document"
)

func newPreviewCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "preview <document.json|document.yaml>",
		Short: "Show a stored document in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			style := "notty"
			if isTerminal(cmd.OutOrStdout()) {
				style = loadSettings(config.Load()).Theme().String()
			}
			out, err := renderMarkdown(documentMarkdown(doc), style, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap width")
	return cmd
}

// documentMarkdown lays a document out as a numbered markdown outline.
func documentMarkdown(doc *document.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	if doc.Subtitle != "" {
		fmt.Fprintf(&b, "_%s_\n\n", doc.Subtitle)
	}
	for i, st := range doc.Steps {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, st.Title)
		if st.Description != "" {
			b.WriteString(st.Description)
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "`%s`\n\n", st.Icon)
	}
	return b.String()
}

func renderMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return out, nil
}
